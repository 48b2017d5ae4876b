package board_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"testing"
	"time"

	"code.sztanpet.net/zvpsz/rrc/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, uint8(0xA1), board.Checksum([]byte("123456789")))
	assert.Equal(t, uint8(0), board.Checksum(nil))
	// second entry of the firmware's lookup table
	assert.Equal(t, uint8(94), board.Checksum([]byte{1}))
}

func TestEncode(t *testing.T) {
	frame, err := board.Encode(board.FuncBuzzer, mustHex(t, "e803000000000100"))
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "aa550208e80300000000010002"), frame)

	frame, err = board.Encode(board.FuncSys, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0x55, 0x00, 0x00, 0x00}, frame)
}

func TestEncodeErrors(t *testing.T) {
	_, err := board.Encode(board.FuncRGB, make([]byte, board.MaxPayload+1))
	assert.True(t, errors.Is(err, board.ErrPayloadTooLong))

	_, err = board.Encode(board.Function(42), nil)
	assert.True(t, errors.Is(err, board.ErrUnknownFunction))
}

func TestLEDPayload(t *testing.T) {
	b := &bytes.Buffer{}
	brd := board.New(b)

	err := brd.Send(board.LED{ID: 1, On: 100 * time.Millisecond, Off: 100 * time.Millisecond, Repeat: 3})
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "aa550107016400640003009d"), b.Bytes())
}

func TestLEDOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		led  board.LED
	}{
		{"negative on", board.LED{On: -time.Millisecond}},
		{"too long off", board.LED{Off: board.MaxDuration + time.Millisecond}},
		{"negative repeat", board.LED{Repeat: -1}},
		{"repeat overflow", board.LED{Repeat: 1 << 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.led.Payload()
			assert.True(t, errors.Is(err, board.ErrOutOfRange))
		})
	}
}

func TestRGBPayload(t *testing.T) {
	b := &bytes.Buffer{}
	brd := board.New(b)

	err := brd.Send(board.RGB{Pixels: []board.Pixel{
		{Index: 1, R: 255},
		{Index: 2, B: 255},
	}})
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "aa550b0a010200ff0000010000ffbd"), b.Bytes())
}

func TestRGBHelpers(t *testing.T) {
	off, err := board.RGBOff(1, 2).Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 2, 0, 0, 0, 0, 1, 0, 0, 0}, off)

	red, err := board.RGBAll(255, 0, 0, 1, 2).Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 2, 0, 255, 0, 0, 1, 255, 0, 0}, red)

	_, err = board.RGBOff(0).Payload()
	assert.True(t, errors.Is(err, board.ErrOutOfRange))

	_, err = board.RGBOff(make([]int, 64)...).Payload()
	assert.True(t, errors.Is(err, board.ErrPayloadTooLong))
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) - 1, nil
}

type failingWriter struct {
	err    error
	closed bool
}

func (w *failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func (w *failingWriter) Close() error {
	w.closed = true
	return nil
}

func TestSendErrors(t *testing.T) {
	err := board.New(shortWriter{}).Send(board.RGBOff(1))
	assert.Equal(t, io.ErrShortWrite, err)

	link := errors.New("link down")
	fw := &failingWriter{err: link}
	brd := board.New(fw)
	assert.Equal(t, link, brd.Send(board.RGBOff(1)))

	require.NoError(t, brd.Close())
	assert.True(t, fw.closed)

	// nothing to close on a plain writer
	assert.NoError(t, board.New(&bytes.Buffer{}).Close())
}

func TestMillis(t *testing.T) {
	ms, err := board.Millis(1500*time.Microsecond + time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint16(1001), ms)

	ms, err = board.Millis(board.MaxDuration)
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), ms)
}
