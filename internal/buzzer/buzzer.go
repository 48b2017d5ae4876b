// buzzer drives the piezo buzzer of the expansion board.
// The board firmware generates the tone and the on/off cycling by itself,
// the host only ever sends one command describing the whole pattern.
package buzzer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"code.sztanpet.net/zvpsz/rrc/internal/board"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("rrc.buzzer")

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTransport       = errors.New("transport error")
)

const payloadLen = 8

// Pattern is a repeating on/off tone.
// Repeat 0 repeats until a new pattern arrives or the board is powered off.
// On and Off both zero silences the buzzer whatever the other fields are.
type Pattern struct {
	Frequency int
	On        time.Duration
	Off       time.Duration
	Repeat    int
}

// Silence stops whatever the buzzer is playing
var Silence = Pattern{Repeat: 1}

func (p Pattern) String() string {
	if p.Silent() {
		return "silence"
	}

	repeat := fmt.Sprintf("x%d", p.Repeat)
	if p.Repeat == 0 {
		repeat = "forever"
	}
	return fmt.Sprintf("%dHz %v on %v off %v", p.Frequency, p.On, p.Off, repeat)
}

// Silent reports whether p is the silence command
func (p Pattern) Silent() bool {
	return p.On == 0 && p.Off == 0
}

// Validate checks the pattern against what the board can represent
func (p Pattern) Validate() error {
	if p.Frequency < 0 {
		return fmt.Errorf("%w: negative frequency %v", ErrInvalidArgument, p.Frequency)
	}
	if p.On < 0 {
		return fmt.Errorf("%w: negative on duration %v", ErrInvalidArgument, p.On)
	}
	if p.Off < 0 {
		return fmt.Errorf("%w: negative off duration %v", ErrInvalidArgument, p.Off)
	}
	if p.Repeat < 0 {
		return fmt.Errorf("%w: negative repeat count %v", ErrInvalidArgument, p.Repeat)
	}

	if _, err := p.Payload(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	return nil
}

func (p Pattern) Function() board.Function {
	return board.FuncBuzzer
}

// Payload encodes frequency, on and off time in ms and the repeat count as little endian uint16s
func (p Pattern) Payload() ([]byte, error) {
	freq, err := board.Uint16("frequency", p.Frequency)
	if err != nil {
		return nil, err
	}
	on, err := board.Millis(p.On)
	if err != nil {
		return nil, err
	}
	off, err := board.Millis(p.Off)
	if err != nil {
		return nil, err
	}
	repeat, err := board.Uint16("repeat", p.Repeat)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, payloadLen)
	binary.LittleEndian.PutUint16(buf[0:], freq)
	binary.LittleEndian.PutUint16(buf[2:], on)
	binary.LittleEndian.PutUint16(buf[4:], off)
	binary.LittleEndian.PutUint16(buf[6:], repeat)
	return buf, nil
}

// ParsePattern decodes the payload of a buzzer frame
func ParsePattern(payload []byte) (Pattern, error) {
	if len(payload) != payloadLen {
		return Pattern{}, fmt.Errorf("%w: buzzer payload is %v bytes, want %v", ErrInvalidArgument, len(payload), payloadLen)
	}

	return Pattern{
		Frequency: int(binary.LittleEndian.Uint16(payload[0:])),
		On:        time.Duration(binary.LittleEndian.Uint16(payload[2:])) * time.Millisecond,
		Off:       time.Duration(binary.LittleEndian.Uint16(payload[4:])) * time.Millisecond,
		Repeat:    int(binary.LittleEndian.Uint16(payload[6:])),
	}, nil
}

// Channel delivers commands to the board. Send returns once the command
// was accepted for transmission, it never waits for the board.
type Channel interface {
	Send(cmd board.Command) error
}

// Controller turns patterns into buzzer commands. It keeps no state between calls.
type Controller struct {
	ch Channel
}

func New(ch Channel) *Controller {
	return &Controller{ch: ch}
}

// SetPattern sends a single command making the board play frequency Hz for
// on, pausing for off, repeat times. Nothing is retried.
func (c *Controller) SetPattern(frequency int, on, off time.Duration, repeat int) error {
	return c.Send(Pattern{
		Frequency: frequency,
		On:        on,
		Off:       off,
		Repeat:    repeat,
	})
}

// Send validates p and hands it to the channel as is
func (c *Controller) Send(p Pattern) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := c.ch.Send(p); err != nil {
		logger.Debugf("sending %v failed: %v", p, err)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	logger.Tracef("sent %v", p)
	return nil
}

// Silence stops the buzzer, this is the only way to end an indefinite pattern
func (c *Controller) Silence() error {
	return c.Send(Silence)
}
