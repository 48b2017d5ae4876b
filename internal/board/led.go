package board

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// ErrOutOfRange is returned for values that do not fit the wire format
var ErrOutOfRange = errors.New("value out of range")

// MaxDuration is the longest on/off time the board accepts, it counts in milliseconds on 16 bits
const MaxDuration = 65535 * time.Millisecond

// Millis converts d to the board's millisecond resolution, truncating anything finer
func Millis(d time.Duration) (uint16, error) {
	if d < 0 || d > MaxDuration {
		return 0, fmt.Errorf("%w: duration %v", ErrOutOfRange, d)
	}

	return uint16(d / time.Millisecond), nil
}

// Uint16 checks that v fits an unsigned 16 bit field
func Uint16(name string, v int) (uint16, error) {
	if v < 0 || v > 0xFFFF {
		return 0, fmt.Errorf("%w: %v %v", ErrOutOfRange, name, v)
	}

	return uint16(v), nil
}

// LED blinks one of the board's status leds.
// On and Off both zero switches the led off, Repeat 0 blinks forever.
type LED struct {
	ID     uint8
	On     time.Duration
	Off    time.Duration
	Repeat int
}

func (l LED) Function() Function {
	return FuncLED
}

func (l LED) Payload() ([]byte, error) {
	on, err := Millis(l.On)
	if err != nil {
		return nil, err
	}
	off, err := Millis(l.Off)
	if err != nil {
		return nil, err
	}
	repeat, err := Uint16("repeat", l.Repeat)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 7)
	buf[0] = l.ID
	binary.LittleEndian.PutUint16(buf[1:], on)
	binary.LittleEndian.PutUint16(buf[3:], off)
	binary.LittleEndian.PutUint16(buf[5:], repeat)
	return buf, nil
}
