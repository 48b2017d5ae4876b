package board

import (
	"errors"
	"fmt"
)

type decodeState int

const (
	stateStart1 decodeState = iota
	stateStart2
	stateFunction
	stateLength
	stateData
	stateChecksum
)

// Frame is a decoded command or report
type Frame struct {
	Function Function
	Payload  []byte
}

// Decoder reassembles frames from a byte stream. It is not safe for concurrent use.
type Decoder struct {
	state   decodeState
	fn      Function
	length  int
	payload []byte
}

// Feed consumes p and returns every frame completed by it.
// Corrupt frames are dropped and reported in the returned error, decoding
// continues with the next start sequence.
func (d *Decoder) Feed(p []byte) ([]Frame, error) {
	var frames []Frame
	var errs []error

	for _, b := range p {
		switch d.state {
		case stateStart1:
			if b == startByte1 {
				d.state = stateStart2
			}

		case stateStart2:
			switch b {
			case startByte2:
				d.state = stateFunction
			case startByte1:
				// 0xAA 0xAA 0x55, stay in sync
			default:
				d.state = stateStart1
			}

		case stateFunction:
			d.fn = Function(b)
			if !d.fn.Valid() {
				errs = append(errs, fmt.Errorf("%w: %v", ErrUnknownFunction, d.fn))
				d.reset()
				continue
			}
			d.state = stateLength

		case stateLength:
			d.length = int(b)
			d.payload = make([]byte, 0, d.length)
			if d.length == 0 {
				d.state = stateChecksum
			} else {
				d.state = stateData
			}

		case stateData:
			d.payload = append(d.payload, b)
			if len(d.payload) == d.length {
				d.state = stateChecksum
			}

		case stateChecksum:
			sum := Checksum(append([]byte{byte(d.fn), byte(d.length)}, d.payload...))
			if sum != b {
				errs = append(errs, fmt.Errorf("%w: %v frame got 0x%02x want 0x%02x", ErrChecksum, d.fn, b, sum))
			} else {
				frames = append(frames, Frame{Function: d.fn, Payload: d.payload})
			}
			d.reset()
		}
	}

	return frames, errors.Join(errs...)
}

func (d *Decoder) reset() {
	d.state = stateStart1
	d.fn = funcNone
	d.length = 0
	d.payload = nil
}
