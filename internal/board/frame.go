// board speaks the serial protocol of the robot controller expansion board.
// Every command is a single frame:
//
//	0xAA 0x55 <function> <length> <payload...> <crc8>
//
// the checksum is CRC-8/MAXIM over function, length and payload.
package board

import (
	"errors"
	"fmt"

	"github.com/sigurn/crc8"
)

const (
	startByte1 = 0xAA
	startByte2 = 0x55

	// MaxPayload is the largest payload a single frame can carry
	MaxPayload = 255
	headerLen  = 4
)

// Function selects the peripheral a frame is addressed to
type Function uint8

const (
	FuncSys Function = iota
	FuncLED
	FuncBuzzer
	FuncMotor
	FuncPWMServo
	FuncBusServo
	FuncKey
	FuncIMU
	FuncGamepad
	FuncSBus
	FuncOLED
	FuncRGB
	funcNone
)

func (f Function) String() string {
	switch f {
	case FuncSys:
		return "sys"
	case FuncLED:
		return "led"
	case FuncBuzzer:
		return "buzzer"
	case FuncMotor:
		return "motor"
	case FuncPWMServo:
		return "pwm-servo"
	case FuncBusServo:
		return "bus-servo"
	case FuncKey:
		return "key"
	case FuncIMU:
		return "imu"
	case FuncGamepad:
		return "gamepad"
	case FuncSBus:
		return "sbus"
	case FuncOLED:
		return "oled"
	case FuncRGB:
		return "rgb"
	default:
		return fmt.Sprintf("function(%d)", uint8(f))
	}
}

// Valid reports whether the board knows about the function
func (f Function) Valid() bool {
	return f < funcNone
}

var (
	ErrPayloadTooLong  = errors.New("payload too long")
	ErrChecksum        = errors.New("checksum mismatch")
	ErrUnknownFunction = errors.New("unknown function")
)

var crcTable = crc8.MakeTable(crc8.CRC8_MAXIM)

// Checksum calculates the CRC-8/MAXIM the board expects at the end of a frame
func Checksum(data []byte) uint8 {
	return crc8.Checksum(data, crcTable)
}

// Encode wraps the payload in a frame addressed to fn
func Encode(fn Function, payload []byte) ([]byte, error) {
	if !fn.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFunction, fn)
	}
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("%w: %v bytes for %v", ErrPayloadTooLong, len(payload), fn)
	}

	buf := make([]byte, 0, headerLen+len(payload)+1)
	buf = append(buf, startByte1, startByte2, byte(fn), byte(len(payload)))
	buf = append(buf, payload...)
	buf = append(buf, Checksum(buf[2:]))
	return buf, nil
}
