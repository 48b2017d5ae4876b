package board

import (
	"io"
	"sync"

	"github.com/juju/loggo"
	"go.bug.st/serial"
)

var logger = loggo.GetLogger("rrc.board")

// DefaultDevice is the uart the expansion board is wired to on the pi header
const DefaultDevice = "/dev/ttyAMA0"

// DefaultBaudRate is what the board firmware listens on
const DefaultBaudRate = 1000000

// Command is anything that can be sent to the board as a single frame
type Command interface {
	Function() Function
	Payload() ([]byte, error)
}

// Board is the host end of the command channel to the expansion board.
// Writes of whole frames are serialised, nothing is ever read back.
type Board struct {
	mu   sync.Mutex
	port io.Writer
}

// New sends commands over w, usually a serial port
func New(w io.Writer) *Board {
	return &Board{port: w}
}

// Open opens the serial device with the 8N1 settings the board expects
func Open(device string, baudRate int) (*Board, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}

	// drop whatever the board reported before we got here
	if err := port.ResetInputBuffer(); err != nil {
		logger.Debugf("failed resetting input buffer of %v: %v", device, err)
	}

	logger.Debugf("opened %v at %v baud", device, baudRate)
	return New(port), nil
}

// Send encodes cmd and writes it in one go
func (b *Board) Send(cmd Command) error {
	payload, err := cmd.Payload()
	if err != nil {
		return err
	}

	frame, err := Encode(cmd.Function(), payload)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	n, err := b.port.Write(frame)
	if err != nil {
		return err
	}
	if n < len(frame) {
		return io.ErrShortWrite
	}

	logger.Tracef("sent %v frame: % x", cmd.Function(), frame)
	return nil
}

// Close closes the underlying port if it can be closed
func (b *Board) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c, ok := b.port.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
