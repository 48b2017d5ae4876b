package gpio

import (
	"context"
	"fmt"
	"time"

	"github.com/juju/loggo"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

var logger = loggo.GetLogger("rrc.gpio")

// the two push buttons next to the expansion board header,
// they short to ground when pressed
var (
	Key1 = "GPIO13"
	Key2 = "GPIO23"
)

// PollDurr is how often Watch samples the keys
var PollDurr = time.Millisecond

// Key is an active low push button with the internal pull-up enabled
type Key struct {
	pin gpio.PinIn
}

// NewKey configures pin as a pulled-up input
func NewKey(pin gpio.PinIn) (*Key, error) {
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("failed to set %v as input: %v", pin, err)
	}

	return &Key{pin: pin}, nil
}

func (k *Key) String() string {
	return "KEY: " + k.pin.Name()
}

// Pressed samples the key once
func (k *Key) Pressed() bool {
	return k.pin.Read() == gpio.Low
}

// Open initializes the host drivers and sets up the named pins as keys
func Open(names ...string) ([]*Key, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	keys := make([]*Key, 0, len(names))
	for _, n := range names {
		p := gpioreg.ByName(n)
		if p == nil {
			return nil, fmt.Errorf("no such gpio pin: %v", n)
		}

		k, err := NewKey(p)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	return keys, nil
}

// Watch polls the keys until ctx is cancelled and calls pressed with the
// index of a key every time it goes down. Holding a key down does not repeat.
func Watch(ctx context.Context, keys []*Key, pressed func(ix int)) error {
	down := make([]bool, len(keys))
	t := time.NewTicker(PollDurr)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}

		for i, k := range keys {
			d := k.Pressed()
			if d && !down[i] {
				logger.Debugf("%v pressed", k)
				pressed(i)
			}
			down[i] = d
		}
	}
}
