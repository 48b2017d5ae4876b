// key-demo lights the rgb leds red and beeps when key1 is pressed, blue with
// a double beep for key2. Ctrl+C switches everything off.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.sztanpet.net/zvpsz/rrc/internal/board"
	"code.sztanpet.net/zvpsz/rrc/internal/buzzer"
	"code.sztanpet.net/zvpsz/rrc/internal/config"
	"code.sztanpet.net/zvpsz/rrc/internal/gpio"
	"code.sztanpet.net/zvpsz/rrc/internal/logwriter"
	"github.com/juju/loggo"
	"golang.org/x/sync/errgroup"
)

var logger = loggo.GetLogger("key-demo")

// the board has two rgb pixels
var pixels = []int{1, 2}

// feedback is what a key press sends
type feedback struct {
	rgb  board.RGB
	beep buzzer.Pattern
}

var keyFeedback = []feedback{
	{
		rgb:  board.RGBAll(255, 0, 0, pixels...),
		beep: buzzer.Pattern{Frequency: 1900, On: 100 * time.Millisecond, Repeat: 1},
	},
	{
		rgb:  board.RGBAll(0, 0, 255, pixels...),
		beep: buzzer.Pattern{Frequency: 1000, On: 80 * time.Millisecond, Off: 80 * time.Millisecond, Repeat: 2},
	},
}

type app struct {
	brd  *board.Board
	ctrl *buzzer.Controller
}

func main() {
	cfg := config.Get()
	if err := logwriter.Setup(nil, cfg); err != nil {
		logger.Criticalf("logwriter setup failed: %v", err)
		os.Exit(1)
	}

	brd, err := board.Open(cfg.Device, cfg.BaudRate)
	if err != nil {
		logger.Criticalf("failed to open %v: %v", cfg.Device, err)
		os.Exit(1)
	}
	defer brd.Close()

	keys, err := gpio.Open(gpio.Key1, gpio.Key2)
	if err != nil {
		logger.Criticalf("failed to set up keys: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{brd: brd, ctrl: buzzer.New(brd)}
	if err := a.run(ctx, keys); err != nil {
		logger.Errorf("key demo failed: %v", err)
	}

	if err := a.off(); err != nil {
		logger.Errorf("failed switching off: %v", err)
		os.Exit(1)
	}
	logger.Infof("leds and buzzer off, exiting")
}

func (a *app) run(ctx context.Context, keys []*gpio.Key) error {
	g, ctx := errgroup.WithContext(ctx)
	presses := make(chan int, 1)

	g.Go(func() error {
		return gpio.Watch(ctx, keys, func(ix int) {
			select {
			case presses <- ix:
			default:
				logger.Debugf("dropping press of key %d, still busy", ix+1)
			}
		})
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ix := <-presses:
				if err := a.press(ix); err != nil {
					return err
				}
			}
		}
	})

	return g.Wait()
}

func (a *app) press(ix int) error {
	if ix < 0 || ix >= len(keyFeedback) {
		return nil
	}

	fb := keyFeedback[ix]
	logger.Infof("key%d pressed", ix+1)
	if err := a.brd.Send(fb.rgb); err != nil {
		return err
	}

	return a.ctrl.Send(fb.beep)
}

func (a *app) off() error {
	if err := a.brd.Send(board.RGBOff(pixels...)); err != nil {
		return err
	}

	return a.ctrl.Silence()
}
