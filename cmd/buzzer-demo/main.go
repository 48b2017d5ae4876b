// buzzer-demo plays a short beep, then a few seconds of continuous beeping,
// then silences the buzzer. Ctrl+C silences it right away.
package main

import (
	"context"
	"errors"
	"io"
	"os"

	"code.sztanpet.net/zvpsz/rrc/internal/buzzer"
	"code.sztanpet.net/zvpsz/rrc/internal/config"
	"code.sztanpet.net/zvpsz/rrc/internal/display"
	"code.sztanpet.net/zvpsz/rrc/internal/sequence"
	"code.sztanpet.net/zvpsz/rrc/internal/telegram"
	"github.com/juju/loggo"
)

type app struct {
	ctx    context.Context
	exit   context.CancelFunc
	cfg    *config.Config
	bot    *telegram.Bot
	link   io.Closer
	ctrl   *buzzer.Controller
	screen *display.Screen
	steps  []sequence.Step
}

var logger = loggo.GetLogger("buzzer-demo")

func main() {
	cfg := config.Get()
	ctx, exit := context.WithCancel(context.Background())
	a := &app{
		ctx:  ctx,
		exit: exit,
		cfg:  cfg,
	}

	// logging sends messages to telegram, so it depends on it
	a.setupTelegram()
	a.setupLogging()
	a.handleSignals()
	a.setupSteps()
	a.setupBuzzer()
	a.setupScreen()

	os.Exit(a.run())
}

func (a *app) run() int {
	defer a.close()

	err := sequence.Run(a.ctx, a.ctrl, a.steps, a.show)
	if err == nil {
		logger.Infof("done")
		return 0
	}

	if errors.Is(err, context.Canceled) {
		// an interrupted indefinite pattern would keep going without this
		if err := a.ctrl.Silence(); err != nil {
			logger.Errorf("failed silencing buzzer: %v", err)
			return 1
		}
		logger.Infof("interrupted, buzzer silenced")
		return 0
	}

	logger.Criticalf("buzzer demo failed: %v", err)
	return 1
}

func (a *app) show(s sequence.Step) {
	if a.screen == nil {
		return
	}

	if err := a.screen.ShowPattern(s.Pattern); err != nil {
		logger.Debugf("screen error: %v", err)
	}
}

func (a *app) close() {
	if a.screen != nil {
		_ = a.screen.Close()
	}

	if err := a.link.Close(); err != nil {
		logger.Warningf("failed closing %v: %v", a.cfg.Device, err)
	}
	a.exit()
}
