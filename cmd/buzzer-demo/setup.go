package main

import (
	"os"
	"os/signal"
	"syscall"

	"code.sztanpet.net/zvpsz/rrc/internal/board"
	"code.sztanpet.net/zvpsz/rrc/internal/buzzer"
	"code.sztanpet.net/zvpsz/rrc/internal/display"
	"code.sztanpet.net/zvpsz/rrc/internal/logwriter"
	"code.sztanpet.net/zvpsz/rrc/internal/pwm"
	"code.sztanpet.net/zvpsz/rrc/internal/sequence"
	"code.sztanpet.net/zvpsz/rrc/internal/telegram"
)

func (a *app) handleSignals() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		s := <-c
		logger.Warningf("Got signal: %s, exiting cleanly", s)
		a.exit()
	}()
}

func (a *app) setupTelegram() {
	if a.cfg.TelegramToken == "" {
		return
	}

	bot, err := telegram.New(a.ctx, a.cfg.TelegramToken, a.cfg.TelegramChannelID)
	if err != nil {
		// not fatal, logging to file still works
		logger.Warningf("telegram setup failed: %v", err)
		return
	}

	a.bot = bot
}

func (a *app) setupLogging() {
	if err := logwriter.Setup(a.bot, a.cfg); err != nil {
		logger.Criticalf("logwriter setup failed: %v", err)
		os.Exit(1)
	}
}

func (a *app) setupSteps() {
	if a.cfg.SequencePath == "" {
		a.steps = sequence.Demo()
		return
	}

	steps, err := sequence.Load(a.cfg.SequencePath)
	if err != nil {
		logger.Criticalf("failed loading %v: %v", a.cfg.SequencePath, err)
		os.Exit(1)
	}
	a.steps = steps
}

func (a *app) setupBuzzer() {
	var brd *board.Board
	if a.cfg.Local() {
		logger.Infof("no board, playing on the local pwm buzzer at %v", a.cfg.PWMChip)
		brd = board.New(pwm.New(a.cfg.PWMChip))
	} else {
		var err error
		brd, err = board.Open(a.cfg.Device, a.cfg.BaudRate)
		if err != nil {
			logger.Criticalf("failed to open %v: %v", a.cfg.Device, err)
			os.Exit(1)
		}
	}

	a.link = brd
	a.ctrl = buzzer.New(brd)
}

func (a *app) setupScreen() {
	screen, err := display.NewScreen()
	if err != nil {
		// the screen is optional, it logs why it is missing
		return
	}
	a.screen = screen
}
