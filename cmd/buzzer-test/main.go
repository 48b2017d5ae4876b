// buzzer-test beeps the local pwm buzzer every half a second until interrupted
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"code.sztanpet.net/zvpsz/rrc/internal/buzzer"
	"code.sztanpet.net/zvpsz/rrc/internal/config"
	"code.sztanpet.net/zvpsz/rrc/internal/pwm"
)

func main() {
	// http://blog.oddbit.com/post/2017-09-26-some-notes-on-pwm-on-the-raspberry-pi/
	// echo 0 > /sys/class/pwm/pwmchip0/export
	// 2068hz
	// echo 241779 > /sys/class/pwm/pwmchip0/pwm0/duty_cycle
	// echo 483558 > /sys/class/pwm/pwmchip0/pwm0/period
	// 150ms on
	cfg := config.Get()
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		s := <-c
		fmt.Println("Got signal:", s)
		cancel()
	}()

	bz := pwm.New(cfg.PWMChip)
	defer bz.Close()

	beep := buzzer.Pattern{Frequency: 2068, On: 150 * time.Millisecond, Repeat: 1}
	for {
		if err := bz.Play(beep); err != nil {
			fmt.Printf("beep err: %v\n", err)
		}
		bz.Wait()

		select {
		case <-ctx.Done():
			return
		case <-time.After(500 * time.Millisecond):
		}
	}
}
