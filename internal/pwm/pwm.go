// pwm plays buzzer patterns on a piezo buzzer wired to the host's own pwm output,
// using the linux sysfs pwm interface. It understands the same frames as the
// expansion board so it can stand in for it when no board is attached.
// more info: blog.oddbit.com/post/2017-09-26-some-notes-on-pwm-on-the-raspberry-pi
package pwm

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"code.sztanpet.net/zvpsz/rrc/internal/board"
	"code.sztanpet.net/zvpsz/rrc/internal/buzzer"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("rrc.pwm")

// DefaultChip is the first pwm controller of the pi
const DefaultChip = "/sys/class/pwm/pwmchip0"

const channel = "0"

// Buzzer is a local stand-in for the board's buzzer.
// Writing frames to it replaces whatever pattern is playing, like the firmware does.
type Buzzer struct {
	chip string

	decMu sync.Mutex
	dec   board.Decoder

	// playMu serialises Play and Close
	playMu sync.Mutex

	// mu guards the fields below and the pwm files
	mu       sync.Mutex
	exported bool
	stop     context.CancelFunc
	done     chan struct{}
}

func New(chip string) *Buzzer {
	if chip == "" {
		chip = DefaultChip
	}

	return &Buzzer{chip: chip}
}

func (b *Buzzer) port() string {
	return filepath.Join(b.chip, "pwm"+channel)
}

// Write decodes frames from p and plays every buzzer pattern in them, other
// peripherals are ignored
func (b *Buzzer) Write(p []byte) (int, error) {
	b.decMu.Lock()
	frames, err := b.dec.Feed(p)
	b.decMu.Unlock()

	for _, f := range frames {
		if f.Function != board.FuncBuzzer {
			logger.Debugf("ignoring %v frame, only the buzzer is emulated", f.Function)
			continue
		}

		pat, perr := buzzer.ParsePattern(f.Payload)
		if perr != nil {
			logger.Warningf("bad buzzer frame: %v", perr)
			continue
		}

		if perr = b.Play(pat); perr != nil {
			return len(p), perr
		}
	}

	return len(p), err
}

// Play replaces the current pattern with p and returns without waiting for it to finish
func (b *Buzzer) Play(p buzzer.Pattern) error {
	b.playMu.Lock()
	defer b.playMu.Unlock()
	b.halt()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureExported(); err != nil {
		return err
	}

	if p.Silent() {
		b.disable()
		return nil
	}

	if p.Frequency > 0 {
		if err := b.tone(p.Frequency); err != nil {
			return err
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	b.stop = stop
	b.done = make(chan struct{})
	go b.run(ctx, p, b.done)

	logger.Debugf("playing %v", p)
	return nil
}

// Wait blocks until the current pattern finished or was replaced
func (b *Buzzer) Wait() {
	b.mu.Lock()
	done := b.done
	b.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Close silences the buzzer and releases the pwm channel
func (b *Buzzer) Close() error {
	b.playMu.Lock()
	defer b.playMu.Unlock()
	b.halt()

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.exported {
		return nil
	}

	b.disable()
	b.unexport()
	return nil
}

// halt stops the running pattern and waits for its goroutine to exit
func (b *Buzzer) halt() {
	b.mu.Lock()
	stop, done := b.stop, b.done
	b.stop = nil
	b.mu.Unlock()

	if stop == nil {
		return
	}

	stop()
	<-done
}

func (b *Buzzer) run(ctx context.Context, p buzzer.Pattern, done chan struct{}) {
	defer close(done)
	defer func() {
		b.mu.Lock()
		b.disable()
		b.mu.Unlock()
	}()

	for i := 0; p.Repeat == 0 || i < p.Repeat; i++ {
		if p.Frequency > 0 && p.On > 0 {
			b.mu.Lock()
			b.enable()
			b.mu.Unlock()
		}
		if !sleep(ctx, p.On) {
			return
		}

		b.mu.Lock()
		b.disable()
		b.mu.Unlock()
		if !sleep(ctx, p.Off) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// tone sets a 50% duty cycle square wave of freq Hz.
// The duty cycle is zeroed first, the kernel refuses a period shorter than it.
func (b *Buzzer) tone(freq int) error {
	period := int64(time.Second) / int64(freq)

	if err := write(filepath.Join(b.port(), "duty_cycle"), "0"); err != nil {
		return err
	}
	if err := write(filepath.Join(b.port(), "period"), strconv.FormatInt(period, 10)); err != nil {
		return err
	}

	return write(filepath.Join(b.port(), "duty_cycle"), strconv.FormatInt(period/2, 10))
}

func (b *Buzzer) ensureExported() error {
	if b.exported {
		return nil
	}

	// already exported?
	if _, err := os.Stat(b.port()); err != nil {
		if err := write(filepath.Join(b.chip, "export"), channel); err != nil {
			return err
		}
	}

	if err := write(filepath.Join(b.port(), "polarity"), "normal"); err != nil {
		return err
	}

	b.exported = true
	return nil
}

func (b *Buzzer) unexport() {
	_ = write(filepath.Join(b.chip, "unexport"), channel)
	b.exported = false
}

func (b *Buzzer) enable() {
	if !b.exported {
		return
	}

	if err := write(filepath.Join(b.port(), "enable"), "1"); err != nil {
		logger.Warningf("failed enabling pwm: %v", err)
		b.unexport()
	}
}

func (b *Buzzer) disable() {
	if !b.exported {
		return
	}

	if err := write(filepath.Join(b.port(), "enable"), "0"); err != nil {
		logger.Warningf("failed disabling pwm: %v", err)
		b.unexport()
	}
}

func write(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := f.WriteString(value)
	if err != nil {
		return err
	}

	if n < len(value) {
		return io.ErrShortWrite
	}

	return nil
}
