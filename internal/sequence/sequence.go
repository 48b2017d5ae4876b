// sequence plays a list of buzzer patterns with pauses in between
package sequence

import (
	"context"
	"fmt"
	"os"
	"time"

	"code.sztanpet.net/zvpsz/rrc/internal/buzzer"
	"github.com/juju/loggo"
	"gopkg.in/yaml.v3"
)

var logger = loggo.GetLogger("rrc.sequence")

// Step sends Pattern then waits Pause before the next step
type Step struct {
	Pattern buzzer.Pattern
	Pause   time.Duration
}

// Demo is the classic buzzer demo: a short beep, a few seconds of
// continuous beeping, then silence.
func Demo() []Step {
	return []Step{
		{
			Pattern: buzzer.Pattern{Frequency: 1900, On: 100 * time.Millisecond, Off: 900 * time.Millisecond, Repeat: 1},
			Pause:   2 * time.Second,
		},
		{
			Pattern: buzzer.Pattern{Frequency: 1000, On: 500 * time.Millisecond, Off: 500 * time.Millisecond, Repeat: 0},
			Pause:   3 * time.Second,
		},
		{
			Pattern: buzzer.Pattern{Frequency: 1000, Repeat: 1},
		},
	}
}

// fileStep is the yaml representation of a Step, durations use time.ParseDuration syntax
type fileStep struct {
	Frequency int    `yaml:"frequency"`
	On        string `yaml:"on"`
	Off       string `yaml:"off"`
	Repeat    *int   `yaml:"repeat"`
	Pause     string `yaml:"pause"`
}

type file struct {
	Steps []fileStep `yaml:"steps"`
}

// Load reads steps from a yaml file like:
//
//	steps:
//	  - {frequency: 1900, on: 100ms, off: 900ms, repeat: 1, pause: 2s}
//	  - {frequency: 1000, on: 0s, off: 0s}
//
// a missing repeat means 1, not forever
func Load(path string) ([]Step, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(b)
}

// Parse is Load for in-memory data
func Parse(data []byte) ([]Step, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(f.Steps))
	for i, fs := range f.Steps {
		s, err := fs.step()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		if err := s.Pattern.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		steps = append(steps, s)
	}

	return steps, nil
}

func (fs fileStep) step() (s Step, err error) {
	s.Pattern.Frequency = fs.Frequency
	s.Pattern.Repeat = 1
	if fs.Repeat != nil {
		s.Pattern.Repeat = *fs.Repeat
	}

	if s.Pattern.On, err = duration(fs.On); err != nil {
		return s, fmt.Errorf("on: %w", err)
	}
	if s.Pattern.Off, err = duration(fs.Off); err != nil {
		return s, fmt.Errorf("off: %w", err)
	}
	if s.Pause, err = duration(fs.Pause); err != nil {
		return s, fmt.Errorf("pause: %w", err)
	}
	if s.Pause < 0 {
		return s, fmt.Errorf("negative pause %v", s.Pause)
	}

	return s, nil
}

func duration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	return time.ParseDuration(s)
}

// Sender is what Run needs from the buzzer controller
type Sender interface {
	Send(p buzzer.Pattern) error
}

// Run sends the steps in order, sleeping each step's pause after sending it.
// It stops at the first send error, or between steps when ctx is cancelled.
// onSend is called after every successful send, it may be nil.
func Run(ctx context.Context, s Sender, steps []Step, onSend func(Step)) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		logger.Infof("step %d/%d: %v", i+1, len(steps), step.Pattern)
		if err := s.Send(step.Pattern); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if onSend != nil {
			onSend(step)
		}

		if step.Pause <= 0 {
			continue
		}

		t := time.NewTimer(step.Pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	return nil
}
