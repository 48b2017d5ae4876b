//go:build amd64
// +build amd64

package display

import (
	"sync"

	"code.sztanpet.net/zvpsz/rrc/internal/buzzer"
)

// Screen keeps the lines in memory, development machines have no oled
type Screen struct {
	mu    sync.Mutex
	lines [lineCount]string
}

func NewScreen() (*Screen, error) {
	return &Screen{}, nil
}

func (s *Screen) ShowPattern(p buzzer.Pattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = patternLines(p)
	return nil
}

func (s *Screen) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = [lineCount]string{}
	return nil
}
