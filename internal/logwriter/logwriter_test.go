package logwriter

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/juju/loggo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	mu     sync.Mutex
	lines  []string
	silent []bool
}

func (b *fakeBot) Send(txt string, disableNotification bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, txt)
	b.silent = append(b.silent, disableNotification)
	return nil
}

func entry(level loggo.Level, msg string) loggo.Entry {
	return loggo.Entry{
		Level:     level,
		Module:    "rrc.buzzer",
		Filename:  "/home/pi/src/rrc/internal/buzzer/buzzer.go",
		Line:      42,
		Timestamp: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Message:   msg,
	}
}

func TestFormatEntry(t *testing.T) {
	assert.Equal(t, "[W4|rrc.buzzer:buzzer.go:42] link down", formatEntry(entry(loggo.WARNING, "link down")))
	assert.Equal(t, "[T1|rrc.buzzer:buzzer.go:42] sent", formatEntry(entry(loggo.TRACE, "sent")))
}

func TestWriteFileAndBot(t *testing.T) {
	bot := &fakeBot{}
	w := &writer{
		path: filepath.Join(t.TempDir(), "buzzer-demo.log"),
		bot:  bot,
	}

	w.Write(entry(loggo.INFO, "step 1/3"))
	w.Write(entry(loggo.ERROR, "send failed"))
	w.wg.Wait()

	b, err := os.ReadFile(w.path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[2024-03-01 12:30:00] internal/buzzer/buzzer.go:42 [I3|rrc.buzzer:buzzer.go:42] step 1/3", lines[0])

	bot.mu.Lock()
	defer bot.mu.Unlock()
	require.Len(t, bot.lines, 2)
	for i, line := range bot.lines {
		if strings.HasSuffix(line, "send failed") {
			assert.False(t, bot.silent[i])
		} else {
			assert.True(t, bot.silent[i])
		}
	}
}

func TestWriteWithoutBot(t *testing.T) {
	w := &writer{path: filepath.Join(t.TempDir(), "x.log")}
	w.Write(entry(loggo.CRITICAL, "boom"))

	b, err := os.ReadFile(w.path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[C6|rrc.buzzer:buzzer.go:42] boom")
}
