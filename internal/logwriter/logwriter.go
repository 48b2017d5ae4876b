package logwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"code.sztanpet.net/zvpsz/rrc/internal/config"
	"code.sztanpet.net/zvpsz/rrc/internal/file"
	"code.sztanpet.net/zvpsz/rrc/internal/telegram"
	"github.com/juju/loggo"
)

const repoPrefix = "rrc/"

// sender is the part of telegram.Bot the writer needs
type sender interface {
	Send(txt string, disableNotification bool) error
}

type writer struct {
	path string
	bot  sender
	wg   sync.WaitGroup
}

// Setup configures log levels from cfg.Logging and, when a state path is
// configured, replaces the default stderr writer with one logging into
// <state path>/<binary>.log and shipping messages to telegram.
// bot may be nil.
func Setup(bot *telegram.Bot, cfg *config.Config) error {
	if err := loggo.ConfigureLoggers(cfg.Logging); err != nil {
		return err
	}

	if cfg.StatePath == "" {
		return nil
	}

	path, err := os.Executable()
	if err != nil {
		return err
	}

	w := &writer{
		path: filepath.Join(cfg.StatePath, filepath.Base(path)+".log"),
	}
	// a nil *Bot in the interface would not compare to nil
	if bot != nil {
		w.bot = bot
	}

	if _, err := loggo.RemoveWriter("default"); err != nil {
		return err
	}

	return loggo.RegisterWriter("default", w)
}

func (w *writer) Write(e loggo.Entry) {
	line := formatEntry(e)

	fp := e.Filename
	if ix := strings.Index(fp, repoPrefix); ix != -1 {
		fp = fp[ix+len(repoPrefix):]
	}

	l := fmt.Sprintf("%v%v:%v %v\n",
		e.Timestamp.Format("[2006-01-02 15:04:05] "),
		fp, e.Line,
		line,
	)
	if err := file.Append(w.path, []byte(l)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write log file: %v\n", err)
	}

	if w.bot == nil {
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		// only warnings and worse should make a phone buzz
		silent := e.Level < loggo.WARNING
		if err := w.bot.Send(line, silent); err != nil {
			fmt.Fprintf(os.Stderr, "%v bot send error: %v\n", e.Timestamp.Format("[2006-01-02 15:04:05]"), err)
		}
	}()
}

// formatEntry indicates the level like T1 for TRACE, D2 for DEBUG, etc
func formatEntry(e loggo.Entry) string {
	return fmt.Sprintf(
		"[%v%v|%v:%v:%v] %v",
		string(e.Level.String()[0]),
		int(e.Level),
		e.Module,
		filepath.Base(e.Filename),
		e.Line,
		e.Message,
	)
}
