package config

import (
	"fmt"
	"os"
	"strconv"

	"code.sztanpet.net/zvpsz/rrc/internal/board"
	"code.sztanpet.net/zvpsz/rrc/internal/pwm"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("rrc.config")

// LocalDevice as RRC_DEVICE plays buzzer commands on the host's pwm buzzer instead of the board
const LocalDevice = "pwm"

type Config struct {
	Device            string
	BaudRate          int
	PWMChip           string
	StatePath         string
	Logging           string
	SequencePath      string
	TelegramToken     string
	TelegramChannelID int64
}

// Local reports whether commands go to the local pwm buzzer
func (c *Config) Local() bool {
	return c.Device == LocalDevice
}

// Get reads the config from the environment and exits on errors
func Get() *Config {
	cfg, err := Load(os.Getenv)
	if err != nil {
		logger.Criticalf("invalid configuration: %v", err)
		os.Exit(1)
	}

	return cfg
}

// Load reads the config through getenv
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Device:        getenv("RRC_DEVICE"),
		PWMChip:       getenv("RRC_PWM_CHIP"),
		StatePath:     getenv("RRC_STATE_PATH"),
		Logging:       getenv("RRC_LOGGING"),
		SequencePath:  getenv("RRC_SEQUENCE"),
		TelegramToken: getenv("TELEGRAM_TOKEN"),
	}

	if cfg.Device == "" {
		cfg.Device = board.DefaultDevice
	}
	if cfg.PWMChip == "" {
		cfg.PWMChip = pwm.DefaultChip
	}
	if cfg.Logging == "" {
		cfg.Logging = "<root>=INFO"
	}

	cfg.BaudRate = board.DefaultBaudRate
	if br := getenv("RRC_BAUDRATE"); br != "" {
		v, err := strconv.Atoi(br)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("failed parsing RRC_BAUDRATE %q", br)
		}
		cfg.BaudRate = v
	}

	// telegram is optional, but a token without a channel is a mistake
	if cfg.TelegramToken != "" {
		cid := getenv("TELEGRAM_CHANNELID")
		if cid == "" {
			return nil, fmt.Errorf("empty TELEGRAM_CHANNELID env var with TELEGRAM_TOKEN set")
		}

		v, err := strconv.ParseInt(cid, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed parsing TELEGRAM_CHANNELID %q", cid)
		}
		cfg.TelegramChannelID = v
	}

	return cfg, nil
}
