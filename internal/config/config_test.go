package config_test

import (
	"testing"

	"code.sztanpet.net/zvpsz/rrc/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string {
		return m[k]
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := config.Load(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyAMA0", cfg.Device)
	assert.Equal(t, 1000000, cfg.BaudRate)
	assert.Equal(t, "/sys/class/pwm/pwmchip0", cfg.PWMChip)
	assert.Equal(t, "<root>=INFO", cfg.Logging)
	assert.Empty(t, cfg.StatePath)
	assert.Empty(t, cfg.SequencePath)
	assert.Empty(t, cfg.TelegramToken)
	assert.False(t, cfg.Local())
}

func TestOverrides(t *testing.T) {
	cfg, err := config.Load(env(map[string]string{
		"RRC_DEVICE":         "pwm",
		"RRC_BAUDRATE":       "115200",
		"RRC_PWM_CHIP":       "/tmp/pwmchip1",
		"RRC_STATE_PATH":     "/var/lib/rrc",
		"RRC_LOGGING":        "rrc=TRACE",
		"RRC_SEQUENCE":       "/etc/rrc/steps.yaml",
		"TELEGRAM_TOKEN":     "123:abc",
		"TELEGRAM_CHANNELID": "-1001234",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.Local())
	assert.Equal(t, 115200, cfg.BaudRate)
	assert.Equal(t, "/tmp/pwmchip1", cfg.PWMChip)
	assert.Equal(t, "/var/lib/rrc", cfg.StatePath)
	assert.Equal(t, "rrc=TRACE", cfg.Logging)
	assert.Equal(t, "/etc/rrc/steps.yaml", cfg.SequencePath)
	assert.Equal(t, int64(-1001234), cfg.TelegramChannelID)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"baudrate not a number", map[string]string{"RRC_BAUDRATE": "fast"}},
		{"baudrate zero", map[string]string{"RRC_BAUDRATE": "0"}},
		{"token without channel", map[string]string{"TELEGRAM_TOKEN": "123:abc"}},
		{"bad channel", map[string]string{"TELEGRAM_TOKEN": "123:abc", "TELEGRAM_CHANNELID": "chan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(env(tt.env))
			assert.Error(t, err)
		})
	}
}
