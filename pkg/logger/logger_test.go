package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallpick/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"verbose", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := parseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	_, err := New(&config.LoggingConfig{Level: "nope"})
	assert.Error(t, err)
}

func TestTestLoggerCaptures(t *testing.T) {
	log := NewTestLogger()

	log.Info("starting up")
	log.ErrorWithFields("download failed", map[string]interface{}{"url": "https://x/img.jpg"})

	assert.True(t, log.HasMessage("INFO", "starting up"))
	assert.True(t, log.HasMessage("ERROR", "download failed"))

	messages := log.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "https://x/img.jpg", messages[1].Fields["url"])
}

func TestTestLoggerWithFields(t *testing.T) {
	log := NewTestLogger()

	log.WithField("page", 2).Warn("empty page")

	messages := log.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, 2, messages[0].Fields["page"])

	log.WithError(assert.AnError).Error("boom")
	assert.True(t, log.HasMessage("ERROR", "boom"))
}
