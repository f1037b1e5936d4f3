package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tailtrack/tailtrack/internal/shared/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewLoggerOutsideProdHasNoSentryWriter(t *testing.T) {
	_, writer := NewLogger(&config.Config{Environment: "dev", LogLevel: "debug"})
	assert.Nil(t, writer)
}

func TestConsoleLoggerWrites(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf)

	logger.Info().Str("pet_id", "demo-pet-1").Msg("Record created")

	assert.Contains(t, buf.String(), "Record created")
	assert.Contains(t, buf.String(), "demo-pet-1")
}
