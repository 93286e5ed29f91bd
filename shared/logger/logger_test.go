package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"venuebook/config"
	"venuebook/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func preserve(t *testing.T) {
	t.Helper()

	original, level, format := log.Logger, zerolog.GlobalLevel(), zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = format
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{name: "trace", want: zerolog.TraceLevel},
		{name: "debug", want: zerolog.DebugLevel},
		{name: "warn", want: zerolog.WarnLevel},
		{name: "error", want: zerolog.ErrorLevel},
		{name: "disabled", want: zerolog.Disabled},
		{name: "", want: zerolog.InfoLevel},
		{name: "invalid_level", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.name))
		})
	}
}

func TestConfigure(t *testing.T) {
	preserve(t)

	var buf bytes.Buffer
	logger.Configure(&buf, "warn", "sweeper")

	log.Info().Msg("dropped")
	log.Warn().Str("booking_id", "b-1").Msg("expired")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"service":"sweeper"`)
	assert.Contains(t, buf.String(), `"booking_id":"b-1"`)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestConfigureWithoutService(t *testing.T) {
	preserve(t)

	var buf bytes.Buffer
	logger.Configure(&buf, "info", "")

	log.Info().Msg("ready")
	assert.NotContains(t, buf.String(), `"service"`)
}

func TestInit(t *testing.T) {
	preserve(t)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "error"

	assert.NotPanics(t, func() { logger.Init(cfg, "app") })
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	preserve(t)

	var buf bytes.Buffer
	logger.Configure(&buf, "info", "")

	logger.ErrorWithStack(errors.New("insert booking failed"))

	assert.Contains(t, buf.String(), "insert booking failed")
	assert.Contains(t, buf.String(), `"level":"error"`)
}
