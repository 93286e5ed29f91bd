package logger

import (
	"io"
	"os"
	"time"

	"venuebook/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// Init configures the global logger for a binary: human-readable console output in development,
// JSON lines everywhere else, every line tagged with the service name.
func Init(config *config.Config, service string) {
	var output io.Writer = os.Stdout
	if config.IsDevelopment() {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	Configure(output, config.Server.LogLevel, service)
}

// Configure is Init with an explicit writer.
func Configure(output io.Writer, level, service string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ParseLevel(level))

	builder := zerolog.New(output).With().Timestamp()
	if service != "" {
		builder = builder.Str("service", service)
	}

	log.Logger = builder.Logger()
}

// ParseLevel falls back to info for empty or unknown names.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return defaultLevel
	}

	return level
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
