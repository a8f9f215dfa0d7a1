package logger

import (
	"io"
	"os"
	"time"

	"hotel/config"
	"hotel/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger at trace level so startup is visible
// before the configuration is read.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// SetLogLevel applies SERVER_LOG_LEVEL and switches to JSON lines outside development.
func SetLogLevel(cfg *config.Config) {
	log.Logger = New(cfg, os.Stdout)

	log.Debug().Str("level", zerolog.GlobalLevel().String()).Str("env", cfg.Server.Env).Msg("Logger configured")
}

// New builds the service logger writing to out. It also sets the global level.
func New(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Server.Env == constant.ServerEnvDevelopment {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.App.Name != "" {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	return ctx.Logger()
}

// ErrorWithStack logs err with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
