// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"nightlife/config"
	"nightlife/shared/constant"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLevel = zerolog.InfoLevel

// stdout is human readable in development and JSON elsewhere, so log
// shippers can parse it.
func stdout(cfg *config.Config) io.Writer {
	if cfg.Server.Env == "" || cfg.Server.Env == constant.ServerEnvDevelopment {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return os.Stdout
}

// InitLogger also tees into a rotating JSON file when LOG_FILE_PATH is set.
// Everything is emitted until SetLogLevel narrows it.
func InitLogger(cfg *config.Config) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := stdout(cfg)
	if cfg.Log.FilePath != "" {
		output = zerolog.MultiLevelWriter(output, FileWriter(cfg))
	}

	ctx := zerolog.New(output).With().Timestamp()
	if cfg.App.Name != "" {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	log.Logger = ctx.Logger()
}

func FileWriter(cfg *config.Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Empty or unknown values select info.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)

	switch {
	case err != nil:
		log.Warn().Str("loglevel", cfg.Server.LogLevel).Msg("unknown log level, using info")

		level = defaultLevel
	case level == zerolog.NoLevel:
		level = defaultLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("loglevel", level.String()).Msg("log level set")
}
