package logger_test

import (
	"bytes"
	"errors"
	"nightlife/config"
	"nightlife/shared/logger"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger(&config.Config{})

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestInitLogger_FileSink(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Log.FilePath = filepath.Join(t.TempDir(), "nightlife.log")
	cfg.Log.MaxSizeMB = 1

	logger.InitLogger(cfg)
	log.Info().Str("booking_code", "AB12CD34").Msg("booking created")

	content, err := os.ReadFile(cfg.Log.FilePath)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "AB12CD34")
}

func TestInitLogger_ServiceField(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.App.Name = "nightlife"
	cfg.Log.FilePath = filepath.Join(t.TempDir(), "nightlife.log")

	logger.InitLogger(cfg)
	log.Info().Msg("ready")

	content, err := os.ReadFile(cfg.Log.FilePath)
	assert.NoError(t, err)
	assert.Contains(t, string(content), `"service":"nightlife"`)
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("failed to insert data (booking)"))

	assert.Contains(t, buf.String(), "failed to insert data (booking)")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{name: "debug level", logLevel: "debug", expectedLevel: zerolog.DebugLevel},
		{name: "info level", logLevel: "info", expectedLevel: zerolog.InfoLevel},
		{name: "error level", logLevel: "error", expectedLevel: zerolog.ErrorLevel},
		{name: "invalid level defaults to info", logLevel: "loud", expectedLevel: zerolog.InfoLevel},
		{name: "empty level defaults to info", logLevel: "", expectedLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}
