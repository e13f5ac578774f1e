package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeConfig_Logging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = " Warning "
	cfg.Logging.Format = "yaml"

	res, err := NormalizeConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Len(t, res.Warnings, 2)
}

func TestNormalizeConfig_EmptyValuesUseDefaults(t *testing.T) {
	cfg := &Config{}
	res, err := NormalizeConfig(cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, "html", cfg.Templates.Extension)
	assert.Equal(t, "page", cfg.Templates.Default)
}

func TestNormalizeConfig_Nil(t *testing.T) {
	_, err := NormalizeConfig(nil)
	assert.Error(t, err)
}

func TestLogLevel_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogLevelDebug.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogLevelInfo.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogLevelWarn.SlogLevel())
	assert.Equal(t, slog.LevelError, LogLevelError.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogLevel("bogus").SlogLevel())
	assert.Equal(t, LogLevel(""), NormalizeLogLevel("bogus"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
}
