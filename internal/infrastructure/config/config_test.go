package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/zoneplanner-go/internal/infrastructure/config"
)

func defaultConfig() *config.Config {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	return cfg
}

func TestSetDefaults(t *testing.T) {
	// Act
	cfg := defaultConfig()

	// Assert
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "zoneplanner.db", cfg.Database.Path)
	assert.Equal(t, 25, cfg.Database.Pool.MaxOpen)
	assert.Equal(t, 5, cfg.Database.Pool.MaxIdle)
	assert.Equal(t, 5*time.Minute, cfg.Database.Pool.MaxLifetime)
	assert.Equal(t, 20000, cfg.Solver.MaxNodes)
	assert.InDelta(t, 1e-6, cfg.Solver.IntegerTolerance, 0)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	// Arrange
	cfg := &config.Config{}
	cfg.Database.Type = "postgres"
	cfg.Solver.MaxNodes = 500

	// Act
	config.SetDefaults(cfg)

	// Assert
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 500, cfg.Solver.MaxNodes)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	// Act
	err := config.ValidateConfig(defaultConfig())

	// Assert
	require.NoError(t, err)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{
			name:   "unknown database type",
			mutate: func(cfg *config.Config) { cfg.Database.Type = "oracle" },
		},
		{
			name:   "port out of range",
			mutate: func(cfg *config.Config) { cfg.Database.Port = 70000 },
		},
		{
			name:   "non-positive pool size",
			mutate: func(cfg *config.Config) { cfg.Database.Pool.MaxOpen = -1 },
		},
		{
			name:   "non-positive solver node budget",
			mutate: func(cfg *config.Config) { cfg.Solver.MaxNodes = -5 },
		},
		{
			name:   "negative integer tolerance",
			mutate: func(cfg *config.Config) { cfg.Solver.IntegerTolerance = -1e-6 },
		},
		{
			name:   "unknown log level",
			mutate: func(cfg *config.Config) { cfg.Logging.Level = "trace" },
		},
		{
			name:   "unknown log output",
			mutate: func(cfg *config.Config) { cfg.Logging.Output = "file" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cfg := defaultConfig()
			tt.mutate(cfg)

			// Act
			err := config.ValidateConfig(cfg)

			// Assert
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoadConfigOrDefaultFallsBackOnMissingFile(t *testing.T) {
	// Act
	cfg := config.LoadConfigOrDefault("")

	// Assert
	require.NotNil(t, cfg)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 20000, cfg.Solver.MaxNodes)
}
