package config

import "time"

// DatabaseConfig selects the storage backend. SQLite is the default and only
// needs Path; the remaining fields configure a postgres deployment.
type DatabaseConfig struct {
	// Type is "sqlite" or "postgres".
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// Path is the SQLite database file, or ":memory:" for a throwaway store.
	Path string `mapstructure:"path"`

	// URL, when set, is passed verbatim as the postgres DSN and the
	// field-by-field settings below are ignored.
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig tunes the postgres connection pool. SQLite ignores it.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
