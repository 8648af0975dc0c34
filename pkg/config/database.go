package config

import (
	"fmt"

	dbutils "github.com/tendant/db-utils/db"
)

// DatabaseConfig holds PostgreSQL database configuration
// This is shared across all services to avoid duplication
type DatabaseConfig struct {
	Host     string `env:"PANEL_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"PANEL_PG_PORT" env-default:"5432"`
	Database string `env:"PANEL_PG_DATABASE" env-default:"panel_db"`
	User     string `env:"PANEL_PG_USER" env-default:"panel"`
	Password string `env:"PANEL_PG_PASSWORD" env-default:"pwd"`
	Schema   string `env:"PANEL_PG_SCHEMA" env-default:"public"`
}

// ToDatabaseURL converts the config to a PostgreSQL connection URL
func (d DatabaseConfig) ToDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s,public",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}

// ToDbConfig converts the config to a db-utils DbConfig
func (d DatabaseConfig) ToDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

// Validate checks that the database configuration is usable
func (d DatabaseConfig) Validate() error {
	return Validate(
		func() ValidationErrors {
			return CollectErrors(
				RequireNonEmpty("host", d.Host),
				RequireValidPort("port", d.Port),
				RequireNonEmpty("database", d.Database),
				RequireNonEmpty("user", d.User),
				RequireNonEmpty("password", d.Password),
			)
		},
	)
}

// NewDatabaseConfigFromEnv creates a DatabaseConfig from environment variables
func NewDatabaseConfigFromEnv() DatabaseConfig {
	return DatabaseConfig{
		Host:     GetEnvOrDefault("PANEL_PG_HOST", "localhost"),
		Port:     GetEnvUint16("PANEL_PG_PORT", 5432),
		Database: GetEnvOrDefault("PANEL_PG_DATABASE", "panel_db"),
		User:     GetEnvOrDefault("PANEL_PG_USER", "panel"),
		Password: GetEnvOrDefault("PANEL_PG_PASSWORD", "pwd"),
		Schema:   GetEnvOrDefault("PANEL_PG_SCHEMA", "public"),
	}
}
