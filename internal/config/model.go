package config

import "time"

// Config is the application configuration, populated from config files,
// environment variables and defaults.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Sim       SimConfig       `mapstructure:"sim"`
	Gsuite    GsuiteConfig    `mapstructure:"gsuite"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DirectoryConfig selects which directory backend serves group, member and
// user lookups.
type DirectoryConfig struct {
	Backend string `mapstructure:"backend"`
}

// SimConfig configures the SIM REST backend.
type SimConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// GsuiteConfig configures the Google Workspace backend. The service account
// key must carry domain-wide delegation for the admin email.
type GsuiteConfig struct {
	ServiceAccountKeyPath string `mapstructure:"service_account_key_path"`
	Domain                string `mapstructure:"domain"`
	AdminEmail            string `mapstructure:"admin_email"`
}
