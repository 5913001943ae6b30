package config

import "github.com/phrazzld/slidedeck/internal/domain"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Editor   EditorConfig   `mapstructure:"editor"   validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains database settings. Persistence is optional: an
// empty URL runs the service purely in memory.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// AuthConfig contains authentication settings. An empty secret disables
// bearer token checks on the API.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=44640"`
}

// Enabled reports whether token authentication is configured.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// EditorConfig holds the defaults applied to every deck the service edits.
type EditorConfig struct {
	IDLength      int          `mapstructure:"id_length"       validate:"required,gte=4,lte=64"`
	MaxIDAttempts int          `mapstructure:"id_max_attempts" validate:"required,gt=0,lte=1000"`
	StrictIndex   bool         `mapstructure:"strict_index"`
	Theme         domain.Theme `mapstructure:"theme"           validate:"required"`
}

// TaskConfig sizes the background worker pool that persists snapshots.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0,lte=64"`
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
}
