package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/slidedeck/internal/domain"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "SLIDEDECK"

// keys lists every configuration key so that environment variables are
// picked up by Unmarshal even when no file or default mentions the key.
var keys = []string{
	"server.port",
	"server.log_level",
	"database.url",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"editor.id_length",
	"editor.id_max_attempts",
	"editor.strict_index",
	"editor.theme.background_color",
	"editor.theme.theme_color",
	"editor.theme.font_color",
	"editor.theme.font_name",
	"task.worker_count",
	"task.queue_size",
}

func setDefaults(v *viper.Viper) {
	theme := domain.DefaultTheme()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("editor.id_length", 8)
	v.SetDefault("editor.id_max_attempts", 10)
	v.SetDefault("editor.strict_index", false)
	v.SetDefault("editor.theme.background_color", theme.BackgroundColor)
	v.SetDefault("editor.theme.theme_color", theme.ThemeColor)
	v.SetDefault("editor.theme.font_color", theme.FontColor)
	v.SetDefault("editor.theme.font_name", theme.FontName)
	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
}

// Load reads configuration from an optional config.yaml in the working
// directory and from SLIDEDECK_* environment variables, which take
// precedence. The result is validated before it is returned.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory for config.yaml and tolerates its absence; a non-empty
// path must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
