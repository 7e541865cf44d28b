package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/marquee-cli/marquee/auth"
	"github.com/marquee-cli/marquee/key"
	"github.com/spf13/viper"
)

// EnvAPIKey is the conventional variable most TMDB tools read.
const EnvAPIKey = "TMDB_API_KEY"

// ConfigurationError reports a setting the program cannot run without.
type ConfigurationError struct {
	Key  string
	Hint string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration %q: %s", e.Key, e.Hint)
}

// APIKey resolves the TMDB API key from the config, the environment and the keyring, in that order.
func APIKey() (string, error) {
	if v := strings.TrimSpace(viper.GetString(key.TMDBAPIKey)); v != "" {
		return v, nil
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		return v, nil
	}

	if v, err := auth.GetAPIKey(); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}

	field := Default[key.TMDBAPIKey]
	return "", &ConfigurationError{
		Key:  key.TMDBAPIKey,
		Hint: fmt.Sprintf("set %s or %s, or run \"marquee key set\"", field.Env(), EnvAPIKey),
	}
}
