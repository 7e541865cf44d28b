// Package auth stores the TMDB API key in the system keyring.
package auth

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	service = "marquee-cli"
	user    = "tmdb-api-key"
)

// ErrNoAPIKey is returned when the keyring holds no key for marquee.
var ErrNoAPIKey = errors.New("no api key stored in the system keyring")

// SetAPIKey persists the key, replacing any previous one.
func SetAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(service, user, apiKey)
}

// GetAPIKey reads the stored key. A missing entry is reported as ErrNoAPIKey.
func GetAPIKey() (string, error) {
	apiKey, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoAPIKey
	}
	return apiKey, err
}

// DeleteAPIKey removes the stored key. Deleting a missing key is not an error.
func DeleteAPIKey() error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
