package entities

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by FindConfigFile when no settings file exists.
var ErrConfigNotFound = errors.New("config file not found in default locations")

// Settings holds the persistent wheelsync configuration. Values come from an
// optional YAML file and are overridden by WHEELSYNC_* environment variables.
type Settings struct {
	Remote string `yaml:"remote" env:"WHEELSYNC_REMOTE,overwrite"`
	Branch string `yaml:"branch" env:"WHEELSYNC_BRANCH,overwrite"`
	Debug  bool   `yaml:"debug"  env:"WHEELSYNC_DEBUG,overwrite"`
}

// NewSettings reads the settings file at path, or only the environment when
// path is empty, and fills in defaults.
func NewSettings(ctx context.Context, path string) (*Settings, error) {
	var settings Settings

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, unmarshalErr)
		}
	}

	if err := envconfig.Process(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if settings.Remote == "" {
		settings.Remote = DefaultRemote
	}

	return &settings, nil
}

// FindConfigFile searches for a settings file in standard locations and
// returns the first one found.
func FindConfigFile() (string, error) {
	locations := []string{".", ".config"}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".wheelsync.yaml",
		".wheelsync.yml",
		"wheelsync.yaml",
		"wheelsync.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}
