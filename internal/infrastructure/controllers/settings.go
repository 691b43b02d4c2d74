package controllers

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/wheelsync/internal/domain/entities"
)

// loadSettings reads the settings file named by --config, or the first one
// found in the default locations, and raises the log level when debugging
// was requested by either the settings or the --debug flag.
func loadSettings(ctx context.Context, cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		switch {
		case err == nil:
			configPath = found
		case errors.Is(err, entities.ErrConfigNotFound):
			logger.Debug("No config file found, using defaults")
		default:
			return nil, err
		}
	}

	if configPath != "" {
		logger.Debugf("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(ctx, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug || settings.Debug {
		logger.SetLevel(logger.DebugLevel)
	}

	return settings, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func targetDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
