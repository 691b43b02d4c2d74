package entities

import (
	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Settings are not registered: they depend on the --config flag and are
// loaded by the controllers layer.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(func() logger.FieldLogger {
		return logger.StandardLogger()
	})
}
