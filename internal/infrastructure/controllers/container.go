package controllers

import (
	"github.com/rios0rios0/wheelsync/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewReconcileController); err != nil {
		return err
	}
	if err := container.Provide(NewDuplicatesController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates the subcommand controllers for the AppInternal.
// The reconcile controller is bound to the root command instead.
func NewControllers(
	duplicatesController *DuplicatesController,
) *[]entities.Controller {
	return &[]entities.Controller{
		duplicatesController,
	}
}
