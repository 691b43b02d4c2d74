package internal

import (
	"github.com/rios0rios0/wheelsync/internal/domain/entities"
	"github.com/rios0rios0/wheelsync/internal/infrastructure/controllers"
)

// AppInternal holds the wired controllers of the application.
type AppInternal struct {
	rootController *controllers.ReconcileController
	controllers    []entities.Controller
}

// NewAppInternal creates the AppInternal from the injected controllers.
func NewAppInternal(
	rootController *controllers.ReconcileController,
	subControllers *[]entities.Controller,
) *AppInternal {
	return &AppInternal{
		rootController: rootController,
		controllers:    *subControllers,
	}
}

// GetRootController returns the controller bound to the root command.
func (it *AppInternal) GetRootController() *controllers.ReconcileController {
	return it.rootController
}

// GetControllers returns the controllers bound to subcommands.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
