package repositories

import (
	"github.com/rios0rios0/wheelsync/internal/domain/repositories"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewWorkspaceOpener); err != nil {
		return err
	}

	// Bind the domain interface to the git-backed implementation
	if err := container.Provide(func(impl *WorkspaceOpener) repositories.WorkspaceOpener {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
