package repositories

import (
	"context"

	"github.com/rios0rios0/wheelsync/internal/domain/repositories"
	"github.com/rios0rios0/wheelsync/internal/infrastructure/repositories/filesystem"
	"github.com/rios0rios0/wheelsync/internal/infrastructure/repositories/gitvcs"
)

// WorkspaceOpener binds a directory on disk to its git repository.
type WorkspaceOpener struct{}

// NewWorkspaceOpener creates a new WorkspaceOpener.
func NewWorkspaceOpener() *WorkspaceOpener {
	return &WorkspaceOpener{}
}

// Open returns the git-backed workspace for dir.
func (it *WorkspaceOpener) Open(ctx context.Context, dir string) (*repositories.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	directory, err := it.OpenDirectory(dir)
	if err != nil {
		return nil, err
	}

	vcs, err := gitvcs.NewVCSRepository(dir)
	if err != nil {
		return nil, err
	}

	return &repositories.Workspace{
		VCS:       vcs,
		Directory: directory,
	}, nil
}

// OpenDirectory returns the OS-backed file listing of dir.
func (it *WorkspaceOpener) OpenDirectory(dir string) (repositories.DirectoryRepository, error) {
	directory, err := filesystem.NewOsDirectoryRepository(dir)
	if err != nil {
		return nil, err
	}
	return directory, nil
}
