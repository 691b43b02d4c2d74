package repositories

import "context"

// Workspace bundles the collaborators bound to one reconciled directory.
type Workspace struct {
	VCS       VCSRepository
	Directory DirectoryRepository
}

// WorkspaceOpener binds collaborators to a directory chosen at runtime.
type WorkspaceOpener interface {
	// Open returns the workspace for dir, which must live inside a repository.
	Open(ctx context.Context, dir string) (*Workspace, error)

	// OpenDirectory returns only the file listing of dir, without version control.
	OpenDirectory(dir string) (DirectoryRepository, error)
}
