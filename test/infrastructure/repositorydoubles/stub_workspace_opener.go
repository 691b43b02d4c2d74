//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/wheelsync/internal/domain/repositories"
)

// StubWorkspaceOpener implements repositories.WorkspaceOpener with fixed results.
type StubWorkspaceOpener struct {
	Workspace *repositories.Workspace
	OpenErr   error
	OpenedDir string

	Directory        repositories.DirectoryRepository
	OpenDirectoryErr error
	OpenedDirectory  string
}

var _ repositories.WorkspaceOpener = (*StubWorkspaceOpener)(nil)

func (s *StubWorkspaceOpener) Open(_ context.Context, dir string) (*repositories.Workspace, error) {
	s.OpenedDir = dir
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	return s.Workspace, nil
}

func (s *StubWorkspaceOpener) OpenDirectory(dir string) (repositories.DirectoryRepository, error) {
	s.OpenedDirectory = dir
	if s.OpenDirectoryErr != nil {
		return nil, s.OpenDirectoryErr
	}
	return s.Directory, nil
}
