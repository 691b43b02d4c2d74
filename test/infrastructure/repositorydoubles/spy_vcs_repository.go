//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/spf13/afero"

	"github.com/rios0rios0/wheelsync/internal/domain/repositories"
)

// SpyVCSRepository implements repositories.VCSRepository as a configurable spy.
// When Fs is set, Remove also deletes the file from it, like a real working tree.
type SpyVCSRepository struct {
	Fs afero.Fs

	// --- ModifiedFiles ---
	Modified    []string
	ModifiedErr error

	// --- UntrackedFiles ---
	Untracked    []string
	UntrackedErr error

	// --- RestoreFromUpstream ---
	RestoreErr   error
	RestoreCalls []RestoreCall

	// --- Add ---
	AddErr     error
	AddedPaths []string

	// --- Remove ---
	RemoveErr    error
	RemovedPaths []string
}

// RestoreCall records a single invocation of RestoreFromUpstream.
type RestoreCall struct {
	Remote string
	Branch string
	Path   string
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (s *SpyVCSRepository) ModifiedFiles(_ context.Context) ([]string, error) {
	return s.Modified, s.ModifiedErr
}

func (s *SpyVCSRepository) UntrackedFiles(_ context.Context) ([]string, error) {
	return s.Untracked, s.UntrackedErr
}

func (s *SpyVCSRepository) RestoreFromUpstream(_ context.Context, remote, branch, path string) error {
	s.RestoreCalls = append(s.RestoreCalls, RestoreCall{Remote: remote, Branch: branch, Path: path})
	return s.RestoreErr
}

func (s *SpyVCSRepository) Add(_ context.Context, path string) error {
	s.AddedPaths = append(s.AddedPaths, path)
	return s.AddErr
}

func (s *SpyVCSRepository) Remove(_ context.Context, path string) error {
	s.RemovedPaths = append(s.RemovedPaths, path)
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	if s.Fs != nil {
		return s.Fs.Remove(path)
	}
	return nil
}

// MutationCount is the number of restore, add and remove calls received.
func (s *SpyVCSRepository) MutationCount() int {
	return len(s.RestoreCalls) + len(s.AddedPaths) + len(s.RemovedPaths)
}
