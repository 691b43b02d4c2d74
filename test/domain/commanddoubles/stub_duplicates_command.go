//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/wheelsync/internal/domain/commands"
	"github.com/rios0rios0/wheelsync/internal/domain/entities"
)

// StubDuplicatesCommand is a stub implementation of commands.Duplicates.
type StubDuplicatesCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Groups           []entities.DuplicateGroup
	LastDir          string
}

var _ commands.Duplicates = (*StubDuplicatesCommand)(nil)

func (s *StubDuplicatesCommand) Execute(_ context.Context, dir string) ([]entities.DuplicateGroup, error) {
	s.ExecuteCallCount++
	s.LastDir = dir
	return s.Groups, s.ExecuteErr
}
