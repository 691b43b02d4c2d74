//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/wheelsync/internal/domain/commands"
	"github.com/rios0rios0/wheelsync/internal/domain/entities"
)

// StubReconcileCommand is a stub implementation of commands.Reconcile.
type StubReconcileCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *entities.Report
	LastOpts         entities.ReconcileOptions
}

var _ commands.Reconcile = (*StubReconcileCommand)(nil)

func (s *StubReconcileCommand) Execute(
	_ context.Context,
	opts entities.ReconcileOptions,
) (*entities.Report, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Report != nil {
		return s.Report, nil
	}
	return &entities.Report{DryRun: opts.DryRun}, nil
}
