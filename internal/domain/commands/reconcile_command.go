package commands

import (
	"context"
	"fmt"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/wheelsync/internal/domain/entities"
	"github.com/rios0rios0/wheelsync/internal/domain/repositories"
)

const maxCandidates = 2

// Reconcile is the interface for the reconcile command.
type Reconcile interface {
	Execute(ctx context.Context, opts entities.ReconcileOptions) (*entities.Report, error)
}

// ReconcileCommand brings a directory of wheels back in line with version
// control after new wheels were copied over it.
type ReconcileCommand struct {
	opener repositories.WorkspaceOpener
	log    logger.FieldLogger
}

// NewReconcileCommand creates a new ReconcileCommand.
func NewReconcileCommand(opener repositories.WorkspaceOpener, log logger.FieldLogger) *ReconcileCommand {
	return &ReconcileCommand{
		opener: opener,
		log:    log,
	}
}

// Execute opens the workspace at opts.Dir and reconciles it.
func (it *ReconcileCommand) Execute(
	ctx context.Context,
	opts entities.ReconcileOptions,
) (*entities.Report, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Remote == "" {
		opts.Remote = entities.DefaultRemote
	}

	workspace, err := it.opener.Open(ctx, opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace %s: %w", opts.Dir, err)
	}

	return ReconcileWorkspace(ctx, workspace, opts, it.log)
}

// ReconcileWorkspace runs the three passes over an open workspace, in order:
// restore overwritten wheels, adopt new wheels (dropping the version they
// supersede), then warn about packages that still have several wheels.
//
// In dry-run mode nothing is mutated, the same lines are logged and the
// duplicate scan is skipped. The returned report is non-nil even on error
// and lists what was done before the failure.
func ReconcileWorkspace(
	ctx context.Context,
	workspace *repositories.Workspace,
	opts entities.ReconcileOptions,
	log logger.FieldLogger,
) (*entities.Report, error) {
	report := &entities.Report{DryRun: opts.DryRun}
	if opts.DryRun {
		log = log.WithField("dry_run", true)
	}

	if err := restoreModified(ctx, workspace.VCS, opts, log, report); err != nil {
		return report, err
	}

	if err := adoptNew(ctx, workspace, opts, log, report); err != nil {
		return report, err
	}

	if opts.DryRun {
		return report, nil
	}

	duplicates, err := findDuplicates(workspace.Directory)
	if err != nil {
		return report, err
	}
	warnDuplicates(log, duplicates)
	report.Duplicates = duplicates

	return report, nil
}

// restoreModified checks out the committed version of every overwritten wheel.
func restoreModified(
	ctx context.Context,
	vcs repositories.VCSRepository,
	opts entities.ReconcileOptions,
	log logger.FieldLogger,
	report *entities.Report,
) error {
	modified, err := vcs.ModifiedFiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list modified files: %w", err)
	}

	for _, path := range entities.FilterWheels(modified) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		log.Infof("Re-checking out %s", path)
		if !opts.DryRun {
			if restoreErr := vcs.RestoreFromUpstream(ctx, opts.Remote, opts.Branch, path); restoreErr != nil {
				return fmt.Errorf("failed to restore %s: %w", path, restoreErr)
			}
		}
		report.Restored = append(report.Restored, path)
	}

	return nil
}

// adoptNew stages every untracked wheel and removes the wheel it supersedes.
func adoptNew(
	ctx context.Context,
	workspace *repositories.Workspace,
	opts entities.ReconcileOptions,
	log logger.FieldLogger,
	report *entities.Report,
) error {
	untracked, err := workspace.VCS.UntrackedFiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list untracked files: %w", err)
	}

	newWheels := entities.FilterWheels(untracked)
	log.Debugf("Found %d untracked wheel(s)", len(newWheels))

	for _, path := range newWheels {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		newWheel := entities.ParseWheel(path)
		candidates, globErr := workspace.Directory.Glob(newWheel.CandidatePattern())
		if globErr != nil {
			return fmt.Errorf("failed to list wheels of package %s: %w", newWheel.Package, globErr)
		}
		log.Debugf("Wheels of package %s: %v", newWheel.Package, candidates)

		oldPath, ruleErr := supersededWheel(newWheel, candidates)
		if ruleErr != nil {
			return ruleErr
		}

		if oldPath != "" {
			warnDowngrade(log, entities.ParseWheel(oldPath), newWheel)
			log.Infof("Removing old wheel %s", oldPath)
			if !opts.DryRun {
				if removeErr := workspace.VCS.Remove(ctx, oldPath); removeErr != nil {
					return fmt.Errorf("failed to remove %s: %w", oldPath, removeErr)
				}
			}
			report.Removed = append(report.Removed, oldPath)
		}

		log.Infof("Adding new wheel %s", path)
		if !opts.DryRun {
			if addErr := workspace.VCS.Add(ctx, path); addErr != nil {
				return fmt.Errorf("failed to add %s: %w", path, addErr)
			}
		}
		report.Added = append(report.Added, path)
	}

	return nil
}

// supersededWheel returns the other wheel of the same package, or "" when the
// new wheel is the only one. More than one other wheel is never resolved.
func supersededWheel(newWheel entities.Wheel, candidates []string) (string, error) {
	if !slices.Contains(candidates, newWheel.Path) {
		return "", &entities.InvariantViolationError{
			Rule:       entities.RuleMembership,
			Package:    newWheel.Package,
			NewWheel:   newWheel.Path,
			Candidates: candidates,
		}
	}

	if len(candidates) > maxCandidates {
		return "", &entities.InvariantViolationError{
			Rule:       entities.RuleCardinality,
			Package:    newWheel.Package,
			NewWheel:   newWheel.Path,
			Candidates: candidates,
		}
	}

	for _, candidate := range candidates {
		if candidate != newWheel.Path {
			return candidate, nil
		}
	}
	return "", nil
}

// warnDowngrade flags a new wheel that carries a lower version than the one
// it replaces. Versions that are not semantic versions are not compared.
func warnDowngrade(log logger.FieldLogger, oldWheel, newWheel entities.Wheel) {
	cmp, ok := entities.CompareVersions(newWheel.Version, oldWheel.Version)
	if !ok {
		log.Debugf("Cannot compare versions %q and %q", oldWheel.Version, newWheel.Version)
		return
	}
	if cmp < 0 {
		log.Warnf("Replacing %s with older version %s", oldWheel.Path, newWheel.Path)
	}
}
