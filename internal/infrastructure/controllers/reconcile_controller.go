package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/wheelsync/internal/domain/commands"
	"github.com/rios0rios0/wheelsync/internal/domain/entities"
)

// ReconcileController handles the root command: reconcile a wheel directory.
type ReconcileController struct {
	command commands.Reconcile
}

// NewReconcileController creates a new ReconcileController.
func NewReconcileController(command commands.Reconcile) *ReconcileController {
	return &ReconcileController{command: command}
}

// GetBind returns the Cobra command metadata for the reconcile controller.
func (it *ReconcileController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "wheelsync [path]",
		Short: "Reconcile a directory of wheels with git after copying new ones in",
		Long: `Update the wheels tracked in a git repository after a new set of wheels
was copy-pasted into the directory:

  1. Re-checkout wheels that were overwritten
  2. Remove old wheel versions
  3. Add new wheel versions
  4. Warn about packages that still have several wheels

Changes are staged, never committed.`,
	}
}

// Execute runs the reconciliation for the directory given as argument.
func (it *ReconcileController) Execute(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	remote, _ := cmd.Flags().GetString("remote")
	branch, _ := cmd.Flags().GetString("branch")

	opts := entities.ReconcileOptions{
		Dir:    targetDir(args),
		DryRun: dryRun,
		Remote: settings.Remote,
		Branch: settings.Branch,
	}
	if remote != "" {
		opts.Remote = remote
	}
	if branch != "" {
		opts.Branch = branch
	}

	report, err := it.command.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if !report.HasChanges() {
		logger.Info("No wheel changes detected, nothing to do.")
		return nil
	}

	if report.DryRun {
		logger.Infof(
			"Dry run: would restore %d, remove %d and add %d wheel(s)",
			len(report.Restored), len(report.Removed), len(report.Added),
		)
		return nil
	}
	logger.Infof(
		"Restored %d, removed %d and added %d wheel(s)",
		len(report.Restored), len(report.Removed), len(report.Added),
	)
	return nil
}

// AddFlags adds the reconcile-specific flags to the given Cobra command.
func (it *ReconcileController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("dry-run", "n", false, "Print the actions without running them")
	cmd.Flags().String("remote", "", "Remote to restore overwritten wheels from (default \"origin\")")
	cmd.Flags().String("branch", "", "Branch to restore overwritten wheels from (default: remote HEAD, else master)")
}
