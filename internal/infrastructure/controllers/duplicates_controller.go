package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/wheelsync/internal/domain/commands"
	"github.com/rios0rios0/wheelsync/internal/domain/entities"
)

// DuplicatesController handles the "duplicates" subcommand.
type DuplicatesController struct {
	command commands.Duplicates
}

// NewDuplicatesController creates a new DuplicatesController.
func NewDuplicatesController(command commands.Duplicates) *DuplicatesController {
	return &DuplicatesController{command: command}
}

// GetBind returns the Cobra command metadata for the duplicates controller.
func (it *DuplicatesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "duplicates [path]",
		Short: "List packages with more than one wheel",
		Long: `Scan a directory for packages that have more than one wheel,
comparing package names case-insensitively. Nothing is changed.`,
	}
}

// Execute scans the directory given as argument.
func (it *DuplicatesController) Execute(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	if _, err := loadSettings(ctx, cmd); err != nil {
		return err
	}

	if _, err := it.command.Execute(ctx, targetDir(args)); err != nil {
		return fmt.Errorf("duplicate scan failed: %w", err)
	}
	return nil
}
