package commands

import (
	"context"
	"fmt"
	"maps"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/wheelsync/internal/domain/entities"
	"github.com/rios0rios0/wheelsync/internal/domain/repositories"
)

// Duplicates is the interface for the read-only duplicate scan.
type Duplicates interface {
	Execute(ctx context.Context, dir string) ([]entities.DuplicateGroup, error)
}

// DuplicatesCommand reports packages with more than one wheel in a directory.
type DuplicatesCommand struct {
	opener repositories.WorkspaceOpener
	log    logger.FieldLogger
}

// NewDuplicatesCommand creates a new DuplicatesCommand.
func NewDuplicatesCommand(opener repositories.WorkspaceOpener, log logger.FieldLogger) *DuplicatesCommand {
	return &DuplicatesCommand{
		opener: opener,
		log:    log,
	}
}

// Execute scans dir and logs one warning per duplicated package. Finding
// duplicates is not an error.
func (it *DuplicatesCommand) Execute(ctx context.Context, dir string) ([]entities.DuplicateGroup, error) {
	if dir == "" {
		dir = "."
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	directory, err := it.opener.OpenDirectory(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, err)
	}

	duplicates, err := findDuplicates(directory)
	if err != nil {
		return nil, err
	}

	if len(duplicates) == 0 {
		it.log.Infof("No duplicate wheels found in %s", dir)
		return duplicates, nil
	}
	warnDuplicates(it.log, duplicates)
	return duplicates, nil
}

// findDuplicates groups every wheel of the directory by lower-cased package
// name and returns the groups holding more than one wheel, ordered by name.
func findDuplicates(directory repositories.DirectoryRepository) ([]entities.DuplicateGroup, error) {
	wheels, err := directory.Glob(entities.WheelGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to list wheels: %w", err)
	}

	byPackage := make(map[string][]string)
	for _, path := range wheels {
		pkg := entities.ParseWheel(path).NormalizedPackage()
		byPackage[pkg] = append(byPackage[pkg], path)
	}

	duplicates := []entities.DuplicateGroup{}
	for _, pkg := range slices.Sorted(maps.Keys(byPackage)) {
		if paths := byPackage[pkg]; len(paths) > 1 {
			duplicates = append(duplicates, entities.DuplicateGroup{Package: pkg, Paths: paths})
		}
	}
	return duplicates, nil
}

func warnDuplicates(log logger.FieldLogger, duplicates []entities.DuplicateGroup) {
	for _, group := range duplicates {
		log.Warnf("Multiple wheels for the same package %s: %v", group.Package, group.Paths)
	}
}
