package filesystem

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoDirectoryRepository lists the files of one directory through an afero
// filesystem rooted at that directory.
type AferoDirectoryRepository struct {
	fs afero.Fs
}

// NewDirectoryRepository wraps a filesystem whose root is the reconciled directory.
func NewDirectoryRepository(fs afero.Fs) *AferoDirectoryRepository {
	return &AferoDirectoryRepository{fs: fs}
}

// NewOsDirectoryRepository roots an OS-backed repository at dir, which must exist.
func NewOsDirectoryRepository(dir string) (*AferoDirectoryRepository, error) {
	// BasePathFs rejects every name under a relative base such as "."
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", dir, err)
	}

	osFs := afero.NewOsFs()
	isDir, err := afero.IsDir(osFs, absDir)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return NewDirectoryRepository(afero.NewBasePathFs(osFs, absDir)), nil
}

// Glob returns the sorted names of the regular files matching pattern.
func (it *AferoDirectoryRepository) Glob(pattern string) ([]string, error) {
	matches, err := afero.Glob(it.fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		info, statErr := it.fs.Stat(match)
		if statErr != nil {
			return nil, fmt.Errorf("cannot stat %s: %w", match, statErr)
		}
		if info.Mode().IsRegular() {
			files = append(files, match)
		}
	}
	return files, nil
}
