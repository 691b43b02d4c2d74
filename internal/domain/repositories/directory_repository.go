package repositories

// DirectoryRepository lists the files of the reconciled directory.
type DirectoryRepository interface {
	// Glob returns the sorted names matching pattern, relative to the directory.
	Glob(pattern string) ([]string, error)
}
