package entities

// DuplicateGroup lists every wheel sharing one lower-cased package name.
type DuplicateGroup struct {
	Package string
	Paths   []string
}

// Report summarizes the actions taken (or, in dry-run mode, planned) by one run.
type Report struct {
	DryRun     bool
	Restored   []string
	Removed    []string
	Added      []string
	Duplicates []DuplicateGroup
}

// HasChanges reports whether the run touched the working tree or would have.
func (r *Report) HasChanges() bool {
	return len(r.Restored)+len(r.Removed)+len(r.Added) > 0
}
