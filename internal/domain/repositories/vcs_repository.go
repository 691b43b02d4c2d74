package repositories

import "context"

// VCSRepository is the version-control collaborator of a reconciliation.
// All paths are relative to the reconciled directory.
type VCSRepository interface {
	// ModifiedFiles returns tracked files whose working-tree content differs
	// from the index, including files deleted from the working tree.
	ModifiedFiles(ctx context.Context) ([]string, error)

	// UntrackedFiles returns files present on disk but unknown to version control.
	UntrackedFiles(ctx context.Context) ([]string, error)

	// RestoreFromUpstream replaces the working-tree and index copy of path with
	// the version committed on <remote>/<branch>. An empty branch selects the
	// branch the remote HEAD points to.
	RestoreFromUpstream(ctx context.Context, remote, branch, path string) error

	// Add stages path for addition.
	Add(ctx context.Context, path string) error

	// Remove deletes path from the working tree and stages the deletion.
	Remove(ctx context.Context, path string) error
}
