package gitvcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/rios0rios0/wheelsync/internal/domain/entities"
)

// GitVCSRepository implements repositories.VCSRepository on top of go-git,
// for a directory that may sit below the repository root.
type GitVCSRepository struct {
	repo     *git.Repository
	worktree *git.Worktree
	prefix   string // slash-separated location of the directory in the worktree, "" at the root
}

// NewVCSRepository opens the repository enclosing dir.
func NewVCSRepository(dir string) (*GitVCSRepository, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s is not inside a git repository: %w", absDir, err)
		}
		return nil, fmt.Errorf("unable to open repository at %s: %w", absDir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("unable to open worktree: %w", err)
	}

	rel, err := filepath.Rel(worktree.Filesystem.Root(), absDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("%s is outside the worktree %s", absDir, worktree.Filesystem.Root())
	}

	prefix := filepath.ToSlash(rel)
	if prefix == "." {
		prefix = ""
	}

	return &GitVCSRepository{
		repo:     repo,
		worktree: worktree,
		prefix:   prefix,
	}, nil
}

// ModifiedFiles returns files changed or deleted in the working tree relative
// to the index.
func (it *GitVCSRepository) ModifiedFiles(ctx context.Context) ([]string, error) {
	return it.filterStatus(ctx, func(status *git.FileStatus) bool {
		return status.Worktree == git.Modified || status.Worktree == git.Deleted
	})
}

// UntrackedFiles returns files not known to the index. Ignored files are excluded.
func (it *GitVCSRepository) UntrackedFiles(ctx context.Context) ([]string, error) {
	return it.filterStatus(ctx, func(status *git.FileStatus) bool {
		return status.Worktree == git.Untracked
	})
}

// RestoreFromUpstream writes the blob committed on <remote>/<branch> over the
// working-tree copy of name and stages it, like `git checkout <ref> -- name`.
func (it *GitVCSRepository) RestoreFromUpstream(ctx context.Context, remote, branch, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if branch == "" {
		branch = it.remoteDefaultBranch(remote)
	}

	refName := plumbing.NewRemoteReferenceName(remote, branch)
	ref, err := it.repo.Reference(refName, true)
	if err != nil {
		return fmt.Errorf("upstream reference %s not found: %w", refName.Short(), err)
	}

	commit, err := it.repo.CommitObject(ref.Hash())
	if err != nil {
		return fmt.Errorf("unable to read commit %s: %w", ref.Hash(), err)
	}

	repoPath := it.repoPath(name)
	file, err := commit.File(repoPath)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return fmt.Errorf("%s does not exist on %s: %w", repoPath, refName.Short(), err)
		}
		return fmt.Errorf("unable to read %s from %s: %w", repoPath, refName.Short(), err)
	}

	if writeErr := it.writeBlob(file, repoPath); writeErr != nil {
		return writeErr
	}

	if _, addErr := it.worktree.Add(repoPath); addErr != nil {
		return fmt.Errorf("unable to stage %s: %w", repoPath, addErr)
	}
	return nil
}

// Add stages name for addition.
func (it *GitVCSRepository) Add(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := it.worktree.Add(it.repoPath(name)); err != nil {
		return fmt.Errorf("unable to stage %s: %w", it.repoPath(name), err)
	}
	return nil
}

// Remove deletes name from the working tree and the index.
func (it *GitVCSRepository) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := it.worktree.Remove(it.repoPath(name)); err != nil {
		return fmt.Errorf("unable to remove %s: %w", it.repoPath(name), err)
	}
	return nil
}

func (it *GitVCSRepository) filterStatus(
	ctx context.Context,
	keep func(status *git.FileStatus) bool,
) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status, err := it.worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("unable to read worktree status: %w", err)
	}

	var names []string
	for repoPath, fileStatus := range status {
		if !keep(fileStatus) {
			continue
		}
		if name, ok := it.localName(repoPath); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func (it *GitVCSRepository) writeBlob(file *object.File, repoPath string) error {
	mode, err := file.Mode.ToOSFileMode()
	if err != nil {
		return fmt.Errorf("unsupported file mode for %s: %w", repoPath, err)
	}

	reader, err := file.Reader()
	if err != nil {
		return fmt.Errorf("unable to read blob of %s: %w", repoPath, err)
	}
	defer reader.Close()

	out, err := it.worktree.Filesystem.OpenFile(repoPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", repoPath, err)
	}

	if _, copyErr := io.Copy(out, reader); copyErr != nil {
		_ = out.Close()
		return fmt.Errorf("unable to write %s: %w", repoPath, copyErr)
	}
	return out.Close()
}

// remoteDefaultBranch follows refs/remotes/<remote>/HEAD when the clone recorded it.
func (it *GitVCSRepository) remoteDefaultBranch(remote string) string {
	ref, err := it.repo.Reference(plumbing.NewRemoteHEADReferenceName(remote), false)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return entities.FallbackBranch
	}
	return strings.TrimPrefix(ref.Target().String(), "refs/remotes/"+remote+"/")
}

// localName maps a worktree path to a name in the reconciled directory. Only
// direct children of the directory are mapped.
func (it *GitVCSRepository) localName(repoPath string) (string, bool) {
	dir, name := path.Split(repoPath)
	if strings.TrimSuffix(dir, "/") != it.prefix {
		return "", false
	}
	return name, true
}

func (it *GitVCSRepository) repoPath(name string) string {
	return path.Join(it.prefix, name)
}
