//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	logger "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/wheelsync/internal/domain/commands"
	"github.com/rios0rios0/wheelsync/internal/domain/entities"
	"github.com/rios0rios0/wheelsync/internal/domain/repositories"
	"github.com/rios0rios0/wheelsync/internal/infrastructure/repositories/filesystem"
	"github.com/rios0rios0/wheelsync/test/domain/entitybuilders"
	"github.com/rios0rios0/wheelsync/test/infrastructure/repositorydoubles"
)

// newWorkspace returns an in-memory workspace holding the given files.
func newWorkspace(t *testing.T, files ...string) (*repositories.Workspace, *repositorydoubles.SpyVCSRepository) {
	t.Helper()

	memFs := afero.NewMemMapFs()
	require.NoError(t, memFs.MkdirAll("/wheels", 0o755))
	fs := afero.NewBasePathFs(memFs, "/wheels")
	for _, name := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(name), 0o644))
	}

	vcs := &repositorydoubles.SpyVCSRepository{Fs: fs}
	return &repositories.Workspace{
		VCS:       vcs,
		Directory: filesystem.NewDirectoryRepository(fs),
	}, vcs
}

func newLogger() (*logger.Logger, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logger.DebugLevel)
	return log, hook
}

func messagesAt(hook *logtest.Hook, level logger.Level) []string {
	var messages []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == level {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}

func TestReconcileRestoreModified(t *testing.T) {
	t.Parallel()

	t.Run("should restore every modified wheel from the upstream", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "a-1.0.whl", "b-1.0.whl", "README.md")
		vcs.Modified = []string{"a-1.0.whl", "README.md", "b-1.0.whl"}
		log, hook := newLogger()
		opts := entities.ReconcileOptions{Remote: "origin", Branch: "master"}

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, opts, log)

		// then
		require.NoError(t, err)
		assert.Equal(t, []repositorydoubles.RestoreCall{
			{Remote: "origin", Branch: "master", Path: "a-1.0.whl"},
			{Remote: "origin", Branch: "master", Path: "b-1.0.whl"},
		}, vcs.RestoreCalls)
		assert.Equal(t, []string{"a-1.0.whl", "b-1.0.whl"}, report.Restored)
		assert.Equal(t, []string{"Re-checking out a-1.0.whl", "Re-checking out b-1.0.whl"},
			messagesAt(hook, logger.InfoLevel))
	})

	t.Run("should not restore anything in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "a-1.0.whl")
		vcs.Modified = []string{"a-1.0.whl"}
		log, hook := newLogger()
		opts := entities.ReconcileOptions{Remote: "origin", DryRun: true}

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, opts, log)

		// then
		require.NoError(t, err)
		assert.Empty(t, vcs.RestoreCalls)
		assert.Equal(t, []string{"a-1.0.whl"}, report.Restored)
		assert.Equal(t, []string{"Re-checking out a-1.0.whl"}, messagesAt(hook, logger.InfoLevel))
		assert.Equal(t, true, hook.LastEntry().Data["dry_run"])
	})

	t.Run("should stop at the first failed restore", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "a-1.0.whl", "b-1.0.whl")
		vcs.Modified = []string{"a-1.0.whl", "b-1.0.whl"}
		vcs.RestoreErr = errors.New("reference not found")
		log, _ := newLogger()

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to restore a-1.0.whl")
		assert.Len(t, vcs.RestoreCalls, 1)
		assert.Empty(t, report.Restored)
	})

	t.Run("should return error when the modified files cannot be listed", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t)
		vcs.ModifiedErr = errors.New("corrupt index")
		log, _ := newLogger()

		// when
		_, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list modified files")
		assert.Zero(t, vcs.MutationCount())
	})
}

func TestReconcileAdoptNew(t *testing.T) {
	t.Parallel()

	t.Run("should replace the old version of a package with the new one", func(t *testing.T) {
		t.Parallel()

		// given
		oldName := entitybuilders.NewWheelBuilder().WithVersion("1.0").WithTags("py3").BuildName()
		newName := entitybuilders.NewWheelBuilder().WithVersion("2.0").WithTags("py3").BuildName()
		workspace, vcs := newWorkspace(t, oldName, newName)
		vcs.Untracked = []string{newName}
		log, hook := newLogger()

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"foo-1.0-py3.whl"}, vcs.RemovedPaths)
		assert.Equal(t, []string{"foo-2.0-py3.whl"}, vcs.AddedPaths)
		assert.Equal(t, []string{"foo-1.0-py3.whl"}, report.Removed)
		assert.Equal(t, []string{"foo-2.0-py3.whl"}, report.Added)
		assert.Empty(t, report.Duplicates)

		remaining, globErr := workspace.Directory.Glob("foo-*.whl")
		require.NoError(t, globErr)
		assert.Equal(t, []string{"foo-2.0-py3.whl"}, remaining)
		assert.Equal(t, []string{
			"Removing old wheel foo-1.0-py3.whl",
			"Adding new wheel foo-2.0-py3.whl",
		}, messagesAt(hook, logger.InfoLevel))
	})

	t.Run("should only add a wheel without an older version", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "bar-1.0.whl", "foo-1.0.whl")
		vcs.Untracked = []string{"bar-1.0.whl"}
		log, _ := newLogger()

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.NoError(t, err)
		assert.Empty(t, vcs.RemovedPaths)
		assert.Equal(t, []string{"bar-1.0.whl"}, vcs.AddedPaths)
		assert.Empty(t, report.Removed)
	})

	t.Run("should ignore untracked files that are not wheels", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "notes.txt", "bar-1.0.whl")
		vcs.Untracked = []string{"notes.txt", "bar-1.0.whl"}
		log, _ := newLogger()

		// when
		_, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"bar-1.0.whl"}, vcs.AddedPaths)
	})

	t.Run("should abort when a package has more than two wheels", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "baz-1.0.whl", "baz-2.0.whl", "baz-3.0.whl")
		vcs.Untracked = []string{"baz-2.0.whl", "baz-3.0.whl"}
		log, _ := newLogger()

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvariantViolation)
		var violation *entities.InvariantViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, entities.RuleCardinality, violation.Rule)
		assert.Equal(t, "baz", violation.Package)
		assert.Len(t, violation.Candidates, 3)
		assert.Zero(t, vcs.MutationCount())
		assert.Empty(t, report.Added)
	})

	t.Run("should abort in dry-run mode too", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "baz-1.0.whl", "baz-2.0.whl", "baz-3.0.whl")
		vcs.Untracked = []string{"baz-3.0.whl"}
		log, _ := newLogger()

		// when
		_, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{DryRun: true}, log)

		// then
		assert.ErrorIs(t, err, entities.ErrInvariantViolation)
	})

	t.Run("should abort when the new wheel is not on disk", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "qux-1.0.whl")
		vcs.Untracked = []string{"qux-2.0.whl"}
		log, _ := newLogger()

		// when
		_, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		var violation *entities.InvariantViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, entities.RuleMembership, violation.Rule)
		assert.Zero(t, vcs.MutationCount())
	})

	t.Run("should keep mutations applied before the violation", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "a-1.0.whl", "baz-1.0.whl", "baz-2.0.whl", "baz-3.0.whl")
		vcs.Modified = []string{"a-1.0.whl"}
		vcs.Untracked = []string{"baz-3.0.whl"}
		log, _ := newLogger()

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.Error(t, err)
		assert.Len(t, vcs.RestoreCalls, 1)
		assert.Equal(t, []string{"a-1.0.whl"}, report.Restored)
	})

	t.Run("should warn when the new wheel is older than the one it replaces", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "foo-1.0-py3.whl", "foo-2.0-py3.whl")
		vcs.Untracked = []string{"foo-1.0-py3.whl"}
		log, hook := newLogger()

		// when
		_, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"foo-2.0-py3.whl"}, vcs.RemovedPaths)
		assert.Contains(t, messagesAt(hook, logger.WarnLevel),
			"Replacing foo-2.0-py3.whl with older version foo-1.0-py3.whl")
	})

	t.Run("should return error when staging fails", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "bar-1.0.whl")
		vcs.Untracked = []string{"bar-1.0.whl"}
		vcs.AddErr = errors.New("index locked")
		log, _ := newLogger()

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to add bar-1.0.whl")
		assert.Empty(t, report.Added)
	})
}

func TestReconcileDryRun(t *testing.T) {
	t.Parallel()

	t.Run("should log the same actions without mutating anything", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "a-1.0.whl", "foo-1.0.whl", "foo-2.0.whl", "bar-1.0.whl")
		vcs.Modified = []string{"a-1.0.whl"}
		vcs.Untracked = []string{"bar-1.0.whl", "foo-2.0.whl"}
		log, hook := newLogger()
		opts := entities.ReconcileOptions{DryRun: true}

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, opts, log)

		// then
		require.NoError(t, err)
		assert.Zero(t, vcs.MutationCount())
		assert.True(t, report.DryRun)
		assert.True(t, report.HasChanges())
		assert.Equal(t, []string{
			"Re-checking out a-1.0.whl",
			"Adding new wheel bar-1.0.whl",
			"Removing old wheel foo-1.0.whl",
			"Adding new wheel foo-2.0.whl",
		}, messagesAt(hook, logger.InfoLevel))

		remaining, globErr := workspace.Directory.Glob("foo-*.whl")
		require.NoError(t, globErr)
		assert.Len(t, remaining, 2)
	})

	t.Run("should produce identical output on repeated runs", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "a-1.0.whl", "foo-1.0.whl", "foo-2.0.whl")
		vcs.Modified = []string{"a-1.0.whl"}
		vcs.Untracked = []string{"foo-2.0.whl"}
		opts := entities.ReconcileOptions{DryRun: true}
		firstLog, firstHook := newLogger()
		secondLog, secondHook := newLogger()

		// when
		_, firstErr := commands.ReconcileWorkspace(context.Background(), workspace, opts, firstLog)
		_, secondErr := commands.ReconcileWorkspace(context.Background(), workspace, opts, secondLog)

		// then
		require.NoError(t, firstErr)
		require.NoError(t, secondErr)
		assert.Equal(t, messagesAt(firstHook, logger.InfoLevel), messagesAt(secondHook, logger.InfoLevel))
		assert.Zero(t, vcs.MutationCount())
	})

	t.Run("should skip the duplicate scan", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, _ := newWorkspace(t, "foo-1.0.whl", "Foo-2.0.whl")
		log, hook := newLogger()

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{DryRun: true}, log)

		// then
		require.NoError(t, err)
		assert.Empty(t, report.Duplicates)
		assert.Empty(t, messagesAt(hook, logger.WarnLevel))
	})
}

func TestReconcileDuplicateScan(t *testing.T) {
	t.Parallel()

	t.Run("should warn about packages differing only by case", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, _ := newWorkspace(t, "Foo-1.0.whl", "foo-2.0.whl", "bar-1.0.whl")
		log, hook := newLogger()

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.DuplicateGroup{
			{Package: "foo", Paths: []string{"Foo-1.0.whl", "foo-2.0.whl"}},
		}, report.Duplicates)
		assert.Equal(t, []string{"Multiple wheels for the same package foo: [Foo-1.0.whl foo-2.0.whl]"},
			messagesAt(hook, logger.WarnLevel))
	})

	t.Run("should not fail the run when duplicates remain", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "foo-1.0.whl", "FOO-2.0.whl", "bar-1.0.whl")
		vcs.Untracked = []string{"bar-1.0.whl"}
		log, _ := newLogger()

		// when
		report, err := commands.ReconcileWorkspace(context.Background(), workspace, entities.ReconcileOptions{}, log)

		// then
		require.NoError(t, err)
		assert.Len(t, report.Duplicates, 1)
		assert.Equal(t, []string{"bar-1.0.whl"}, report.Added)
	})
}

func TestReconcileCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should open the directory and fill in defaults", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "a-1.0.whl")
		vcs.Modified = []string{"a-1.0.whl"}
		opener := &repositorydoubles.StubWorkspaceOpener{Workspace: workspace}
		log, _ := newLogger()
		command := commands.NewReconcileCommand(opener, log)

		// when
		report, err := command.Execute(context.Background(), entities.ReconcileOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, ".", opener.OpenedDir)
		assert.Equal(t, []repositorydoubles.RestoreCall{
			{Remote: entities.DefaultRemote, Branch: "", Path: "a-1.0.whl"},
		}, vcs.RestoreCalls)
		assert.Equal(t, []string{"a-1.0.whl"}, report.Restored)
	})

	t.Run("should return error when the workspace cannot be opened", func(t *testing.T) {
		t.Parallel()

		// given
		opener := &repositorydoubles.StubWorkspaceOpener{OpenErr: errors.New("not a git repository")}
		log, _ := newLogger()
		command := commands.NewReconcileCommand(opener, log)

		// when
		report, err := command.Execute(context.Background(), entities.ReconcileOptions{Dir: "wheels"})

		// then
		require.Error(t, err)
		assert.Nil(t, report)
		assert.Contains(t, err.Error(), "failed to open workspace wheels")
	})

	t.Run("should stop when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		workspace, vcs := newWorkspace(t, "a-1.0.whl")
		vcs.Modified = []string{"a-1.0.whl"}
		opener := &repositorydoubles.StubWorkspaceOpener{Workspace: workspace}
		log, _ := newLogger()
		command := commands.NewReconcileCommand(opener, log)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		_, err := command.Execute(ctx, entities.ReconcileOptions{})

		// then
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, vcs.MutationCount())
	})
}

func TestSupersededWheel(t *testing.T) {
	t.Parallel()

	t.Run("should return the other candidate", func(t *testing.T) {
		t.Parallel()

		// given
		newWheel := entities.ParseWheel("foo-2.0.whl")

		// when
		old, err := commands.SupersededWheel(newWheel, []string{"foo-1.0.whl", "foo-2.0.whl"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "foo-1.0.whl", old)
	})

	t.Run("should return nothing for a single candidate", func(t *testing.T) {
		t.Parallel()

		// given
		newWheel := entities.ParseWheel("foo-2.0.whl")

		// when
		old, err := commands.SupersededWheel(newWheel, []string{"foo-2.0.whl"})

		// then
		require.NoError(t, err)
		assert.Empty(t, old)
	})

	t.Run("should reject an empty candidate list", func(t *testing.T) {
		t.Parallel()

		// given
		newWheel := entities.ParseWheel("foo-2.0.whl")

		// when
		_, err := commands.SupersededWheel(newWheel, nil)

		// then
		assert.ErrorIs(t, err, entities.ErrInvariantViolation)
	})
}
