package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndIsRepo(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsRepo(dir))

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir))
	_, err := os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err)
}

func TestCommitAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ledger.csv"), []byte("id\n"), 0o644))

	hash, err := CommitAll(dir, "import: 3 movements", "Cuadra", "ledger@cuadra.dev")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "import: 3 movements")
}

func TestCommitIfChanged(t *testing.T) {
	dir := t.TempDir()

	// Not a repo: silently skipped.
	hash, err := CommitIfChanged(dir, "noop", "A", "a@b.c")
	require.NoError(t, err)
	assert.Empty(t, hash)

	require.NoError(t, Init(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0o644))

	hash, err = CommitIfChanged(dir, "first", "A", "a@b.c")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Clean tree: nothing committed, no error.
	hash, err = CommitIfChanged(dir, "second", "A", "a@b.c")
	require.NoError(t, err)
	assert.Empty(t, hash)
}
