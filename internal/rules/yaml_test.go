package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuadra-dev/cuadra/internal/model"
)

func TestLoadMissingFileIsEmptySet(t *testing.T) {
	got, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ruleSet := []model.Rule{
		{ID: "rule_1", Needle: "uber eats", Category: "food", Party: "Uber Eats", Direction: model.DirectionOut, Priority: 10},
		{ID: "rule_2", Needle: "nomina", Category: "payroll", Direction: model.DirectionIn, Priority: 5, StoreScope: "store1"},
	}

	require.NoError(t, Save(dir, ruleSet))
	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ruleSet, got)
}

func TestLoadDefaultsDirectionToAny(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, RelPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - needle: uber\n    category: transport\n    priority: 1\n"), 0o644))

	got, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.DirectionAny, got[0].Direction)
}

func TestLoadRejectsBadRule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, RelPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - needle: uber\n    category: transport\n    direction: sideways\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "direction")
}
