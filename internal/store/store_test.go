package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topo-sh/topo/internal/types"
)

func sampleIndex() *types.DeepIndex {
	idx := types.NewDeepIndex()
	idx.Files["a.rs"] = &types.FileEntry{
		Path:      "a.rs",
		TermFreqs: map[string]types.TermFreqs{"alpha": {Body: 1}},
		DocLength: 1,
		Language:  types.LanguageRust,
		Role:      types.RoleImplementation,
	}
	idx.Recompute()
	return idx
}

func TestLoadAbsentIsNotError(t *testing.T) {
	dir := t.TempDir()
	idx, err := Load(dir)
	require.NoError(t, err)
	assert.Nil(t, idx)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	original := sampleIndex()

	require.NoError(t, Save(dir, original))
	loaded, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, original.TotalDocs, loaded.TotalDocs)
	assert.Equal(t, original.Files["a.rs"].DocLength, loaded.Files["a.rs"].DocLength)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := IndexPath(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not msgpack"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestMergeIncrementalDropsRemovedFiles(t *testing.T) {
	existing := sampleIndex()
	fresh := types.NewDeepIndex()
	fresh.Files["b.rs"] = &types.FileEntry{Path: "b.rs", TermFreqs: map[string]types.TermFreqs{"beta": {Body: 1}}, DocLength: 1}
	fresh.Recompute()

	merged := MergeIncremental(existing, fresh)
	assert.NotContains(t, merged.Files, "a.rs")
	assert.Contains(t, merged.Files, "b.rs")
	assert.Equal(t, 1, merged.TotalDocs)
}
