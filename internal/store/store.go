// Package store persists a DeepIndex to disk and loads it back (spec
// §4.6). Encoding is msgpack: self-describing, supports streaming
// decode via msgpack.Decoder, and needs no schema migration tooling for
// the single top-level DeepIndex value it carries.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/vmihailenco/msgpack/v5"

	topoerrors "github.com/topo-sh/topo/internal/errors"
	"github.com/topo-sh/topo/internal/types"
)

const (
	indexDir      = ".topo"
	indexFileName = "index.bin"
	lockFileName  = "index.lock"
)

// IndexPath returns the path a DeepIndex for root is persisted at.
func IndexPath(root string) string {
	return filepath.Join(root, indexDir, indexFileName)
}

// Load reads the DeepIndex persisted for root. A missing file is not an
// error: it returns (nil, nil) to signal "absent, build one". A present
// but corrupt or version-mismatched file returns an error.
func Load(root string) (*types.DeepIndex, error) {
	path := IndexPath(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var idx types.DeepIndex
	if err := msgpack.Unmarshal(data, &idx); err != nil {
		return nil, topoerrors.IndexCorrupt(root, err)
	}
	if idx.Version != types.DeepIndexVersion {
		return nil, topoerrors.IndexCorrupt(root, fmt.Errorf("index at %s has version %d, want %d", path, idx.Version, types.DeepIndexVersion))
	}

	return &idx, nil
}

// Save atomically persists idx under root's .topo directory: encode to a
// temp file in the same directory, then rename over the target so
// concurrent readers never observe a partial write. A cross-process
// advisory lock serializes writers.
func Save(root string, idx *types.DeepIndex) error {
	dir := filepath.Join(root, indexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	data, err := msgpack.Marshal(idx)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "index-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, IndexPath(root))
}

// MergeIncremental combines an existing index with a freshly built one:
// entries present in fresh always win (they reflect the current scan),
// entries only present in existing are dropped (the file is gone), and
// corpus-wide statistics are recomputed over the merged set.
func MergeIncremental(existing, fresh *types.DeepIndex) *types.DeepIndex {
	merged := types.NewDeepIndex()
	for path, entry := range fresh.Files {
		merged.Files[path] = entry
	}
	merged.Recompute()
	return merged
}
