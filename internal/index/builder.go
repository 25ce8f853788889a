// Package index builds and incrementally refreshes the deep inverted
// index: per-file term frequencies, chunk lists, and corpus-wide
// statistics.
package index

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/topo-sh/topo/internal/chunk"
	"github.com/topo-sh/topo/internal/tokenizer"
	"github.com/topo-sh/topo/internal/types"
)

// Builder builds a DeepIndex from a file list, reusing unchanged entries
// from an existing index when present.
type Builder struct {
	Root string

	// ProgressFunc, if set, is called after each file is considered:
	// current is the 1-based count processed so far (reused entries
	// included), total is len(files), and path is the file just handled.
	ProgressFunc func(current, total int, path string)
}

// NewBuilder returns a Builder rooted at root, the directory file paths
// in Build are resolved against.
func NewBuilder(root string) *Builder {
	return &Builder{Root: root}
}

// Build produces a fresh DeepIndex for files. When existing is non-nil,
// any file whose path and sha256 match an entry there is reused
// verbatim, skipping I/O and tokenization. Returns the new index and
// the count of files actually reindexed (0 means no work was needed).
// Per-file read errors are logged and the file is omitted from the new
// index; they are not returned as errors.
func (b *Builder) Build(files []types.FileInfo, existing *types.DeepIndex) (*types.DeepIndex, int) {
	idx := types.NewDeepIndex()
	reindexed := 0
	total := len(files)

	for i, f := range files {
		if existing != nil {
			if prev, ok := existing.Files[f.Path]; ok && prev.SHA256 == f.SHA256 {
				idx.Files[f.Path] = prev
				b.reportProgress(i+1, total, f.Path)
				continue
			}
		}

		entry, err := b.buildEntry(f)
		if err != nil {
			slog.Warn("skipping unreadable file", slog.String("path", f.Path), slog.String("error", err.Error()))
			b.reportProgress(i+1, total, f.Path)
			continue
		}
		idx.Files[f.Path] = entry
		reindexed++
		b.reportProgress(i+1, total, f.Path)
	}

	idx.Recompute()
	return idx, reindexed
}

func (b *Builder) reportProgress(current, total int, path string) {
	if b.ProgressFunc != nil {
		b.ProgressFunc(current, total, path)
	}
}

func (b *Builder) buildEntry(f types.FileInfo) (*types.FileEntry, error) {
	content, err := os.ReadFile(filepath.Join(b.Root, f.Path))
	if err != nil {
		return nil, err
	}

	chunks := chunk.Extract(string(content), f.Language)

	termFreqs := make(map[string]types.TermFreqs)
	addTokens := func(tokens []string, apply func(*types.TermFreqs)) {
		for _, tok := range tokens {
			tf := termFreqs[tok]
			apply(&tf)
			termFreqs[tok] = tf
		}
	}

	addTokens(tokenizer.Tokenize(f.Path), func(tf *types.TermFreqs) { tf.Filename++ })
	for _, c := range chunks {
		addTokens(tokenizer.Tokenize(c.Name), func(tf *types.TermFreqs) { tf.Symbols++ })
	}
	addTokens(tokenizer.Tokenize(string(content)), func(tf *types.TermFreqs) { tf.Body++ })

	var docLength uint32
	for _, tf := range termFreqs {
		docLength += tf.Total()
	}

	return &types.FileEntry{
		Path:       f.Path,
		SHA256:     f.SHA256,
		Chunks:     chunks,
		TermFreqs:  termFreqs,
		DocLength:  docLength,
		Language:   f.Language,
		Role:       f.Role,
		Size:       f.Size,
	}, nil
}
