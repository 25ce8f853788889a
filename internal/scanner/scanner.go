package scanner

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	topoerrors "github.com/topo-sh/topo/internal/errors"
	"github.com/topo-sh/topo/internal/gitignore"
	"github.com/topo-sh/topo/internal/types"
)

// gitignoreCacheSize bounds the number of per-directory gitignore
// matchers held in memory, so long-lived processes (watch mode) don't
// grow unbounded as they walk deep trees.
const gitignoreCacheSize = 1000

// Scanner discovers indexable files in a project directory.
type Scanner struct {
	gitignoreCache *lru.Cache[string, *gitignore.Matcher]
	cacheMu        sync.RWMutex
}

// New creates a Scanner with a fresh gitignore matcher cache.
func New() (*Scanner, error) {
	cache, err := lru.New[string, *gitignore.Matcher](gitignoreCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitignore cache: %w", err)
	}
	return &Scanner{gitignoreCache: cache}, nil
}

// Scan walks the tree rooted at opts.Root, honoring VCS ignore files
// (repository-root and ancestor), an explicit exclusion of topo's own
// hidden data directory, and any caller-supplied extra patterns. It
// returns a FileInfo list sorted by path.
//
// Per-file errors (permission, race-with-delete) are swallowed; the
// file is simply omitted. A failure reading the root itself propagates
// as a Category: SCAN error.
func (s *Scanner) Scan(ctx context.Context, opts ScanOptions) ([]types.FileInfo, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, topoerrors.ScanErr("failed to resolve root path", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, topoerrors.ScanErr(fmt.Sprintf("cannot read root directory %s", absRoot), err)
	}
	if !info.IsDir() {
		return nil, topoerrors.ScanErr(fmt.Sprintf("root path is not a directory: %s", absRoot), nil)
	}

	var extra *gitignore.Matcher
	if len(opts.ExtraIgnorePatterns) > 0 {
		extra = gitignore.New()
		for _, pattern := range opts.ExtraIgnorePatterns {
			extra.AddPattern(pattern)
		}
	}

	var candidates []scanCandidate

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil
		}

		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		if relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if d.Name() == DataDirName {
				return filepath.SkipDir
			}
			if s.isIgnored(relPath, absRoot, extra, true) {
				return filepath.SkipDir
			}
			return nil
		}

		// Only regular files are indexable; symlinks and other
		// non-regular entries are skipped.
		if !d.Type().IsRegular() {
			return nil
		}

		if s.isIgnored(relPath, absRoot, extra, false) {
			return nil
		}

		fi, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}

		if opts.MaxFileSize > 0 && fi.Size() > opts.MaxFileSize {
			return nil
		}

		candidates = append(candidates, scanCandidate{absPath: path, relPath: relPath, size: fi.Size()})
		return nil
	})

	if walkErr != nil && walkErr != context.Canceled {
		return nil, topoerrors.ScanErr(fmt.Sprintf("failed walking root directory %s", absRoot), walkErr)
	}

	files, hashErr := s.hashCandidates(ctx, candidates, opts.Workers, opts.ProgressFunc)
	if hashErr != nil && hashErr != context.Canceled {
		return nil, topoerrors.ScanErr(fmt.Sprintf("failed hashing files under %s", absRoot), hashErr)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// scanCandidate is a file the walk found and cleared against ignore
// rules and the size limit, awaiting content hashing.
type scanCandidate struct {
	absPath string
	relPath string
	size    int64
}

// hashCandidates hashes candidates concurrently, bounded by workers
// (runtime.NumCPU() when zero or negative). A per-file hash failure (permission, race-with-delete) is swallowed,
// same as the rest of the scan; only a context cancellation
// propagates as an error.
func (s *Scanner) hashCandidates(ctx context.Context, candidates []scanCandidate, workers int, progress func(int)) ([]types.FileInfo, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	files := make([]types.FileInfo, len(candidates))
	var scanned int
	var progressMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			sum, sumErr := sha256File(c.absPath)
			if sumErr != nil {
				return nil
			}

			files[i] = types.FileInfo{
				Path:     c.relPath,
				Size:     c.size,
				Language: types.LanguageFromPath(c.relPath),
				Role:     types.RoleFromPath(c.relPath),
				SHA256:   sum,
			}

			if progress != nil {
				progressMu.Lock()
				scanned++
				progress(scanned)
				progressMu.Unlock()
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	hashed := make([]types.FileInfo, 0, len(files))
	for _, f := range files {
		if f.Path != "" {
			hashed = append(hashed, f)
		}
	}
	return hashed, nil
}

// isIgnored reports whether relPath is excluded by any ancestor
// .gitignore file (root through the file's own directory) or by the
// caller-supplied extra matcher.
func (s *Scanner) isIgnored(relPath, absRoot string, extra *gitignore.Matcher, isDir bool) bool {
	if extra != nil && extra.Match(relPath, isDir) {
		return true
	}

	dir := relPath
	if !isDir {
		dir = filepath.Dir(relPath)
	}

	currentAbs := absRoot
	currentRel := ""
	if m := s.getGitignoreMatcher(currentAbs, ""); m != nil && m.Match(relPath, isDir) {
		return true
	}

	if dir == "." {
		return false
	}

	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		currentAbs = filepath.Join(currentAbs, part)
		if currentRel == "" {
			currentRel = part
		} else {
			currentRel = currentRel + "/" + part
		}

		m := s.getGitignoreMatcher(currentAbs, currentRel)
		if m != nil && m.Match(relPath, isDir) {
			return true
		}
	}

	return false
}

// getGitignoreMatcher returns the cached matcher for a .gitignore file
// in dir, parsing and caching it on first use. Returns nil if the
// directory has no .gitignore.
func (s *Scanner) getGitignoreMatcher(dir, base string) *gitignore.Matcher {
	s.cacheMu.RLock()
	matcher, ok := s.gitignoreCache.Get(dir)
	s.cacheMu.RUnlock()
	if ok {
		return matcher
	}

	gitignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignorePath); err != nil {
		return nil
	}

	matcher = gitignore.New()
	if err := matcher.AddFromFile(gitignorePath, base); err != nil {
		return nil
	}

	s.cacheMu.Lock()
	s.gitignoreCache.Add(dir, matcher)
	s.cacheMu.Unlock()

	return matcher
}

// InvalidateGitignoreCache clears the gitignore matcher cache. Call
// this after any .gitignore file changes (watch mode) so stale
// patterns aren't applied to a subsequent scan.
func (s *Scanner) InvalidateGitignoreCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.gitignoreCache.Purge()
}

// sha256File hashes the full byte contents of the file at path.
func sha256File(path string) ([32]byte, error) {
	var sum [32]byte

	f, err := os.Open(path)
	if err != nil {
		return sum, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, err
	}

	copy(sum[:], h.Sum(nil))
	return sum, nil
}
