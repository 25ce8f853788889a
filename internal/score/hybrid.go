package score

import (
	"sort"

	"github.com/topo-sh/topo/internal/types"
)

// Default weights for combining BM25F (content relevance) and heuristic
// (path-based) signals.
const (
	defaultBM25FWeight    = 0.6
	defaultHeuristicWeight = 0.4
)

// HybridScorer combines BM25F and heuristic scores into one ranked
// list. In shallow mode (Score) only file paths are known; in deep mode
// (ScoreWithIndex) per-file term frequencies from a DeepIndex sharpen
// the BM25F component.
type HybridScorer struct {
	bm25fWeight     float64
	heuristicWeight float64
	query           string
}

// NewHybridScorer returns a scorer for query using the default 0.6/0.4
// weight split.
func NewHybridScorer(query string) *HybridScorer {
	return &HybridScorer{
		bm25fWeight:     defaultBM25FWeight,
		heuristicWeight: defaultHeuristicWeight,
		query:           query,
	}
}

// WithWeights overrides the BM25F/heuristic split. The pair is
// normalized to sum to 1; a non-positive sum leaves the receiver's
// current weights unchanged.
func (s *HybridScorer) WithWeights(bm25f, heuristic float64) *HybridScorer {
	total := bm25f + heuristic
	if total > 0 {
		s.bm25fWeight = bm25f / total
		s.heuristicWeight = heuristic / total
	}
	return s
}

// Score ranks files using only their paths and metadata (shallow mode):
// BM25F corpus statistics are derived from the path list itself.
func (s *HybridScorer) Score(files []types.FileInfo) []types.ScoredFile {
	if len(files) == 0 {
		return nil
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}

	bm25f := NewBM25FScorer(s.query, FromPaths(paths))
	heuristic := NewHeuristicScorer(s.query)

	scored := make([]types.ScoredFile, len(files))
	for i, f := range files {
		bm25fScore := bm25f.ScorePath(f.Path)
		heuristicScore := heuristic.Score(f.Path, f.Role, f.Size)
		scored[i] = s.combine(f, bm25fScore, heuristicScore)
	}

	sortByScoreDesc(scored)
	return scored
}

// deepTerms carries one file's term frequencies and document length
// for deep-mode scoring.
type deepTerms struct {
	TermFreqs map[string]types.TermFreqs
	DocLength uint32
}

// ScoreWithIndex ranks files using per-file term frequencies from a
// deep index when available, falling back to path-only scoring for any
// file the index has no entry for (e.g. newly added, not yet indexed).
func (s *HybridScorer) ScoreWithIndex(files []types.FileInfo, terms map[string]deepTerms, stats CorpusStats) []types.ScoredFile {
	if len(files) == 0 {
		return nil
	}

	bm25f := NewBM25FScorer(s.query, stats)
	heuristic := NewHeuristicScorer(s.query)

	scored := make([]types.ScoredFile, len(files))
	for i, f := range files {
		var bm25fScore float64
		if dt, ok := terms[f.Path]; ok {
			bm25fScore = bm25f.Score(dt.TermFreqs, dt.DocLength)
		} else {
			bm25fScore = bm25f.ScorePath(f.Path)
		}
		heuristicScore := heuristic.Score(f.Path, f.Role, f.Size)
		scored[i] = s.combine(f, bm25fScore, heuristicScore)
	}

	sortByScoreDesc(scored)
	return scored
}

// ScoreWithDeepIndex ranks files against a persisted DeepIndex: corpus
// statistics and per-file term frequencies come from idx, so files already
// indexed get full BM25F treatment while files idx has no entry for (new,
// not yet reindexed) fall back to path-only scoring. This is the query-time
// counterpart to internal/index.Builder — callers that have a deep index on
// disk should prefer this over Score.
func (s *HybridScorer) ScoreWithDeepIndex(files []types.FileInfo, idx *types.DeepIndex) []types.ScoredFile {
	terms := make(map[string]deepTerms, len(idx.Files))
	for path, entry := range idx.Files {
		terms[path] = deepTerms{TermFreqs: entry.TermFreqs, DocLength: entry.DocLength}
	}
	return s.ScoreWithIndex(files, terms, FromDeepIndex(idx))
}

func (s *HybridScorer) combine(f types.FileInfo, bm25fScore, heuristicScore float64) types.ScoredFile {
	return types.ScoredFile{
		Path:  f.Path,
		Score: s.bm25fWeight*bm25fScore + s.heuristicWeight*heuristicScore,
		Signals: types.SignalBreakdown{
			BM25F:     bm25fScore,
			Heuristic: heuristicScore,
		},
		Tokens:   f.EstimatedTokens(),
		Language: f.Language,
		Role:     f.Role,
	}
}

func sortByScoreDesc(files []types.ScoredFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Score > files[j].Score
	})
}
