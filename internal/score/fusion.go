package score

import (
	"sort"

	"github.com/topo-sh/topo/internal/types"
)

// DefaultRRFConstant is the standard Reciprocal Rank Fusion smoothing
// constant, the same value used by OpenSearch and Azure AI Search.
const DefaultRRFConstant = 60.0

// RRFResult is one file's combined score after fusing independent
// rankings.
type RRFResult struct {
	Path     string
	RRFScore float64
}

// RRFFusion combines independently ranked signal lists (e.g. a hybrid
// score ranking and a standalone embedding-similarity ranking) into a
// single ranking: RRF_score(f) = Σ 1 / (k + rank_i) over every list f
// appears in, 1-indexed rank.
type RRFFusion struct {
	K float64
}

// NewRRFFusion returns fusion with the default k=60.
func NewRRFFusion() *RRFFusion {
	return &RRFFusion{K: DefaultRRFConstant}
}

// NewRRFFusionWithK returns fusion with a custom k. A non-positive k
// falls back to the default.
func NewRRFFusionWithK(k float64) *RRFFusion {
	if k <= 0 {
		k = DefaultRRFConstant
	}
	return &RRFFusion{K: k}
}

// Fuse merges rankings (each a slice of file paths already sorted by
// that signal's score) into one descending-RRF-score list, then
// normalizes scores into [0, 1] by dividing by the maximum.
func (f *RRFFusion) Fuse(rankings [][]string) []RRFResult {
	scores := make(map[string]float64)
	order := make([]string, 0)

	for _, ranking := range rankings {
		for rank, path := range ranking {
			if _, seen := scores[path]; !seen {
				order = append(order, path)
			}
			scores[path] += 1.0 / (f.K + float64(rank) + 1.0)
		}
	}

	results := make([]RRFResult, len(order))
	for i, path := range order {
		results[i] = RRFResult{Path: path, RRFScore: scores[path]}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RRFScore > results[j].RRFScore
	})

	normalize(results)
	return results
}

// FuseScored fuses a scored list with one or more additional file-path
// rankings, treating base's current score order as one more ranking
// alongside them, and replaces each file's score with its fused RRF
// score. The result is base's files re-sorted descending by that new
// score. An empty rankings leaves base's order and scores untouched.
func (f *RRFFusion) FuseScored(base []types.ScoredFile, rankings [][]string) []types.ScoredFile {
	if len(rankings) == 0 {
		return base
	}

	baseRanking := make([]string, len(base))
	for i, sf := range base {
		baseRanking[i] = sf.Path
	}

	all := make([][]string, 0, len(rankings)+1)
	all = append(all, baseRanking)
	all = append(all, rankings...)

	scores := make(map[string]float64)
	for _, ranking := range all {
		for rank, path := range ranking {
			scores[path] += 1.0 / (f.K + float64(rank) + 1.0)
		}
	}

	fused := make([]types.ScoredFile, len(base))
	copy(fused, base)
	for i, sf := range fused {
		if score, ok := scores[sf.Path]; ok {
			fused[i].Score = score
		}
	}

	sortByScoreDesc(fused)
	return fused
}

// normalize scales every RRF score by the maximum so the top result is
// exactly 1.0.
func normalize(results []RRFResult) {
	if len(results) == 0 || results[0].RRFScore == 0 {
		return
	}
	max := results[0].RRFScore
	for i := range results {
		results[i].RRFScore /= max
	}
}
