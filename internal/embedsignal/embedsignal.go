// Package embedsignal turns caller-supplied embedding vectors into the
// optional Embedding entry of a ScoredFile's signal breakdown. topo never
// generates embeddings itself; a caller that already has per-file vectors
// (from whatever model it likes) can hand them to Compute to get back a
// similarity score per path, ready to merge into scoring output with
// Apply.
package embedsignal

import (
	"math"

	"github.com/coder/hnsw"

	"github.com/topo-sh/topo/internal/types"
)

// Pair associates a file path with its embedding vector.
type Pair struct {
	Path   string
	Vector []float32
}

// Compute builds a transient HNSW graph over pairs and returns each
// path's cosine similarity to query, rescaled to the 0..1 range used
// throughout scoring (1.0 = identical direction, 0.0 = opposite).
// Returns an empty map if pairs is empty.
func Compute(pairs []Pair, query []float32) map[string]float64 {
	scores := make(map[string]float64, len(pairs))
	if len(pairs) == 0 {
		return scores
	}

	graph := hnsw.NewGraph[string]()
	graph.Distance = hnsw.CosineDistance

	normalizedQuery := normalized(query)

	for _, p := range pairs {
		graph.Add(hnsw.MakeNode(p.Path, normalized(p.Vector)))
	}

	for _, node := range graph.Search(normalizedQuery, len(pairs)) {
		distance := graph.Distance(normalizedQuery, node.Value)
		scores[node.Key] = cosineDistanceToScore(distance)
	}

	return scores
}

// Apply copies each file's embedding score (if present in scores) into
// its SignalBreakdown.Embedding, leaving files absent from scores
// untouched (nil, meaning "no embedding signal available").
func Apply(files []types.ScoredFile, scores map[string]float64) {
	for i := range files {
		score, ok := scores[files[i].Path]
		if !ok {
			continue
		}
		s := score
		files[i].Signals.Embedding = &s
	}
}

// cosineDistanceToScore converts coder/hnsw's cosine distance (0 for
// identical vectors, 2 for opposite) into a 0..1 similarity score.
func cosineDistanceToScore(distance float32) float64 {
	return 1.0 - float64(distance)/2.0
}

func normalized(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)

	var sumSquares float64
	for _, val := range out {
		sumSquares += float64(val) * float64(val)
	}
	if sumSquares == 0 {
		return out
	}
	inv := float32(1.0 / math.Sqrt(sumSquares))
	for i := range out {
		out[i] *= inv
	}
	return out
}
