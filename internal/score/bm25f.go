// Package score ranks files against a query using field-weighted BM25F,
// a path-based heuristic, their weighted combination, and Reciprocal
// Rank Fusion across independent signal rankings.
package score

import (
	"math"

	"github.com/topo-sh/topo/internal/tokenizer"
	"github.com/topo-sh/topo/internal/types"
)

// BM25F field weights and smoothing parameters.
const (
	weightFilename = 5.0
	weightSymbols  = 3.0
	weightBody     = 1.0
	k1             = 1.2
	b              = 0.75
)

// CorpusStats holds the precomputed corpus-wide statistics BM25F's IDF
// term needs: total document count, average document length, and each
// term's document frequency.
type CorpusStats struct {
	TotalDocs      int
	AvgDocLength   float64
	DocFrequencies map[string]int
}

// FromDeepIndex builds CorpusStats directly from a DeepIndex's own
// rolled-up statistics — no rescan needed.
func FromDeepIndex(idx *types.DeepIndex) CorpusStats {
	return CorpusStats{
		TotalDocs:      idx.TotalDocs,
		AvgDocLength:   idx.AvgDocLength,
		DocFrequencies: idx.DocFrequencies,
	}
}

// FromPaths builds CorpusStats in shallow mode: it tokenizes each path
// and treats the resulting unique tokens as that document's term set,
// since no deep index is available yet.
func FromPaths(paths []string) CorpusStats {
	docFreqs := make(map[string]int)
	var totalLength uint64

	for _, path := range paths {
		tokens := tokenizer.Tokenize(path)
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			if !seen[tok] {
				seen[tok] = true
				docFreqs[tok]++
			}
		}
		totalLength += uint64(len(tokens))
	}

	avgDocLength := 1.0
	if len(paths) > 0 {
		avgDocLength = float64(totalLength) / float64(len(paths))
	}

	return CorpusStats{
		TotalDocs:      len(paths),
		AvgDocLength:   avgDocLength,
		DocFrequencies: docFreqs,
	}
}

// BM25FScorer scores documents against a fixed, pre-tokenized query.
type BM25FScorer struct {
	queryTokens []string
	stats       CorpusStats
}

// NewBM25FScorer tokenizes query and pairs it with stats for scoring.
func NewBM25FScorer(query string, stats CorpusStats) *BM25FScorer {
	return &BM25FScorer{
		queryTokens: tokenizer.Tokenize(query),
		stats:       stats,
	}
}

// Score computes the BM25F score of a document given its per-field term
// frequencies and total document length. Returns 0 when the query is
// empty or the corpus is empty.
func (s *BM25FScorer) Score(termFreqs map[string]types.TermFreqs, docLength uint32) float64 {
	if len(s.queryTokens) == 0 || s.stats.TotalDocs == 0 {
		return 0
	}

	n := float64(s.stats.TotalDocs)
	avgdl := s.stats.AvgDocLength
	dl := float64(docLength)
	lengthNorm := 1 - b + b*(dl/avgdl)

	var total float64
	for _, token := range s.queryTokens {
		df := float64(s.stats.DocFrequencies[token])
		idf := math.Log((n-df+0.5)/(df+0.5) + 1)

		var tf float64
		if freqs, ok := termFreqs[token]; ok {
			tf = weightFilename*float64(freqs.Filename) +
				weightSymbols*float64(freqs.Symbols) +
				weightBody*float64(freqs.Body)
		}

		if tf > 0 {
			total += idf * tf / (tf + k1*lengthNorm)
		}
	}

	return total
}

// ScorePath scores a file using only its path (shallow mode): the path
// is tokenized and every token counts toward the filename field.
func (s *BM25FScorer) ScorePath(path string) float64 {
	tokens := tokenizer.Tokenize(path)
	termFreqs := make(map[string]types.TermFreqs, len(tokens))
	for _, tok := range tokens {
		tf := termFreqs[tok]
		tf.Filename++
		termFreqs[tok] = tf
	}
	return s.Score(termFreqs, uint32(len(tokens)))
}
