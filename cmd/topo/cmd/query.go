package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/topo-sh/topo/internal/config"
	"github.com/topo-sh/topo/internal/embedsignal"
	"github.com/topo-sh/topo/internal/render"
	"github.com/topo-sh/topo/internal/score"
	"github.com/topo-sh/topo/internal/scanner"
	"github.com/topo-sh/topo/internal/store"
	"github.com/topo-sh/topo/internal/types"
)

// embeddingsFile is the JSON shape accepted by --embeddings: a query
// vector and one vector per file path, both precomputed elsewhere.
// topo never generates embeddings itself.
type embeddingsFile struct {
	Query []float32            `json:"Query"`
	Files map[string][]float32 `json:"Files"`
}

func newQueryCmd() *cobra.Command {
	var path string
	var minScore float64
	var maxTokens uint64
	var maxBytes uint64
	var preset string
	var embeddingsPath string

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Score a repository against a query and render a token-budgeted JSONL manifest",
		Long: `Score every file in a repository against a free-text query and write
the token-budgeted result as line-framed JSONL (one Header record, one
record per included file, one Footer record).

Scoring uses the deep inverted index at <root>/.topo/index.bin when
present (run 'topo index --deep' first); otherwise it falls back to
scoring file paths alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]

			var rootArgs []string
			if path != "" {
				rootArgs = []string{path}
			}
			root, err := resolveRoot(rootArgs)
			if err != nil {
				return err
			}

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			s, err := scanner.New()
			if err != nil {
				return err
			}

			// The scan and the persisted index are independent reads;
			// run them concurrently.
			var files []types.FileInfo
			var idx *types.DeepIndex
			g, gctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var scanErr error
				files, scanErr = s.Scan(gctx, scanner.ScanOptions{
					Root:                root,
					ExtraIgnorePatterns: cfg.Ignore.Patterns,
				})
				return scanErr
			})
			g.Go(func() error {
				var loadErr error
				idx, loadErr = store.Load(root)
				return loadErr
			})
			if err := g.Wait(); err != nil {
				return err
			}

			scorer := score.NewHybridScorer(query).WithWeights(cfg.Scoring.BM25FWeight, cfg.Scoring.HeuristicWeight)
			var scored []types.ScoredFile
			if idx != nil {
				scored = scorer.ScoreWithDeepIndex(files, idx)
			} else {
				scored = scorer.Score(files)
			}

			if embeddingsPath != "" {
				scores, err := loadEmbeddingScores(embeddingsPath)
				if err != nil {
					return err
				}
				embedsignal.Apply(scored, scores)

				// Fuse the existing hybrid ranking with the embedding
				// ranking via RRF: the current score order is one of the
				// input rankings, and each file's score is replaced with
				// its fused RRF score.
				scored = score.NewRRFFusionWithK(cfg.Scoring.RRFConstant).FuseScored(scored, [][]string{rankingByScore(scores)})
			}

			if maxTokens == 0 && cfg.Budget.DefaultTokens > 0 {
				maxTokens = uint64(cfg.Budget.DefaultTokens)
			}

			budget := types.TokenBudget{}
			if maxTokens > 0 {
				budget.MaxTokens = &maxTokens
			}
			if maxBytes > 0 {
				budget.MaxBytes = &maxBytes
			}
			enforced := budget.Enforce(scored)

			return render.Write(cmd.OutOrStdout(), enforced, render.Options{
				Query:        query,
				Preset:       preset,
				Budget:       budget,
				MinScore:     minScore,
				ScannedFiles: len(files),
			})
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Repository root to query (default: current directory)")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Drop files scoring below this threshold")
	cmd.Flags().Uint64Var(&maxTokens, "max-tokens", 0, "Cap the output at this many estimated tokens (0 = use budget.default_tokens from config)")
	cmd.Flags().Uint64Var(&maxBytes, "max-bytes", 0, "Cap the output at this many bytes (0 = unbounded)")
	cmd.Flags().StringVar(&preset, "preset", "", "Named preset recorded in the output header")
	cmd.Flags().StringVar(&embeddingsPath, "embeddings", "", "Path to a JSON file of precomputed embedding vectors (see embeddingsFile)")

	return cmd
}

// loadEmbeddingScores reads a precomputed embeddings file and returns
// each file path's cosine similarity to the query vector.
func loadEmbeddingScores(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading embeddings file: %w", err)
	}

	var ef embeddingsFile
	if err := json.Unmarshal(data, &ef); err != nil {
		return nil, fmt.Errorf("parsing embeddings file: %w", err)
	}

	pairs := make([]embedsignal.Pair, 0, len(ef.Files))
	for path, vec := range ef.Files {
		pairs = append(pairs, embedsignal.Pair{Path: path, Vector: vec})
	}

	return embedsignal.Compute(pairs, ef.Query), nil
}

// rankingByScore returns scores' keys ordered by descending score, the
// file-path ranking shape score.RRFFusion.FuseScored expects.
func rankingByScore(scores map[string]float64) []string {
	ranking := make([]string, 0, len(scores))
	for path := range scores {
		ranking = append(ranking, path)
	}
	sort.Slice(ranking, func(i, j int) bool {
		return scores[ranking[i]] > scores[ranking[j]]
	})
	return ranking
}
