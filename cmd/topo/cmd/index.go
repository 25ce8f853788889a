package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/topo-sh/topo/internal/config"
	"github.com/topo-sh/topo/internal/fingerprint"
	indexpkg "github.com/topo-sh/topo/internal/index"
	"github.com/topo-sh/topo/internal/output"
	"github.com/topo-sh/topo/internal/scanner"
	"github.com/topo-sh/topo/internal/store"
	"github.com/topo-sh/topo/internal/types"
	"github.com/topo-sh/topo/internal/ui"
)

func newIndexCmd() *cobra.Command {
	var deep bool
	var force bool
	var quiet bool
	var progress bool

	cmd := &cobra.Command{
		Use:   "index [path]",
		Short: "Scan a repository and optionally build its deep inverted index",
		Long: `Scan a repository and print its file bundle and fingerprint.

With --deep, also tokenize and chunk every file to build the inverted
index used for BM25F scoring, reusing unchanged entries from any index
already persisted at <root>/.topo/index.bin. Without --deep, only the
shallow scan runs and no index is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}
			return runIndex(cmd, root, deep, force, quiet, progress)
		},
	}

	cmd.Flags().BoolVar(&deep, "deep", false, "Build the full inverted index, not just a shallow scan")
	cmd.Flags().BoolVar(&force, "force", false, "Ignore any existing index and rebuild from scratch")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress status output")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a live progress display while building the deep index")

	return cmd
}

func runIndex(cmd *cobra.Command, root string, deep, force, quiet, showProgress bool) error {
	out := output.New(cmd.OutOrStdout())
	mode := "shallow"
	if deep {
		mode = "deep"
	}
	if !quiet {
		out.Statusf("", "Indexing %s (mode: %s)...", root, mode)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	s, err := scanner.New()
	if err != nil {
		return err
	}

	files, err := s.Scan(cmd.Context(), scanner.ScanOptions{
		Root:                root,
		ExtraIgnorePatterns: cfg.Ignore.Patterns,
	})
	if err != nil {
		return err
	}

	fp := fingerprint.Generate(files)
	if !quiet {
		out.Statusf("", "Scanned %d files (fingerprint: %s)", len(files), fp[:12])
	}

	if !deep {
		if !quiet {
			out.Status("", "Done.")
		}
		return nil
	}

	var existing *types.DeepIndex
	if !force {
		existing, err = store.Load(root)
		if err != nil {
			return err
		}
	}

	builder := indexpkg.NewBuilder(root)

	var renderer ui.Renderer
	if showProgress {
		renderer = ui.NewRenderer(ui.NewConfig(cmd.OutOrStdout(), ui.WithProjectDir(root)))
		if err := renderer.Start(cmd.Context()); err != nil {
			return fmt.Errorf("starting progress display: %w", err)
		}
		builder.ProgressFunc = func(current, total int, path string) {
			renderer.UpdateProgress(ui.ProgressEvent{
				Stage:       ui.StageIndexing,
				Current:     current,
				Total:       total,
				CurrentFile: path,
			})
		}
	}

	start := time.Now()
	idx, reindexed := builder.Build(files, existing)
	elapsed := time.Since(start)

	if renderer != nil {
		renderer.Complete(ui.CompletionStats{
			Files:    idx.TotalDocs,
			Duration: elapsed,
		})
		_ = renderer.Stop()
	}

	isIncremental := existing != nil
	nothingChanged := isIncremental && reindexed == 0

	if !quiet {
		if isIncremental {
			out.Statusf("", "Incremental update: %d files indexed (%d changed)", idx.TotalDocs, reindexed)
		} else {
			out.Statusf("", "Full index build: %d files indexed", idx.TotalDocs)
		}
	}

	if nothingChanged {
		if !quiet {
			out.Statusf("", "Index unchanged at %s", store.IndexPath(root))
		}
	} else {
		if err := store.Save(root, idx); err != nil {
			return fmt.Errorf("saving index: %w", err)
		}
		if !quiet {
			out.Statusf("", "Index saved to %s", store.IndexPath(root))
		}
	}

	if !quiet {
		out.Status("", "Done.")
	}
	return nil
}
