package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/topo-sh/topo/internal/store"
	"github.com/topo-sh/topo/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var jsonOutput bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "status [path]",
		Short: "Show the persisted index's size and freshness",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			info := ui.StatusInfo{
				ProjectName:    filepath.Base(root),
				EmbedderType:   "none (precomputed vectors via --embeddings)",
				EmbedderStatus: "n/a",
				WatcherStatus:  "n/a",
			}

			idx, err := store.Load(root)
			if err != nil {
				return err
			}
			if idx != nil {
				info.TotalFiles = idx.TotalDocs
				for _, entry := range idx.Files {
					info.TotalChunks += len(entry.Chunks)
				}
			}

			if fi, statErr := os.Stat(store.IndexPath(root)); statErr == nil {
				info.MetadataSize = fi.Size()
				info.TotalSize = fi.Size()
				info.LastIndexed = fi.ModTime()
			}

			renderer := ui.NewStatusRenderer(cmd.OutOrStdout(), noColor)
			if jsonOutput {
				return renderer.RenderJSON(info)
			}
			return renderer.Render(info)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
