package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/topo-sh/topo/internal/config"
	"github.com/topo-sh/topo/internal/fingerprint"
	"github.com/topo-sh/topo/internal/output"
	"github.com/topo-sh/topo/internal/scanner"
)

func newScanCmd() *cobra.Command {
	var quiet bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Walk a repository and print its file bundle and fingerprint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
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

			files, err := s.Scan(cmd.Context(), scanner.ScanOptions{
				Root:                root,
				ExtraIgnorePatterns: cfg.Ignore.Patterns,
			})
			if err != nil {
				return err
			}

			fp := fingerprint.Generate(files)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				return enc.Encode(struct {
					Root        string `json:"Root"`
					Fingerprint string `json:"Fingerprint"`
					FileCount   int    `json:"FileCount"`
				}{root, fp, len(files)})
			}

			if !quiet {
				out := output.New(cmd.OutOrStdout())
				out.Statusf("", "Scanned %d files (fingerprint: %s)", len(files), fp[:12])
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress status output")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
