package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/topo-sh/topo/internal/ui"
)

func newBrowseCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "browse [manifest.jsonl]",
		Short: "Interactively page through a rendered JSONL manifest",
		Long: `Open an interactive viewer over a JSONL manifest produced by 'topo
query'. Reads from the given file, or stdin if omitted (e.g.
'topo query "auth" | topo browse').

This is a read-only viewer: it does not rescore or reorder anything,
just paginates and filters what the core pipeline already produced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening manifest: %w", err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			query, records, err := parseManifest(r)
			if err != nil {
				return err
			}

			model := ui.NewBrowseModel(records, query, noColor)
			program := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()), tea.WithInput(cmd.InOrStdin()))
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

// parseManifest reads a JSONL manifest (header, file records, footer)
// and returns the query recorded in the header plus the file records,
// in the order they appeared.
func parseManifest(r io.Reader) (string, []ui.ManifestRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var query string
	var records []ui.ManifestRecord
	first := true

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if first {
			first = false
			var header struct {
				Query string `json:"Query"`
			}
			if err := json.Unmarshal(line, &header); err == nil && header.Query != "" {
				query = header.Query
				continue
			}
		}

		var rec struct {
			Path     string  `json:"Path"`
			Score    float64 `json:"Score"`
			Tokens   uint64  `json:"Tokens"`
			Language string  `json:"Language"`
			Role     string  `json:"Role"`
		}
		if err := json.Unmarshal(line, &rec); err != nil {
			return "", nil, fmt.Errorf("parsing manifest line: %w", err)
		}
		if rec.Path == "" {
			continue // footer record
		}
		records = append(records, ui.ManifestRecord{
			Path:     rec.Path,
			Score:    rec.Score,
			Tokens:   rec.Tokens,
			Language: rec.Language,
			Role:     rec.Role,
		})
	}

	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("reading manifest: %w", err)
	}

	return query, records, nil
}
