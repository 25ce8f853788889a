// Package render writes the token-budgeted scorer output as line-framed
// JSONL: one Header record, one record per included file, and one Footer
// record, each independently parseable and LF-terminated.
package render

import (
	"bufio"
	"encoding/json"
	"io"

	topoerrors "github.com/topo-sh/topo/internal/errors"
	"github.com/topo-sh/topo/internal/types"
)

// FormatVersion is the JSONL wire format version.
const FormatVersion = "0.3"

// Header is the first line written: run metadata and the effective
// budget/filter settings.
type Header struct {
	Version string          `json:"Version"`
	Query   string          `json:"Query"`
	Preset  string          `json:"Preset,omitempty"`
	Budget  HeaderBudget    `json:"Budget"`
	MinScore float64        `json:"MinScore"`
}

// HeaderBudget mirrors the byte cap applied to this run, if any.
type HeaderBudget struct {
	MaxBytes *uint64 `json:"MaxBytes,omitempty"`
}

// FileRecord is one per-file line.
type FileRecord struct {
	Path     string `json:"Path"`
	Score    float64 `json:"Score"`
	Tokens   uint64  `json:"Tokens"`
	Language string  `json:"Language"`
	Role     string  `json:"Role"`
}

// Footer is the last line written: counts over the written set plus the
// pre-filter corpus size.
type Footer struct {
	TotalFiles   int    `json:"TotalFiles"`
	TotalTokens  uint64 `json:"TotalTokens"`
	ScannedFiles int    `json:"ScannedFiles"`
}

// Options configures one render pass.
type Options struct {
	Query        string
	Preset       string
	Budget       types.TokenBudget
	MinScore     float64
	ScannedFiles int // pre-filter corpus count, for the footer
}

// Write emits the Header, one FileRecord per file in files with a score
// at or above opts.MinScore, and the Footer, each on its own LF-terminated
// line. Files are written in input order — callers are expected to have
// already sorted and budget-enforced the list; Write preserves whatever
// order it is given. MinScore filtering happens here, before writing, so
// the footer reflects only what was written.
func Write(w io.Writer, files []types.ScoredFile, opts Options) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	header := Header{
		Version:  FormatVersion,
		Query:    opts.Query,
		Preset:   opts.Preset,
		Budget:   HeaderBudget{MaxBytes: opts.Budget.MaxBytes},
		MinScore: opts.MinScore,
	}
	if err := enc.Encode(header); err != nil {
		return topoerrors.RenderErr("failed to write header", err)
	}

	var totalTokens uint64
	written := 0
	for _, f := range files {
		if f.Score < opts.MinScore {
			continue
		}

		rec := FileRecord{
			Path:     f.Path,
			Score:    f.Score,
			Tokens:   f.Tokens,
			Language: f.Language.String(),
			Role:     f.Role.String(),
		}
		if err := enc.Encode(rec); err != nil {
			return topoerrors.RenderErr("failed to write file record", err)
		}

		totalTokens += f.Tokens
		written++
	}

	footer := Footer{
		TotalFiles:   written,
		TotalTokens:  totalTokens,
		ScannedFiles: opts.ScannedFiles,
	}
	if err := enc.Encode(footer); err != nil {
		return topoerrors.RenderErr("failed to write footer", err)
	}

	if err := bw.Flush(); err != nil {
		return topoerrors.RenderErr("failed to flush output", err)
	}

	return nil
}
