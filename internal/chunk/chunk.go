// Package chunk extracts function, type, and import regions from source
// text using per-language regular expressions. It trades AST precision
// for zero build dependencies; a tree-sitter backend could be swapped in
// later behind the same Extract signature.
package chunk

import (
	"bufio"
	"strings"

	"github.com/topo-sh/topo/internal/types"
)

// Extract returns the chunks found in content for the given language, in
// source order. Unsupported languages and extraction failures (no
// matches, malformed source) yield an empty, non-nil slice — never an
// error.
func Extract(content string, language types.Language) []types.Chunk {
	patterns, ok := registry[language]
	if !ok {
		return []types.Chunk{}
	}

	lines := splitLines(content)
	chunks := make([]types.Chunk, 0, len(lines)/20+1)

	for lineNo, line := range lines {
		for _, p := range patterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := ""
			if p.nameGroup > 0 && p.nameGroup < len(m) {
				name = m[p.nameGroup]
			}
			if p.kind != types.ChunkImport && name == "" {
				continue
			}
			start := lineNo + 1
			chunks = append(chunks, types.Chunk{
				Kind:      p.kind,
				Name:      name,
				StartLine: start,
				EndLine:   endLineFor(lines, lineNo, p.kind),
			})
			break // a line declares at most one chunk
		}
	}

	return chunks
}

// endLineFor estimates a chunk's closing line. Import statements end on
// the line they start; function and type bodies run from the start line
// to the first line where the brace depth, counted from the start line,
// returns to zero after at least one '{', or to the file's end if that
// never happens. Braces inside strings and comments are counted too.
// This is a heuristic, not a parser: it
// only needs to be good enough for rendering line ranges.
func endLineFor(lines []string, startIdx int, kind types.ChunkKind) int {
	if kind == types.ChunkImport {
		return startIdx + 1
	}

	depth := 0
	seenOpen := false
	for i := startIdx; i < len(lines); i++ {
		for _, r := range lines[i] {
			switch r {
			case '{':
				depth++
				seenOpen = true
			case '}':
				depth--
			}
		}
		if seenOpen && depth <= 0 {
			return i + 1
		}
	}
	return len(lines)
}

func splitLines(content string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
