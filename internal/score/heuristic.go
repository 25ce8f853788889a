package score

import (
	"strings"

	"github.com/topo-sh/topo/internal/tokenizer"
	"github.com/topo-sh/topo/internal/types"
)

// HeuristicScorer scores a file path against a query using signals that
// need no corpus statistics: keyword presence, file role, directory
// depth, well-known path prefixes, and file size.
type HeuristicScorer struct {
	queryTokens []string
}

// NewHeuristicScorer tokenizes query once for reuse across Score calls.
func NewHeuristicScorer(query string) *HeuristicScorer {
	return &HeuristicScorer{queryTokens: tokenizer.Tokenize(query)}
}

// Score returns a combined heuristic score in [0, 1]:
//   - keyword match   × 0.40
//   - file role       × 0.25
//   - directory depth × 0.15
//   - well-known path × 0.10
//   - file size       × 0.10
func (s *HeuristicScorer) Score(path string, role types.Role, size int64) float64 {
	total := s.keywordScore(path)*0.4 +
		roleScore(role)*0.25 +
		depthScore(path)*0.15 +
		wellknownScore(path)*0.1 +
		sizeScore(size)*0.1

	if total < 0 {
		return 0
	}
	if total > 1 {
		return 1
	}
	return total
}

// keywordScore is the fraction of query tokens present anywhere in
// path's tokenization.
func (s *HeuristicScorer) keywordScore(path string) float64 {
	if len(s.queryTokens) == 0 {
		return 0
	}

	pathTokens := tokenizer.Tokenize(path)
	matches := 0
	for _, qt := range s.queryTokens {
		for _, pt := range pathTokens {
			if pt == qt {
				matches++
				break
			}
		}
	}

	return float64(matches) / float64(len(s.queryTokens))
}

func roleScore(role types.Role) float64 {
	switch role {
	case types.RoleImplementation:
		return 1.0
	case types.RoleBuild:
		return 0.6
	case types.RoleTest:
		return 0.5
	case types.RoleConfig:
		return 0.3
	case types.RoleDocumentation:
		return 0.2
	case types.RoleOther:
		return 0.1
	case types.RoleGenerated:
		return 0.05
	default:
		return 0.1
	}
}

// depthScore favors shallower paths. Depth is the count of path
// separators (either slash style counts the same).
func depthScore(path string) float64 {
	depth := strings.Count(path, "/") + strings.Count(path, `\`)
	switch depth {
	case 0:
		return 1.0
	case 1:
		return 0.9
	case 2:
		return 0.7
	case 3:
		return 0.5
	case 4:
		return 0.3
	default:
		return 0.1
	}
}

// wellknownScore bonuses paths rooted in conventional source
// directories and penalizes vendored/generated ones.
func wellknownScore(path string) float64 {
	first := path
	if i := strings.IndexAny(path, `/\`); i >= 0 {
		first = path[:i]
	}

	switch first {
	case "src", "lib", "cmd", "pkg", "app", "internal", "crates":
		return 1.0
	case "bin", "server", "api", "core", "modules":
		return 0.8
	case "test", "tests", "spec", "e2e":
		return 0.5
	case "docs", "doc", "examples", "scripts":
		return 0.3
	case "vendor", "node_modules", "third_party":
		return 0.0
	default:
		return 0.4
	}
}

// sizeScore penalizes very large files; small and medium files score
// best.
func sizeScore(size int64) float64 {
	switch {
	case size <= 1_000:
		return 0.9
	case size <= 5_000:
		return 1.0
	case size <= 20_000:
		return 0.8
	case size <= 100_000:
		return 0.5
	case size <= 500_000:
		return 0.2
	default:
		return 0.05
	}
}
