// Package fingerprint computes the stable repository-state identity used to
// decide whether a persisted index is still current.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/topo-sh/topo/internal/types"
)

// Generate computes the fingerprint of a sorted FileInfo list: concatenate
// "{path}:{size}" lines separated by "\n", SHA-256 the UTF-8 bytes, and
// hex-lowercase-encode the digest. The result is insensitive to input
// order but sensitive to any path rename or size change. An empty list
// yields the hash of the empty string, still 64 hex characters.
func Generate(files []types.FileInfo) string {
	sorted := make([]types.FileInfo, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	entries := make([]string, len(sorted))
	for i, f := range sorted {
		entries[i] = f.Path + ":" + strconv.FormatInt(f.Size, 10)
	}

	combined := strings.Join(entries, "\n")
	sum := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(sum[:])
}
