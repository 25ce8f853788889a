package types

import "time"

// FileInfo is the per-file metadata produced by the scanner.
// It is immutable after creation.
type FileInfo struct {
	Path     string   // repository-relative, forward-slash normalized
	Size     int64    // bytes
	Language Language
	Role     Role
	SHA256   [32]byte // content digest
}

// EstimatedTokens approximates the file's LLM token count from its byte
// size. Bytes and tokens are distinct budget units; this is the only
// conversion between them: tokens = size / 4.
func (f FileInfo) EstimatedTokens() uint64 {
	if f.Size <= 0 {
		return 0
	}
	return uint64(f.Size) / 4
}

// Bundle is the result of a repository scan: a sorted file listing plus
// its corpus fingerprint.
type Bundle struct {
	Fingerprint string
	Root        string
	Files       []FileInfo
	ScannedAt   time.Time
}

// FileCount returns the number of files in the bundle.
func (b Bundle) FileCount() int { return len(b.Files) }

// IsEmpty reports whether the bundle has no files.
func (b Bundle) IsEmpty() bool { return len(b.Files) == 0 }

// TotalTokens sums the estimated token count across all files.
func (b Bundle) TotalTokens() uint64 {
	var total uint64
	for _, f := range b.Files {
		total += f.EstimatedTokens()
	}
	return total
}

// ChunkKind classifies an extracted source region.
type ChunkKind int

const (
	ChunkFunction ChunkKind = iota
	ChunkType
	ChunkImport
	ChunkOther
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkFunction:
		return "Function"
	case ChunkType:
		return "Type"
	case ChunkImport:
		return "Import"
	default:
		return "Other"
	}
}

// Chunk is a named region of source: a function, type, or import block.
type Chunk struct {
	Kind      ChunkKind
	Name      string
	StartLine int // 1-based, inclusive
	EndLine   int // 1-based, inclusive
}

// TermFreqs is the per-field occurrence count of one term within one file.
// A term appearing in both the filename and the body increments both
// fields independently.
type TermFreqs struct {
	Filename uint32
	Symbols  uint32
	Body     uint32
}

// Total returns the sum across all three fields, the unit the index uses
// for a file's doc_length contribution.
func (t TermFreqs) Total() uint32 {
	return t.Filename + t.Symbols + t.Body
}

// FileEntry is one file's record within the DeepIndex.
type FileEntry struct {
	Path      string
	SHA256    [32]byte // copied from FileInfo; the incremental-skip key
	Chunks    []Chunk
	TermFreqs map[string]TermFreqs
	DocLength uint32 // sum of all field counts over all terms
	Language  Language
	Role      Role
	Size      int64
}

// DeepIndexVersion is bumped on any schema change to the persisted index,
// so loaders can reject snapshots from incompatible future versions.
const DeepIndexVersion = 1

// DeepIndex is the persisted inverted index. It exclusively owns its
// Files map and the derived DocFrequencies/AvgDocLength, which must be
// recomputed whenever entries change — never edited in isolation.
type DeepIndex struct {
	Version        int
	Files          map[string]*FileEntry
	DocFrequencies map[string]int // term -> number of documents containing it
	AvgDocLength   float64
	TotalDocs      int
}

// NewDeepIndex returns an empty, internally consistent DeepIndex.
func NewDeepIndex() *DeepIndex {
	return &DeepIndex{
		Version:        DeepIndexVersion,
		Files:          make(map[string]*FileEntry),
		DocFrequencies: make(map[string]int),
		AvgDocLength:   1,
	}
}

// Recompute rebuilds DocFrequencies, AvgDocLength, and TotalDocs from the
// current Files map. Callers must call this after adding, removing, or
// replacing any entry.
func (idx *DeepIndex) Recompute() {
	idx.TotalDocs = len(idx.Files)
	idx.DocFrequencies = make(map[string]int, len(idx.DocFrequencies))

	var totalLength uint64
	for _, entry := range idx.Files {
		totalLength += uint64(entry.DocLength)
		for term := range entry.TermFreqs {
			idx.DocFrequencies[term]++
		}
	}

	if idx.TotalDocs == 0 {
		idx.AvgDocLength = 1
		return
	}
	idx.AvgDocLength = float64(totalLength) / float64(idx.TotalDocs)
}

// SignalBreakdown records the individual signals that contributed to a
// ScoredFile's combined score. PageRank, git recency, and embedding
// similarity are optional reserved hooks, left unset unless a caller
// supplies precomputed values for them.
type SignalBreakdown struct {
	BM25F      float64
	Heuristic  float64
	PageRank   *float64
	GitRecency *float64
	Embedding  *float64
}

// ScoredFile is the transient result of scoring one file against a query.
type ScoredFile struct {
	Path     string
	Score    float64
	Signals  SignalBreakdown
	Tokens   uint64
	Language Language
	Role     Role
}

// TokenBudget bounds the renderer's output by bytes and/or estimated
// tokens. Bytes are approximated as tokens*4, the same convention
// EstimatedTokens uses — implementations must follow it exactly rather
// than re-deriving bytes from file size.
type TokenBudget struct {
	MaxBytes  *uint64
	MaxTokens *uint64
}
