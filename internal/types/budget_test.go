package types

import "testing"

func u64(v uint64) *uint64 { return &v }

func scoredFile(path string, tokens uint64, score float64) ScoredFile {
	return ScoredFile{Path: path, Score: score, Tokens: tokens, Language: LanguageRust, Role: RoleImplementation}
}

func TestBudgetNoLimitsReturnsAll(t *testing.T) {
	files := []ScoredFile{scoredFile("a.rs", 100, 0.9), scoredFile("b.rs", 200, 0.8)}
	b := TokenBudget{}
	if got := b.Enforce(files); len(got) != 2 {
		t.Errorf("got %d files, want 2", len(got))
	}
}

func TestBudgetMaxBytesTruncates(t *testing.T) {
	files := []ScoredFile{
		scoredFile("a.rs", 100, 0.9), // 400 bytes
		scoredFile("b.rs", 200, 0.8), // 800 bytes -> cumulative 1200
		scoredFile("c.rs", 300, 0.7),
	}
	b := TokenBudget{MaxBytes: u64(1000)}
	result := b.Enforce(files)
	if len(result) != 1 {
		t.Errorf("got %d files, want 1", len(result))
	}
}

func TestBudgetMaxTokensTruncates(t *testing.T) {
	files := []ScoredFile{
		scoredFile("a.rs", 100, 0.9),
		scoredFile("b.rs", 200, 0.8),
		scoredFile("c.rs", 300, 0.7),
	}
	b := TokenBudget{MaxTokens: u64(250)}
	result := b.Enforce(files)
	if len(result) != 1 {
		t.Errorf("got %d files, want 1", len(result))
	}
	if result[0].Path != "a.rs" {
		t.Errorf("got %q, want a.rs", result[0].Path)
	}
}

func TestBudgetAlwaysIncludesFirstFile(t *testing.T) {
	files := []ScoredFile{scoredFile("huge.rs", 10000, 0.9)}
	b := TokenBudget{MaxBytes: u64(100)}
	if got := b.Enforce(files); len(got) != 1 {
		t.Errorf("got %d files, want 1", len(got))
	}
}

func TestBudgetEmptyInput(t *testing.T) {
	b := TokenBudget{MaxBytes: u64(100), MaxTokens: u64(100)}
	if got := b.Enforce(nil); len(got) != 0 {
		t.Errorf("got %d files, want 0", len(got))
	}
}

func TestBudgetOutputIsPrefix(t *testing.T) {
	files := []ScoredFile{
		scoredFile("a.rs", 50, 0.9),
		scoredFile("b.rs", 50, 0.8),
		scoredFile("c.rs", 50, 0.7),
	}
	b := TokenBudget{MaxTokens: u64(120)}
	result := b.Enforce(files)
	for i, f := range result {
		if f.Path != files[i].Path {
			t.Fatalf("result is not a prefix of input at index %d", i)
		}
	}
}
