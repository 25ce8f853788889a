package types

import "testing"

func TestLanguageFromExtension(t *testing.T) {
	cases := map[string]Language{
		"rs":  LanguageRust,
		"py":  LanguagePython,
		"js":  LanguageJavaScript,
		"xyz": LanguageOther,
	}
	for ext, want := range cases {
		if got := LanguageFromExtension(ext); got != want {
			t.Errorf("LanguageFromExtension(%q) = %v, want %v", ext, got, want)
		}
	}
}

func TestLanguageFromExtensionCppVariants(t *testing.T) {
	for _, ext := range []string{"cpp", "cc", "hpp"} {
		if got := LanguageFromExtension(ext); got != LanguageCpp {
			t.Errorf("LanguageFromExtension(%q) = %v, want Cpp", ext, got)
		}
	}
}

func TestLanguageFromExtensionTypeScriptVariants(t *testing.T) {
	for _, ext := range []string{"ts", "tsx", "mts"} {
		if got := LanguageFromExtension(ext); got != LanguageTypeScript {
			t.Errorf("LanguageFromExtension(%q) = %v, want TypeScript", ext, got)
		}
	}
}

func TestLanguageFromPath(t *testing.T) {
	if got := LanguageFromPath("src/main.rs"); got != LanguageRust {
		t.Errorf("got %v, want Rust", got)
	}
	if got := LanguageFromPath("src/components/App.tsx"); got != LanguageTypeScript {
		t.Errorf("got %v, want TypeScript", got)
	}
	if got := LanguageFromPath("Makefile"); got != LanguageOther {
		t.Errorf("got %v, want Other", got)
	}
	if got := LanguageFromPath("include/foo.hpp"); got != LanguageCpp {
		t.Errorf("got %v, want Cpp", got)
	}
}

func TestLanguageFromPathBackslash(t *testing.T) {
	if got := LanguageFromPath(`src\main.rs`); got != LanguageRust {
		t.Errorf("got %v, want Rust", got)
	}
}

func TestLanguageString(t *testing.T) {
	if LanguageRust.String() != "rust" {
		t.Errorf("got %q", LanguageRust.String())
	}
	if LanguageTypeScript.String() != "typescript" {
		t.Errorf("got %q", LanguageTypeScript.String())
	}
	if LanguageOther.String() != "other" {
		t.Errorf("got %q", LanguageOther.String())
	}
}

func TestIsProgrammingLanguage(t *testing.T) {
	if !LanguageRust.IsProgrammingLanguage() {
		t.Error("rust should be a programming language")
	}
	if !LanguagePython.IsProgrammingLanguage() {
		t.Error("python should be a programming language")
	}
	if LanguageMarkdown.IsProgrammingLanguage() {
		t.Error("markdown should not be a programming language")
	}
	if LanguageJSON.IsProgrammingLanguage() {
		t.Error("json should not be a programming language")
	}
	if LanguageOther.IsProgrammingLanguage() {
		t.Error("other should not be a programming language")
	}
}
