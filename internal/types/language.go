// Package types holds the domain types shared across topo's packages:
// language and role classification, the scan/index/score data model, and
// the token budget that bounds the renderer's output.
package types

import "strings"

// Language is a detected programming or markup language.
type Language string

const (
	LanguageGo         Language = "go"
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageRust       Language = "rust"
	LanguageJava       Language = "java"
	LanguageCpp        Language = "cpp"
	LanguageC          Language = "c"
	LanguageCSharp     Language = "csharp"
	LanguageRuby       Language = "ruby"
	LanguagePHP        Language = "php"
	LanguageShell      Language = "shell"
	LanguageHTML       Language = "html"
	LanguageCSS        Language = "css"
	LanguageMarkdown   Language = "markdown"
	LanguageJSON       Language = "json"
	LanguageYAML       Language = "yaml"
	LanguageTOML       Language = "toml"
	LanguageSQL        Language = "sql"
	LanguageOther      Language = "other"
)

// String implements fmt.Stringer, returning the lowercase language name
// used verbatim in the JSONL output.
func (l Language) String() string {
	if l == "" {
		return string(LanguageOther)
	}
	return string(l)
}

// extensionLanguage maps a lowercased, dot-free extension to its language.
// Extensions with more than one plausible language (cc/cpp/hpp, ts/tsx/mts)
// are handled here explicitly rather than via a generic suffix match.
var extensionLanguage = map[string]Language{
	"go": LanguageGo,

	"py":  LanguagePython,
	"pyw": LanguagePython,
	"pyi": LanguagePython,

	"js":  LanguageJavaScript,
	"jsx": LanguageJavaScript,
	"mjs": LanguageJavaScript,
	"cjs": LanguageJavaScript,

	"ts":  LanguageTypeScript,
	"tsx": LanguageTypeScript,
	"mts": LanguageTypeScript,
	"cts": LanguageTypeScript,

	"rs": LanguageRust,

	"java": LanguageJava,

	"cc":  LanguageCpp,
	"cpp": LanguageCpp,
	"cxx": LanguageCpp,
	"hpp": LanguageCpp,
	"hxx": LanguageCpp,

	"c": LanguageC,
	"h": LanguageC,

	"cs": LanguageCSharp,

	"rb": LanguageRuby,

	"php": LanguagePHP,

	"sh":  LanguageShell,
	"bash": LanguageShell,
	"zsh": LanguageShell,

	"html": LanguageHTML,
	"htm":  LanguageHTML,

	"css":  LanguageCSS,
	"scss": LanguageCSS,
	"sass": LanguageCSS,
	"less": LanguageCSS,

	"md":       LanguageMarkdown,
	"mdx":      LanguageMarkdown,
	"markdown": LanguageMarkdown,

	"json": LanguageJSON,

	"yaml": LanguageYAML,
	"yml":  LanguageYAML,

	"toml": LanguageTOML,

	"sql": LanguageSQL,
}

// nonProgrammingLanguages are languages that do not count as "programming
// language" files for heuristics that want to distinguish source from
// prose or data: Markdown, JSON, and similar formats are excluded.
var nonProgrammingLanguages = map[Language]bool{
	LanguageMarkdown: true,
	LanguageJSON:     true,
	LanguageYAML:     true,
	LanguageTOML:     true,
	LanguageHTML:     true,
	LanguageCSS:      true,
	LanguageOther:    true,
}

// LanguageFromExtension resolves a language from a bare extension (no
// leading dot, any case).
func LanguageFromExtension(ext string) Language {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if lang, ok := extensionLanguage[ext]; ok {
		return lang
	}
	return LanguageOther
}

// LanguageFromPath resolves a language from a repository-relative path,
// normalizing backslashes first so Windows-style paths classify the same
// as forward-slash ones.
func LanguageFromPath(path string) Language {
	path = normalizeSlashes(path)
	idx := strings.LastIndexByte(path, '/')
	base := path
	if idx >= 0 {
		base = path[idx+1:]
	}
	dot := strings.LastIndexByte(base, '.')
	if dot < 0 || dot == len(base)-1 {
		return LanguageOther
	}
	return LanguageFromExtension(base[dot+1:])
}

// IsProgrammingLanguage reports whether l is a distinguished "code" language
// as opposed to prose/markup/data formats.
func (l Language) IsProgrammingLanguage() bool {
	if l == "" {
		return false
	}
	return !nonProgrammingLanguages[l]
}

func normalizeSlashes(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
