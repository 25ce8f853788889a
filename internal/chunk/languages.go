package chunk

import (
	"regexp"

	"github.com/topo-sh/topo/internal/types"
)

// pattern pairs a line-matching regex with the chunk kind it signals and
// the capture group holding the declared name (0 when the kind carries
// no name, such as imports).
type pattern struct {
	re        *regexp.Regexp
	kind      types.ChunkKind
	nameGroup int
}

// registry maps each supported language to its ordered pattern list.
// Patterns are tried in order per line; the first match wins.
var registry = map[types.Language][]pattern{
	types.LanguageGo: {
		{regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s+)?(\w+)`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*type\s+(\w+)\s+(?:struct|interface|func)\b`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*import\s+(?:\(|"[^"]*")`), types.ChunkImport, 0},
		{regexp.MustCompile(`^\s*"[^"]*"\s*$`), types.ChunkImport, 0},
	},
	types.LanguagePython: {
		{regexp.MustCompile(`^\s*def\s+(\w+)\s*\(`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*class\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*(?:import\s+\S+|from\s+\S+\s+import\s+.+)`), types.ChunkImport, 0},
	},
	types.LanguageJavaScript: {
		{regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*\(`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:export\s+)?const\s+(\w+)\s*=\s*(?:async\s*)?\(?[^=]*\)?\s*=>`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:export\s+)?class\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*import\s+.+\s+from\s+['"].+['"]`), types.ChunkImport, 0},
	},
	types.LanguageTypeScript: {
		{regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*(?:<[^>]*>)?\s*\(`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:export\s+)?const\s+(\w+)\s*=\s*(?:async\s*)?\(?[^=]*\)?\s*=>`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?class\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*(?:export\s+)?(?:interface|type)\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*import\s+.+\s+from\s+['"].+['"]`), types.ChunkImport, 0},
	},
	types.LanguageRust: {
		{regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?fn\s+(\w+)`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:struct|enum|trait)\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*use\s+[\w:]+`), types.ChunkImport, 0},
	},
	types.LanguageJava: {
		{regexp.MustCompile(`^\s*(?:public|private|protected)?\s*(?:static\s+)?(?:final\s+)?[\w<>\[\]]+\s+(\w+)\s*\([^;]*$`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:public|private|protected)?\s*(?:abstract\s+)?(?:final\s+)?(?:class|interface|enum)\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*import\s+[\w.]+;`), types.ChunkImport, 0},
	},
	types.LanguageC: {
		{regexp.MustCompile(`^\s*(?:static\s+)?[\w][\w\s\*]*?\s+(\w+)\s*\([^;]*\)\s*\{?\s*$`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:typedef\s+)?(?:struct|enum|union)\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*#include\s+[<"][\w./]+[>"]`), types.ChunkImport, 0},
	},
	types.LanguageCpp: {
		{regexp.MustCompile(`^\s*(?:static\s+|virtual\s+|inline\s+)*[\w:<>]+[\s&*]+(\w+)\s*\([^;]*\)\s*(?:const\s*)?\{?\s*$`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:class|struct|enum(?:\s+class)?)\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*#include\s+[<"][\w./]+[>"]`), types.ChunkImport, 0},
	},
	types.LanguageCSharp: {
		{regexp.MustCompile(`^\s*(?:public|private|protected|internal)?\s*(?:static\s+)?(?:async\s+)?[\w<>\[\]]+\s+(\w+)\s*\([^;]*$`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:public|private|protected|internal)?\s*(?:abstract\s+|sealed\s+)?(?:class|interface|struct|enum)\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*using\s+[\w.]+;`), types.ChunkImport, 0},
	},
	types.LanguageRuby: {
		{regexp.MustCompile(`^\s*def\s+(?:self\.)?(\w+[?!=]?)`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:class|module)\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*require(?:_relative)?\s+['"][\w./]+['"]`), types.ChunkImport, 0},
	},
	types.LanguagePHP: {
		{regexp.MustCompile(`^\s*(?:public|private|protected)?\s*(?:static\s+)?function\s+(\w+)\s*\(`), types.ChunkFunction, 1},
		{regexp.MustCompile(`^\s*(?:abstract\s+|final\s+)?(?:class|interface|trait)\s+(\w+)`), types.ChunkType, 1},
		{regexp.MustCompile(`^\s*(?:require|include)(?:_once)?\s*\(?['"][\w./]+['"]`), types.ChunkImport, 0},
	},
}
