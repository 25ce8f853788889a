package types

import "strings"

// Role is a coarse functional classification of a file derived solely from
// its path.
type Role string

const (
	RoleImplementation Role = "impl"
	RoleTest           Role = "test"
	RoleConfig         Role = "config"
	RoleDocumentation  Role = "docs"
	RoleGenerated      Role = "generated"
	RoleBuild          Role = "build"
	RoleOther          Role = "other"
)

// String returns the short tag used in the JSONL output.
func (r Role) String() string {
	if r == "" {
		return string(RoleOther)
	}
	return string(r)
}

var generatedDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"third_party":  true,
	"dist":         true,
	"build":        true,
	"generated":    true,
}

var testDirs = map[string]bool{
	"tests":      true,
	"test":       true,
	"spec":       true,
	"e2e":        true,
	"__tests__":  true,
}

var buildFilenames = map[string]bool{
	"makefile":          true,
	"dockerfile":        true,
	"cargo.toml":        true,
	"go.mod":            true,
	"go.sum":            true,
	"package.json":      true,
	"package-lock.json": true,
	"cmakelists.txt":    true,
	"build.gradle":      true,
	"pom.xml":           true,
	"justfile":          true,
	"rakefile":          true,
}

var configExtensions = map[string]bool{
	"yaml": true,
	"yml":  true,
	"toml": true,
	"ini":  true,
	"conf": true,
	"cfg":  true,
	"properties": true,
}

var configDotfiles = map[string]bool{
	".env":        true,
	".gitignore":  true,
	".gitattributes": true,
	".editorconfig": true,
	".eslintrc":   true,
	".prettierrc": true,
	".npmrc":      true,
}

var docExtensions = map[string]bool{
	"md":  true,
	"rst": true,
	"txt": true,
}

var docDirs = map[string]bool{
	"docs": true,
	"doc":  true,
}

// RoleFromPath classifies a repository-relative path into a Role, applying
// a fixed priority order: Generated, Test, Build, Config, Documentation,
// Implementation, Other. The first matching rule wins — in particular a
// test file under vendor/ is Generated, not Test.
func RoleFromPath(path string) Role {
	path = normalizeSlashes(path)
	segments := strings.Split(path, "/")
	base := segments[len(segments)-1]
	lowerBase := strings.ToLower(base)
	ext := fileExt(lowerBase)

	// 1. Generated
	for _, seg := range segments[:len(segments)-1] {
		if generatedDirs[strings.ToLower(seg)] {
			return RoleGenerated
		}
	}
	if matchesAny(lowerBase, generatedFilenamePatterns) {
		return RoleGenerated
	}

	// 2. Test
	for _, seg := range segments[:len(segments)-1] {
		if testDirs[strings.ToLower(seg)] {
			return RoleTest
		}
	}
	if matchesAny(lowerBase, testFilenamePatterns) || strings.HasPrefix(lowerBase, "test_") {
		return RoleTest
	}

	// 3. Build
	if buildFilenames[lowerBase] || ext == "mk" {
		return RoleBuild
	}

	// 4. Config
	if configExtensions[ext] {
		return RoleConfig
	}
	if strings.HasPrefix(base, ".") && configDotfiles[lowerBase] {
		return RoleConfig
	}
	if strings.HasPrefix(base, ".") && (strings.HasPrefix(lowerBase, ".env") || strings.Contains(lowerBase, "rc")) {
		return RoleConfig
	}

	// 5. Documentation
	if docExtensions[ext] {
		return RoleDocumentation
	}
	for _, seg := range segments[:len(segments)-1] {
		if docDirs[strings.ToLower(seg)] {
			return RoleDocumentation
		}
	}

	// 6. Implementation: known source extensions falling through.
	if LanguageFromExtension(ext).IsProgrammingLanguage() || ext == "html" || ext == "css" {
		return RoleImplementation
	}

	// 7. Other
	return RoleOther
}

// generatedFilenamePatterns are filename glob-like suffix/substring checks
// for generated code that doesn't live under a dedicated vendor directory.
var generatedFilenamePatterns = []string{".pb.", ".generated.", ".gen."}

var testFilenamePatterns = []string{"_test.", "_spec.", ".test.", ".spec."}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func fileExt(lowerBase string) string {
	dot := strings.LastIndexByte(lowerBase, '.')
	if dot < 0 || dot == len(lowerBase)-1 {
		return ""
	}
	return lowerBase[dot+1:]
}
