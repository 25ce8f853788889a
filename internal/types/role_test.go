package types

import "testing"

func TestRoleAsStr(t *testing.T) {
	cases := map[Role]string{
		RoleImplementation: "impl",
		RoleTest:           "test",
		RoleConfig:         "config",
		RoleDocumentation:  "docs",
		RoleGenerated:      "generated",
		RoleBuild:          "build",
		RoleOther:          "other",
	}
	for role, want := range cases {
		if got := role.String(); got != want {
			t.Errorf("Role(%v).String() = %q, want %q", role, got, want)
		}
	}
}

func TestRoleTestBySuffix(t *testing.T) {
	for _, path := range []string{
		"pkg/handler_test.go",
		"src/parser_test.rs",
		"src/parser_spec.rs",
		"src/utils.spec.ts",
	} {
		if got := RoleFromPath(path); got != RoleTest {
			t.Errorf("RoleFromPath(%q) = %v, want Test", path, got)
		}
	}
}

func TestRoleTestByPrefix(t *testing.T) {
	if got := RoleFromPath("test_utils.py"); got != RoleTest {
		t.Errorf("got %v, want Test", got)
	}
}

func TestRoleTestByDirectory(t *testing.T) {
	for _, path := range []string{
		"tests/integration/scan.rs",
		"src/__tests__/App.test.js",
	} {
		if got := RoleFromPath(path); got != RoleTest {
			t.Errorf("RoleFromPath(%q) = %v, want Test", path, got)
		}
	}
}

func TestRoleConfig(t *testing.T) {
	if got := RoleFromPath("config/settings.yaml"); got != RoleConfig {
		t.Errorf("got %v, want Config", got)
	}
	if got := RoleFromPath(".gitignore"); got != RoleConfig {
		t.Errorf("got %v, want Config", got)
	}
}

func TestRoleDocumentation(t *testing.T) {
	if got := RoleFromPath("README.md"); got != RoleDocumentation {
		t.Errorf("got %v, want Documentation", got)
	}
	if got := RoleFromPath("docs/architecture.rs"); got != RoleDocumentation {
		t.Errorf("got %v, want Documentation", got)
	}
}

func TestRoleGenerated(t *testing.T) {
	for _, path := range []string{
		"vendor/github.com/pkg/errors/errors.go",
		"node_modules/lodash/index.js",
		"api/service.pb.go",
		"src/schema.generated.ts",
	} {
		if got := RoleFromPath(path); got != RoleGenerated {
			t.Errorf("RoleFromPath(%q) = %v, want Generated", path, got)
		}
	}
}

func TestRoleGeneratedTakesPriorityOverTest(t *testing.T) {
	if got := RoleFromPath("vendor/pkg/handler_test.go"); got != RoleGenerated {
		t.Errorf("got %v, want Generated (priority over Test)", got)
	}
}

func TestRoleBuild(t *testing.T) {
	for _, path := range []string{"Makefile", "Dockerfile", "Cargo.toml"} {
		if got := RoleFromPath(path); got != RoleBuild {
			t.Errorf("RoleFromPath(%q) = %v, want Build", path, got)
		}
	}
}

func TestRoleImplementation(t *testing.T) {
	if got := RoleFromPath("src/main.rs"); got != RoleImplementation {
		t.Errorf("got %v, want Implementation", got)
	}
	if got := RoleFromPath("templates/index.html"); got != RoleImplementation {
		t.Errorf("got %v, want Implementation", got)
	}
}

func TestRoleOther(t *testing.T) {
	if got := RoleFromPath("data/blob.xyz"); got != RoleOther {
		t.Errorf("got %v, want Other", got)
	}
}
