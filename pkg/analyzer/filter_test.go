package analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestFilter(t *testing.T, cfg Config) *PathFilter {
	t.Helper()
	f, err := newPathFilter(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("newPathFilter failed: %v", err)
	}
	return f
}

func TestShouldIgnore(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Directory = root
	cfg.IgnorePatterns = []string{"node_modules", `\.log$`, "dist"}
	f := newTestFilter(t, cfg)

	cases := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "node_modules", "b.ts"), true},
		{filepath.Join(root, "src", "app.ts"), false},
		{filepath.Join(root, ".hidden", "f.ts"), true},
		{filepath.Join(root, ".env"), true},
		{filepath.Join(root, "debug.log"), true},
		{filepath.Join(root, "main.go"), false},
		// Patterns are regexes, not path segments: "dist" matches anywhere.
		{filepath.Join(root, "mydistro", "x.ts"), true},
	}
	for _, c := range cases {
		if got := f.ShouldIgnore(c.path); got != c.want {
			t.Errorf("ShouldIgnore(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestShouldIgnoreMatchesBaseName(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Directory = root
	cfg.IgnorePatterns = []string{`^generated\.ts$`}
	f := newTestFilter(t, cfg)

	if !f.ShouldIgnore(filepath.Join(root, "deep", "nested", "generated.ts")) {
		t.Errorf("anchored pattern should match the base name alone")
	}
	if f.ShouldIgnore(filepath.Join(root, "deep", "other.ts")) {
		t.Errorf("non-matching path should not be ignored")
	}
}

func TestInvalidIgnorePattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Directory = t.TempDir()
	cfg.IgnorePatterns = []string{"("}
	if _, err := newPathFilter(cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected error for invalid regex pattern")
	}
}

func TestHasExtension(t *testing.T) {
	f := newTestFilter(t, Config{Directory: t.TempDir()})

	cases := map[string]bool{
		"a/b.ts":       true,
		"a/b":          false,
		"a/.gitignore": false,
		"a/b.":         false,
		"Makefile":     false,
		"x.tar.gz":     true,
	}
	for path, want := range cases {
		if got := f.HasExtension(path); got != want {
			t.Errorf("HasExtension(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestIsRelevantFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.ts"), "let a = 1")
	writeFile(t, filepath.Join(root, "component.module.ts"), "x")
	writeFile(t, filepath.Join(root, "big.ts"), strings.Repeat("a", 200))
	writeFile(t, filepath.Join(root, "Makefile"), "all:")
	writeFile(t, filepath.Join(root, "notes.txt"), "hi")

	cfg := DefaultConfig()
	cfg.Directory = root
	cfg.RelevantExtensions = []string{".ts"}
	cfg.MaxFileSize = 100
	f := newTestFilter(t, cfg)

	cases := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "keep.ts"), true},
		// Suffix match, not final-extension equality.
		{filepath.Join(root, "component.module.ts"), true},
		{filepath.Join(root, "big.ts"), false},
		{filepath.Join(root, "Makefile"), false},
		{filepath.Join(root, "notes.txt"), false},
		{filepath.Join(root, "missing.ts"), false},
		{root, false}, // directories are never relevant files
	}
	for _, c := range cases {
		if got := f.IsRelevantFile(c.path); got != c.want {
			t.Errorf("IsRelevantFile(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestUseGitIgnore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "ignored.ts\n")

	cfg := DefaultConfig()
	cfg.Directory = root
	cfg.IgnorePatterns = nil
	cfg.UseGitIgnore = true
	f := newTestFilter(t, cfg)

	if !f.ShouldIgnore(filepath.Join(root, "ignored.ts")) {
		t.Errorf("path listed in .gitignore should be ignored")
	}
	if f.ShouldIgnore(filepath.Join(root, "kept.ts")) {
		t.Errorf("path not listed in .gitignore should not be ignored")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
