package analyzer

import (
	"fmt"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newTestCrawler(t *testing.T, cfg Config) (*treeCrawler, *run) {
	t.Helper()
	r := &run{}
	return &treeCrawler{
		filter: newTestFilter(t, cfg),
		logger: zap.NewNop(),
		warn:   r.addWarning,
	}, r
}

func TestGatherFilesPrunesEmptyDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.ts"), "content")
	writeFile(t, filepath.Join(root, "docs", "README"), "no extension")
	writeFile(t, filepath.Join(root, "node_modules", "b.ts"), "ignored")

	cfg := DefaultConfig()
	cfg.Directory = root
	cfg.RelevantExtensions = []string{".ts"}
	c, _ := newTestCrawler(t, cfg)

	result := c.gatherFiles(root)
	if len(result.nodes) != 1 {
		t.Fatalf("expected 1 surviving node, got %d", len(result.nodes))
	}
	src := result.nodes[0]
	if src.Name != "src" || !src.IsDirectory {
		t.Fatalf("expected directory node src, got %+v", src)
	}
	if len(src.Children) != 1 || src.Children[0].Name != "a.ts" {
		t.Fatalf("expected single child a.ts, got %+v", src.Children)
	}
	if result.totalSize != int64(len("content")) {
		t.Errorf("totalSize = %d, want %d", result.totalSize, len("content"))
	}
}

func TestGatherFilesPreservesReaddirOrder(t *testing.T) {
	root := t.TempDir()
	names := []string{"alpha.ts", "bravo.ts", "charlie.ts", "delta.ts", "echo.ts"}
	for _, name := range names {
		writeFile(t, filepath.Join(root, name), "x")
	}

	cfg := DefaultConfig()
	cfg.Directory = root
	cfg.RelevantExtensions = []string{".ts"}
	c, _ := newTestCrawler(t, cfg)

	// Run several times: fan-out must never reorder siblings.
	for i := 0; i < 10; i++ {
		result := c.gatherFiles(root)
		if len(result.nodes) != len(names) {
			t.Fatalf("expected %d nodes, got %d", len(names), len(result.nodes))
		}
		for j, node := range result.nodes {
			if node.Name != names[j] {
				t.Fatalf("run %d: node %d = %q, want %q", i, j, node.Name, names[j])
			}
		}
	}
}

func TestGatherFilesIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.ts"), "aaaa")
	writeFile(t, filepath.Join(root, "sub", "b.ts"), "bb")

	cfg := DefaultConfig()
	cfg.Directory = root
	cfg.RelevantExtensions = []string{".ts"}
	c, _ := newTestCrawler(t, cfg)

	first := c.gatherFiles(root)
	second := c.gatherFiles(root)
	if first.totalSize != 6 || second.totalSize != 6 {
		t.Errorf("totalSize should be 6 on every crawl, got %d then %d",
			first.totalSize, second.totalSize)
	}
}

func TestGatherFilesReaddirFailureIsSoft(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.ts"), "x")

	cfg := DefaultConfig()
	cfg.Directory = root
	cfg.RelevantExtensions = []string{".ts"}
	c, r := newTestCrawler(t, cfg)

	result := c.gatherFiles(filepath.Join(root, "does-not-exist"))
	if len(result.nodes) != 0 {
		t.Fatalf("expected no nodes for unreadable directory")
	}
	if len(r.warnings) != 1 || r.warnings[0].Op != "readdir" {
		t.Fatalf("expected one readdir warning, got %+v", r.warnings)
	}
}

func TestGatherFilesDeepTree(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		dir := root
		for j := 0; j <= i; j++ {
			dir = filepath.Join(dir, fmt.Sprintf("level%d", j))
		}
		writeFile(t, filepath.Join(dir, "f.ts"), "y")
	}

	cfg := DefaultConfig()
	cfg.Directory = root
	cfg.RelevantExtensions = []string{".ts"}
	c, _ := newTestCrawler(t, cfg)

	result := c.gatherFiles(root)
	if got := countTotalFiles(result.nodes); got != 5 {
		t.Fatalf("expected 5 files across the tree, got %d", got)
	}
	if result.totalSize != 5 {
		t.Errorf("totalSize = %d, want 5", result.totalSize)
	}
}
