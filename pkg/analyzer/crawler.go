// File: pkg/analyzer/crawler.go
package analyzer

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// crawlResult carries a gathered subtree together with the aggregate size
// of the relevant files inside it. Returning the size with the tree keeps
// gatherFiles free of side effects; crawling the same directory twice
// cannot double-count.
type crawlResult struct {
	nodes     []*FileNode
	totalSize int64
}

// treeCrawler builds the in-memory file tree for one analysis run.
type treeCrawler struct {
	filter *PathFilter
	logger *zap.Logger
	warn   func(op, path string, err error)
}

// gatherFiles recursively collects the surviving entries under dir.
// Sibling entries are statted and recursed concurrently; results are
// slotted by index so the combined sequence preserves readdir order.
// A readdir failure is logged and yields an empty subtree, never an error.
func (c *treeCrawler) gatherFiles(dir string) crawlResult {
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.logger.Warn("Failed to read directory",
			zap.String("directory", dir),
			zap.Error(err))
		c.warn("readdir", dir, err)
		return crawlResult{}
	}

	type slot struct {
		node *FileNode
		size int64
	}
	slots := make([]slot, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry os.DirEntry) {
			defer wg.Done()

			path := filepath.Join(dir, entry.Name())
			if c.filter.ShouldIgnore(path) {
				c.logger.Debug("Skipping ignored path", zap.String("path", path))
				return
			}

			info, err := os.Stat(path)
			if err != nil {
				c.logger.Warn("Failed to stat entry",
					zap.String("path", path),
					zap.Error(err))
				c.warn("stat", path, err)
				return
			}

			if info.IsDir() {
				sub := c.gatherFiles(path)
				if len(sub.nodes) == 0 {
					// Empty after filtering: prune the directory entirely.
					return
				}
				slots[i] = slot{
					node: &FileNode{
						Name:        entry.Name(),
						Path:        path,
						IsDirectory: true,
						Children:    sub.nodes,
					},
					size: sub.totalSize,
				}
				return
			}

			if !c.filter.IsRelevantFile(path) {
				return
			}
			slots[i] = slot{
				node: &FileNode{
					Name: entry.Name(),
					Path: path,
					Size: info.Size(),
				},
				size: info.Size(),
			}
		}(i, entry)
	}
	wg.Wait()

	var result crawlResult
	for _, s := range slots {
		if s.node == nil {
			continue
		}
		result.nodes = append(result.nodes, s.node)
		result.totalSize += s.size
	}
	return result
}
