// File: pkg/analyzer/assemble.go
package analyzer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var blockSeparator = strings.Repeat("=", 80)

// assembler walks the gathered tree and concatenates file contents into a
// single delimited text stream. Assembly is strictly sequential and
// depth-first so the memory guard observes cumulative usage after every
// node and can abort early.
type assembler struct {
	root       string
	skipBinary bool
	guard      *memoryGuard
	logger     *zap.Logger
}

// countTotalFiles sums the file (non-directory) nodes in the tree. It is
// independent of whether the later content reads succeed.
func countTotalFiles(nodes []*FileNode) int {
	total := 0
	for _, node := range nodes {
		if node.IsDirectory {
			total += countTotalFiles(node.Children)
		} else {
			total++
		}
	}
	return total
}

// gatherContext assembles the context for the tree. Finding no relevant,
// readable file at all is a fatal condition for the whole analysis.
func (a *assembler) gatherContext(nodes []*FileNode, r *run) (string, error) {
	r.totalFiles = countTotalFiles(nodes)

	var b strings.Builder
	if err := a.processFileTree(nodes, &b, r); err != nil {
		return "", err
	}

	if b.Len() == 0 {
		a.logger.Error("No relevant files found", zap.String("directory", a.root))
		return "", fmt.Errorf("%w in %s", ErrNoRelevantFiles, a.root)
	}
	return b.String(), nil
}

// processFileTree appends one formatted block per readable file: a header
// naming the root-relative path and size, the trimmed content, and a
// separator. Read failures are logged, recorded and skipped. The memory
// guard runs after every node.
func (a *assembler) processFileTree(nodes []*FileNode, b *strings.Builder, r *run) error {
	for _, node := range nodes {
		if node.IsDirectory {
			if err := a.processFileTree(node.Children, b, r); err != nil {
				return err
			}
		} else {
			a.appendFile(node, b, r)
		}

		if err := a.guard.check(); err != nil {
			return err
		}
	}
	return nil
}

func (a *assembler) appendFile(node *FileNode, b *strings.Builder, r *run) {
	data, err := os.ReadFile(node.Path)
	if err != nil {
		a.logger.Warn("Failed to read file",
			zap.String("path", node.Path),
			zap.Error(err))
		r.addWarning("read", node.Path, err)
		return
	}

	if a.skipBinary && looksBinary(data) {
		a.logger.Warn("Skipping binary file", zap.String("path", node.Path))
		r.addWarning("binary", node.Path, nil)
		return
	}

	rel, err := filepath.Rel(a.root, node.Path)
	if err != nil {
		rel = node.Path
	}
	rel = filepath.ToSlash(rel)

	fmt.Fprintf(b, "File: %s (%s)\n\n%s\n\n%s\n\n",
		rel, FormatSize(node.Size), strings.TrimSpace(string(data)), blockSeparator)
	r.processedFiles++
}

// looksBinary sniffs the first bytes of a file's content for null bytes or
// a high ratio of non-printable characters.
func looksBinary(data []byte) bool {
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	if len(sample) == 0 {
		return false
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, c := range sample {
		if (c < 32 || c > 126) && c != '\n' && c != '\r' && c != '\t' {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(sample)) > 0.3
}
