// File: pkg/analyzer/analyzer.go
package analyzer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Fatal error classes. Soft, per-item failures never surface here; they
// are logged and collected as Result.Warnings instead.
var (
	// ErrNoRelevantFiles means the traversal found nothing to assemble.
	ErrNoRelevantFiles = errors.New("no relevant files found")
	// ErrMemoryLimit means heap usage crossed the configured ceiling
	// during assembly.
	ErrMemoryLimit = errors.New("memory limit exceeded")
)

// Analyzer walks a directory tree, assembles the relevant file contents
// into a bounded context and reports structural metadata about the tree.
type Analyzer struct {
	cfg     Config
	filter  *PathFilter
	counter TokenCounter
	probe   memoryProbe
	logger  *zap.Logger
}

// New validates the configuration and builds an Analyzer. The directory
// must be non-empty and is resolved to an absolute path immediately;
// ignore patterns are compiled here so a bad regex fails fast.
func New(cfg Config, counter TokenCounter, logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if counter == nil {
		return nil, errors.New("token counter is required")
	}

	cfg.Directory = strings.TrimSpace(cfg.Directory)
	if cfg.Directory == "" {
		return nil, errors.New("directory must not be empty")
	}
	absDir, err := filepath.Abs(cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", cfg.Directory, err)
	}
	cfg.Directory = absDir

	filter, err := newPathFilter(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		cfg:     cfg,
		filter:  filter,
		counter: counter,
		probe:   heapAllocBytes,
		logger:  logger,
	}, nil
}

// run holds the mutable state of a single Analyze call. Keeping it
// per-call makes Analyze re-entrant; concurrent calls on one Analyzer do
// not share counters. The mutex covers warning appends from the
// concurrent crawl.
type run struct {
	mu             sync.Mutex
	warnings       []Warning
	totalFiles     int
	processedFiles int
}

func (r *run) addWarning(op, path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, Warning{Op: op, Path: path, Err: err})
}

// Analyze runs the full pipeline: gather the tree, assemble the context
// under the memory guard, truncate to the token budget, count tokens and
// render the tree view. Any stage failure aborts the whole call; no
// partial result is ever returned.
func (a *Analyzer) Analyze() (*Result, error) {
	start := time.Now()
	a.logger.Info("Starting analysis", zap.String("directory", a.cfg.Directory))

	r := &run{}

	crawler := &treeCrawler{filter: a.filter, logger: a.logger, warn: r.addWarning}
	crawl := crawler.gatherFiles(a.cfg.Directory)

	asm := &assembler{
		root:       a.cfg.Directory,
		skipBinary: a.cfg.SkipBinary,
		guard:      &memoryGuard{limitMB: a.cfg.MemoryLimitMB, probe: a.probe, logger: a.logger},
		logger:     a.logger,
	}
	context, err := asm.gatherContext(crawl.nodes, r)
	if err != nil {
		a.logger.Error("Analysis failed", zap.Error(err))
		return nil, err
	}

	context = a.truncateContext(context)
	tokenCount := a.counter.CountTokens(context)
	treeView := BuildTreeView(crawl.nodes, "")

	a.logger.Info("Analysis complete",
		zap.Int("totalFiles", r.totalFiles),
		zap.Int("processedFiles", r.processedFiles),
		zap.Int64("totalSizeBytes", crawl.totalSize),
		zap.Int("tokenCount", tokenCount),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{
		Context:    context,
		TokenCount: tokenCount,
		TreeView:   treeView,
		Files: FileStats{
			TotalSize:      crawl.totalSize,
			TotalCount:     r.totalFiles,
			ProcessedCount: r.processedFiles,
		},
		Warnings: r.warnings,
	}, nil
}
