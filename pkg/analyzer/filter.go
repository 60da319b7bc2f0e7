// File: pkg/analyzer/filter.go
package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// PathFilter decides whether a path is ignored or relevant. Ignore
// patterns are compiled once at construction; each entry is a regular
// expression, not a literal, so callers must escape metacharacters when
// they want literal matching.
type PathFilter struct {
	root              string
	extensions        []string
	maxFileSize       int64
	ignoreNoExtension bool
	patterns          []*regexp.Regexp
	gitIgnore         *ignore.GitIgnore
	logger            *zap.Logger
}

// newPathFilter compiles the configured ignore patterns and, when enabled,
// loads <root>/.gitignore. An invalid pattern is a construction error.
func newPathFilter(cfg Config, logger *zap.Logger) (*PathFilter, error) {
	f := &PathFilter{
		root:              cfg.Directory,
		extensions:        cfg.RelevantExtensions,
		maxFileSize:       cfg.MaxFileSize,
		ignoreNoExtension: cfg.IgnoreNoExtension,
		logger:            logger,
	}

	for _, pattern := range cfg.IgnorePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			logger.Error("Invalid ignore pattern",
				zap.String("pattern", pattern),
				zap.Error(err))
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		f.patterns = append(f.patterns, re)
	}

	if cfg.UseGitIgnore {
		gitIgnorePath := filepath.Join(cfg.Directory, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			gi, err := ignore.CompileIgnoreFile(gitIgnorePath)
			if err != nil {
				return nil, fmt.Errorf("failed to compile %s: %w", gitIgnorePath, err)
			}
			f.gitIgnore = gi
			logger.Debug("Loaded .gitignore", zap.String("file", gitIgnorePath))
		}
	}

	return f, nil
}

// ShouldIgnore reports whether the path is hidden or matches a configured
// ignore pattern. Patterns are tested against the root-relative path and
// against the base name alone.
func (f *PathFilter) ShouldIgnore(path string) bool {
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	if rel != "." && strings.HasPrefix(rel, ".") && !strings.HasPrefix(rel, "..") {
		return true
	}

	for _, re := range f.patterns {
		if re.MatchString(rel) || re.MatchString(base) {
			return true
		}
	}

	if f.gitIgnore != nil && f.gitIgnore.MatchesPath(rel) {
		return true
	}

	return false
}

// HasExtension reports whether the path's final component has an extension
// suffix: a dot followed by at least one character, not at position 0 of
// the base name. Names like ".gitignore" therefore have no extension.
func (f *PathFilter) HasExtension(path string) bool {
	base := filepath.Base(path)
	idx := strings.LastIndex(base, ".")
	return idx > 0 && idx < len(base)-1
}

// IsRelevantFile reports whether the path is a regular file that passes
// the extension, size and extensionless-exclusion checks. The extension
// check is a suffix match, so "component.module.ts" matches a configured
// ".ts". Stat failures are logged and treated as not relevant.
func (f *PathFilter) IsRelevantFile(path string) bool {
	if f.ignoreNoExtension && !f.HasExtension(path) {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		f.logger.Warn("Failed to stat file",
			zap.String("path", path),
			zap.Error(err))
		return false
	}
	if !info.Mode().IsRegular() {
		return false
	}
	if info.Size() > f.maxFileSize {
		return false
	}

	for _, ext := range f.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
