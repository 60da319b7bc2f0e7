// File: pkg/analyzer/config.go
package analyzer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the options for an analysis run.
type Config struct {
	Directory          string   // Root directory to analyze; resolved to an absolute path
	RelevantExtensions []string // Suffixes a file must end with to be included
	MaxFileSize        int64    // Maximum size (in bytes) of files to include; larger files are skipped
	MaxTokens          int      // Ceiling on the approximate whitespace-token count of the context
	IgnorePatterns     []string // Regular expressions tested against the root-relative path and the base name; a bare "dist" matches anywhere, not just as a path segment
	IgnoreNoExtension  bool     // If true, files without an extension are always excluded
	MemoryLimitMB      uint64   // Heap usage ceiling (in MB) enforced during assembly
	SkipBinary         bool     // If true, files sniffed as binary are skipped during assembly
	UseGitIgnore       bool     // If true, also honor <Directory>/.gitignore
}

// DefaultExtensions is the extension set used when none is configured.
var DefaultExtensions = []string{
	".go", ".ts", ".tsx", ".js", ".jsx", ".py", ".java", ".rb", ".rs",
	".c", ".h", ".cpp", ".cs", ".php", ".swift", ".kt", ".scala",
	".sql", ".sh", ".yaml", ".yml", ".json", ".toml", ".md", ".html", ".css",
}

// DefaultIgnorePatterns is the ignore set used when none is configured.
var DefaultIgnorePatterns = []string{
	"node_modules", "dist", "build", "coverage", "vendor",
	`\.git`, `package-lock\.json`, `yarn\.lock`,
}

// DefaultConfig returns a Config populated with the documented defaults.
func DefaultConfig() Config {
	return Config{
		Directory:          ".",
		RelevantExtensions: DefaultExtensions,
		MaxFileSize:        100_000,
		MaxTokens:          100_000,
		IgnorePatterns:     DefaultIgnorePatterns,
		IgnoreNoExtension:  true,
		MemoryLimitMB:      64,
		SkipBinary:         true,
		UseGitIgnore:       false,
	}
}

// FileConfig mirrors Config for the optional YAML config file. Pointer
// fields distinguish "absent" from zero so the file only overrides what
// it actually sets.
type FileConfig struct {
	Directory          *string  `yaml:"directory"`
	RelevantExtensions []string `yaml:"relevantExtensions"`
	MaxFileSize        *int64   `yaml:"maxFileSize"`
	MaxTokens          *int     `yaml:"maxTokens"`
	IgnorePatterns     []string `yaml:"ignorePatterns"`
	IgnoreNoExtension  *bool    `yaml:"ignoreNoExtension"`
	MemoryLimitMB      *uint64  `yaml:"memoryLimitMB"`
	SkipBinary         *bool    `yaml:"skipBinary"`
	UseGitIgnore       *bool    `yaml:"useGitIgnore"`
}

// LoadFileConfig reads and parses a YAML config file.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fc, nil
}

// Apply overlays the file's values onto cfg.
func (fc *FileConfig) Apply(cfg *Config) {
	if fc.Directory != nil {
		cfg.Directory = *fc.Directory
	}
	if fc.RelevantExtensions != nil {
		cfg.RelevantExtensions = fc.RelevantExtensions
	}
	if fc.MaxFileSize != nil {
		cfg.MaxFileSize = *fc.MaxFileSize
	}
	if fc.MaxTokens != nil {
		cfg.MaxTokens = *fc.MaxTokens
	}
	if fc.IgnorePatterns != nil {
		cfg.IgnorePatterns = fc.IgnorePatterns
	}
	if fc.IgnoreNoExtension != nil {
		cfg.IgnoreNoExtension = *fc.IgnoreNoExtension
	}
	if fc.MemoryLimitMB != nil {
		cfg.MemoryLimitMB = *fc.MemoryLimitMB
	}
	if fc.SkipBinary != nil {
		cfg.SkipBinary = *fc.SkipBinary
	}
	if fc.UseGitIgnore != nil {
		cfg.UseGitIgnore = *fc.UseGitIgnore
	}
}
