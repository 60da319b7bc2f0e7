// File: cmd/root.go
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/husniadil/codebase-analyzer/pkg/analyzer"
	"github.com/husniadil/codebase-analyzer/pkg/logging"
	"github.com/husniadil/codebase-analyzer/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultConfigFileName is auto-detected inside the analyzed directory
// when no --config flag is given.
const defaultConfigFileName = ".codebase-analyzer.yaml"

var (
	flagExtensions   []string
	flagMaxFileSize  int64
	flagMaxTokens    int
	flagIgnore       []string
	flagNoExtension  bool
	flagMemoryLimit  uint64
	flagSkipBinary   bool
	flagUseGitIgnore bool
	flagConfigFile   string
	flagOutput       string
	flagModel        string
	flagContextOnly  bool
	flagVerbose      bool
)

// RootCmd analyzes a directory and prints the tree view, statistics and
// assembled context.
var RootCmd = &cobra.Command{
	Use:   "codebase-analyzer [directory]",
	Short: "Assemble a codebase into a single LLM-ready context",
	Long: `codebase-analyzer walks a directory tree, selects relevant source files
by extension, size and ignore rules, concatenates their contents into a
single token-bounded text blob and reports structural metadata about the
tree.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

// Execute runs the root command with the given base logger.
func Execute(logger *zap.Logger) error {
	baseLogger = logger
	return RootCmd.Execute()
}

var baseLogger *zap.Logger

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := baseLogger
	if logger == nil {
		logger = zap.NewNop()
	}
	if flagVerbose {
		v := version.Get()
		devLogger, err := logging.Setup(true, "codebase-analyzer", v.Version)
		if err == nil {
			logger = devLogger
		}
	}

	cfg := analyzer.DefaultConfig()
	if len(args) > 0 {
		cfg.Directory = args[0]
	}

	if err := applyConfigFile(&cfg, logger); err != nil {
		return err
	}
	applyFlags(cmd, &cfg)

	counter, err := analyzer.NewTiktokenCounter(flagModel)
	if err != nil {
		logger.Error("Failed to initialize tokenizer", zap.Error(err))
		return fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	a, err := analyzer.New(cfg, counter, logger)
	if err != nil {
		return err
	}

	result, err := a.Analyze()
	if err != nil {
		return err
	}

	return writeResult(result, logger)
}

// applyConfigFile merges the YAML config file, if any, into cfg. An
// explicit --config path must exist; the auto-detected file is optional.
func applyConfigFile(cfg *analyzer.Config, logger *zap.Logger) error {
	path := flagConfigFile
	if path == "" {
		candidate := filepath.Join(cfg.Directory, defaultConfigFileName)
		if _, err := os.Stat(candidate); err != nil {
			return nil
		}
		path = candidate
	}

	fc, err := analyzer.LoadFileConfig(path)
	if err != nil {
		logger.Error("Failed to load config file", zap.String("file", path), zap.Error(err))
		return err
	}
	fc.Apply(cfg)
	logger.Debug("Applied config file", zap.String("file", path))
	return nil
}

// applyFlags overlays explicitly set command-line flags onto cfg, so flags
// win over both defaults and the config file.
func applyFlags(cmd *cobra.Command, cfg *analyzer.Config) {
	flags := cmd.Flags()
	if flags.Changed("extensions") {
		cfg.RelevantExtensions = flagExtensions
	}
	if flags.Changed("max-file-size") {
		cfg.MaxFileSize = flagMaxFileSize
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens = flagMaxTokens
	}
	if flags.Changed("ignore") {
		cfg.IgnorePatterns = flagIgnore
	}
	if flags.Changed("ignore-no-extension") {
		cfg.IgnoreNoExtension = flagNoExtension
	}
	if flags.Changed("memory-limit") {
		cfg.MemoryLimitMB = flagMemoryLimit
	}
	if flags.Changed("skip-binary") {
		cfg.SkipBinary = flagSkipBinary
	}
	if flags.Changed("use-gitignore") {
		cfg.UseGitIgnore = flagUseGitIgnore
	}
}

// writeResult prints the tree view and statistics, then the context to
// stdout or to the file named by --output.
func writeResult(result *analyzer.Result, logger *zap.Logger) error {
	if !flagContextOnly {
		fmt.Printf("Directory tree:\n%s\n", result.TreeView)
		fmt.Printf("Total files: %d\n", result.Files.TotalCount)
		fmt.Printf("Processed files: %d\n", result.Files.ProcessedCount)
		fmt.Printf("Total size: %s\n", analyzer.FormatSize(result.Files.TotalSize))
		fmt.Printf("Token count: %d\n", result.TokenCount)
		for _, w := range result.Warnings {
			fmt.Printf("Warning: %s %s: %v\n", w.Op, w.Path, w.Err)
		}
		fmt.Println()
	}

	if flagOutput == "" {
		fmt.Print(result.Context)
		return nil
	}

	outFile, err := os.Create(flagOutput)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", flagOutput), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			logger.Error("Failed to close output file", zap.String("file", flagOutput), zap.Error(err))
		}
	}()

	writer := bufio.NewWriter(outFile)
	if _, err := writer.WriteString(result.Context); err != nil {
		return fmt.Errorf("failed to write context: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Info("Wrote context", zap.String("file", flagOutput), zap.Int("tokenCount", result.TokenCount))
	return nil
}

func init() {
	flags := RootCmd.Flags()
	flags.StringSliceVarP(&flagExtensions, "extensions", "e", nil, "Relevant file extensions (suffix match)")
	flags.Int64Var(&flagMaxFileSize, "max-file-size", 100_000, "Maximum per-file size in bytes")
	flags.IntVar(&flagMaxTokens, "max-tokens", 100_000, "Maximum context token budget")
	flags.StringArrayVarP(&flagIgnore, "ignore", "i", nil, "Ignore patterns (regular expressions)")
	flags.BoolVar(&flagNoExtension, "ignore-no-extension", true, "Exclude files without an extension")
	flags.Uint64Var(&flagMemoryLimit, "memory-limit", 64, "Memory ceiling in MB during assembly")
	flags.BoolVar(&flagSkipBinary, "skip-binary", true, "Skip files that look binary")
	flags.BoolVar(&flagUseGitIgnore, "use-gitignore", false, "Also honor the directory's .gitignore")
	flags.StringVarP(&flagConfigFile, "config", "c", "", "Path to a YAML config file")
	flags.StringVarP(&flagOutput, "output", "o", "", "Write the context to a file instead of stdout")
	flags.StringVarP(&flagModel, "model", "m", analyzer.DefaultTokenizerModel, "Model whose encoding is used for token counting")
	flags.BoolVar(&flagContextOnly, "context-only", false, "Print only the context, no tree or statistics")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}
