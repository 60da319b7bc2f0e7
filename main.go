package main

import (
	"log"
	"os"
	"strings"

	"github.com/husniadil/codebase-analyzer/cmd"
	"github.com/husniadil/codebase-analyzer/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	v := version.Get()
	logger, err := zap.NewProduction(zap.Fields(
		zap.String("appName", "codebase-analyzer"),
		zap.String("appVersion", v.Version),
	))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := cmd.Execute(logger); err != nil {
		logger.Fatal("codebase-analyzer execution failed", zap.Error(err))
	}

	// Syncing a logger pointed at a terminal or pipe can fail with
	// "invalid argument" on some platforms; only sync real sinks.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
