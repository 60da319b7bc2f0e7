// File: pkg/analyzer/truncate.go
package analyzer

import (
	"strings"

	"go.uber.org/zap"
)

// truncateContext caps the context to the configured token budget using a
// whitespace split as a cheap, tokenizer-independent approximation. When
// the budget is exceeded only the first MaxTokens whitespace-delimited
// tokens are kept, re-joined with single spaces; the original formatting
// inside the kept prefix is not preserved. Truncation is a logged
// degradation, not an error.
func (a *Analyzer) truncateContext(context string) string {
	tokens := strings.Fields(context)
	if len(tokens) <= a.cfg.MaxTokens {
		return context
	}

	a.logger.Warn("Context exceeds token budget, truncating",
		zap.Int("approxTokens", len(tokens)),
		zap.Int("maxTokens", a.cfg.MaxTokens))
	return strings.Join(tokens[:a.cfg.MaxTokens], " ")
}
