// File: pkg/analyzer/tokens.go
package analyzer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter computes the exact token count of a text. The analyzer
// consumes the count only; the encoding itself is an external concern.
type TokenCounter interface {
	CountTokens(text string) int
}

// DefaultTokenizerModel is the model whose encoding is used when the
// caller does not name one.
const DefaultTokenizerModel = "gpt-4o"

// TiktokenCounter counts tokens with the BPE encoding of an OpenAI model.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter resolves the encoding for the given model.
func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	if model == "" {
		model = DefaultTokenizerModel
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding for model %q: %w", model, err)
	}
	return &TiktokenCounter{enc: enc}, nil
}

func (c *TiktokenCounter) CountTokens(text string) int {
	return len(c.enc.EncodeOrdinary(text))
}
