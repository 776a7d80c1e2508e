// Package tokenizer estimates how many model tokens a generated report occupies.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	// DefaultModel is used when no model is requested.
	DefaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// encodingSource resolves tiktoken encodings. Both lookups may download the
// encoding files on first use.
type encodingSource struct {
	forModel func(model string) (*tiktoken.Tiktoken, error)
	byName   func(encodingName string) (*tiktoken.Tiktoken, error)
}

var tiktokenSource = encodingSource{
	forModel: tiktoken.EncodingForModel,
	byName:   tiktoken.GetEncoding,
}

// NewCounter returns a tiktoken Counter for the requested model together with
// the name the estimate should be reported under. Models without a known
// encoding fall back to cl100k_base.
func NewCounter(cfg Config) (Counter, string, error) {
	return newCounter(cfg, tiktokenSource)
}

func newCounter(cfg Config, source encodingSource) (Counter, string, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	lowerModel := strings.ToLower(model)

	if isOpenAIModel(lowerModel) {
		encoding, err := source.forModel(lowerModel)
		if err == nil && encoding != nil {
			return encodingCounter{encoding: encoding, name: lowerModel}, model, nil
		}
	}

	fallback, fallbackErr := source.byName(defaultEncodingName)
	if fallbackErr != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackErr)
	}
	if fallback == nil {
		return nil, "", errors.New("initialize fallback tokenizer: no encoding returned")
	}
	return encodingCounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

func isOpenAIModel(model string) bool {
	prefixes := []string{
		"gpt-",
		"text-embedding",
		"davinci",
		"curie",
		"babbage",
		"ada",
		"code-",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

// encodingCounter counts the tokens of a tiktoken encoding. Special token
// markers inside reports are counted as plain text.
type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter encodingCounter) Name() string {
	return counter.name
}

func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("tokenizer encoding is not initialized")
	}
	return len(counter.encoding.EncodeOrdinary(input)), nil
}
