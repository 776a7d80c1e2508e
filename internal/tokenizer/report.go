package tokenizer

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/temirov/projmap/internal/utils"
)

// ReportEstimate sizes one written report.
type ReportEstimate struct {
	Bytes int
	Lines int
	// Tokens is only meaningful when Counted is set.
	Tokens  int
	Counted bool
}

// EstimateReport measures a report as written to disk. Lines counts newline
// terminated lines plus an unterminated tail. Data holding NUL bytes or
// invalid UTF-8 is measured but not tokenized.
func EstimateReport(counter Counter, data []byte) (ReportEstimate, error) {
	if counter == nil {
		return ReportEstimate{}, errors.New("nil tokenizer counter")
	}
	estimate := ReportEstimate{Bytes: len(data), Lines: countLines(data)}
	if len(data) == 0 {
		estimate.Counted = true
		return estimate, nil
	}
	if utils.ContainsNulByte(data) || !utf8.Valid(data) {
		return estimate, nil
	}
	tokens, err := counter.CountString(string(data))
	if err != nil {
		return ReportEstimate{}, err
	}
	estimate.Tokens = tokens
	estimate.Counted = true
	return estimate, nil
}

func countLines(data []byte) int {
	lines := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		lines++
	}
	return lines
}
