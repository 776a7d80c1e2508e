package commands

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/temirov/projmap/internal/utils"
)

const (
	// MaxContentBytes is the largest file size whose content is inlined.
	MaxContentBytes = 200_000
	// MaxContentLines is the number of lines inlined before truncation.
	MaxContentLines = 2000

	contentIndent = "  "

	noticeCannotStat      = "  [content skipped: cannot stat file]"
	noticeTooLargeFormat  = "  [content skipped: file too large %d bytes]"
	noticeNotText         = "  [content skipped: not a text file]"
	noticeNotUTF8         = "  [content skipped: not UTF-8 text]"
	noticeTruncatedFormat = "  [content truncated after %d lines]"
)

var lineTerminators = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// RenderFileContent returns the content block of one file: the display path,
// then the indented lines or a skip notice, then a blank separator line.
// Problems reading the file degrade to a notice and never fail the caller.
func RenderFileContent(absolutePath string, displayPath string) []string {
	block, _ := renderContentBlock(absolutePath, displayPath)
	return block
}

// renderContentBlock builds the content block and also returns the notice
// that replaced or truncated the content, if any.
func renderContentBlock(absolutePath string, displayPath string) ([]string, string) {
	body, notice := inspectFileContent(absolutePath)
	block := make([]string, 0, len(body)+2)
	block = append(block, displayPath)
	block = append(block, body...)
	return append(block, utils.EmptyString), strings.TrimSpace(notice)
}

func inspectFileContent(absolutePath string) ([]string, string) {
	info, statError := os.Lstat(absolutePath)
	if statError != nil {
		return []string{noticeCannotStat}, noticeCannotStat
	}
	if info.Size() > MaxContentBytes {
		notice := fmt.Sprintf(noticeTooLargeFormat, info.Size())
		return []string{notice}, notice
	}
	if !utils.IsFileLikelyText(absolutePath) {
		return []string{noticeNotText}, noticeNotText
	}

	// #nosec G304
	fileBytes, readError := os.ReadFile(absolutePath)
	if readError != nil || !utf8.Valid(fileBytes) {
		return []string{noticeNotUTF8}, noticeNotUTF8
	}

	contentLines := SplitContentLines(string(fileBytes))
	limit := len(contentLines)
	if limit > MaxContentLines {
		limit = MaxContentLines
	}
	rendered := make([]string, 0, limit+1)
	for _, contentLine := range contentLines[:limit] {
		rendered = append(rendered, contentIndent+contentLine)
	}
	if len(contentLines) > MaxContentLines {
		notice := fmt.Sprintf(noticeTruncatedFormat, MaxContentLines)
		return append(rendered, notice), notice
	}
	return rendered, utils.EmptyString
}

// SplitContentLines splits text on CRLF, LF or lone CR. A trailing terminator
// yields a final empty line and empty text yields one empty line.
func SplitContentLines(text string) []string {
	return strings.Split(lineTerminators.Replace(text), "\n")
}
