package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// sniffLength defines the maximum number of bytes inspected when detecting binary content.
const sniffLength = 2048

const extensionSeparator = "."

var recognizedTextExtensions = map[string]struct{}{
	".txt":        {},
	".md":         {},
	".yml":        {},
	".yaml":       {},
	".properties": {},
	".json":       {},
	".xml":        {},
	".html":       {},
	".htm":        {},
	".css":        {},
	".js":         {},
	".ts":         {},
	".java":       {},
	".kt":         {},
	".go":         {},
	".py":         {},
	".sh":         {},
	".conf":       {},
	".ini":        {},
	".sql":        {},
}

// FileExtension returns the lower-cased extension of the final path element.
// Leading dots of the name are not treated as an extension separator, so
// ".env" has no extension while ".env.yml" has ".yml".
func FileExtension(path string) string {
	baseName := strings.TrimLeft(filepath.Base(path), extensionSeparator)
	separatorIndex := strings.LastIndex(baseName, extensionSeparator)
	if separatorIndex < 0 {
		return EmptyString
	}
	return strings.ToLower(baseName[separatorIndex:])
}

// HasRecognizedTextExtension reports whether the path carries a known text extension.
func HasRecognizedTextExtension(path string) bool {
	_, recognized := recognizedTextExtensions[FileExtension(path)]
	return recognized
}

// ContainsNulByte reports whether the provided byte slice contains a NUL byte.
func ContainsNulByte(data []byte) bool {
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}

// IsFileLikelyText reports whether the file at path should be treated as text.
// Recognized extensions are accepted without reading; other files are accepted
// when their first sniffLength bytes contain no NUL byte. Unreadable files are
// not text.
func IsFileLikelyText(path string) bool {
	if HasRecognizedTextExtension(path) {
		return true
	}

	// #nosec G304
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return false
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := io.ReadFull(fileHandle, buffer)
	if readError != nil && readError != io.EOF && readError != io.ErrUnexpectedEOF {
		return false
	}
	return !ContainsNulByte(buffer[:bytesRead])
}
