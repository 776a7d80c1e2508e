package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeProject materializes entries beneath root. Keys ending with "/" create
// directories; other keys create files holding the mapped content.
func writeProject(t *testing.T, root string, entries map[string]string) {
	t.Helper()
	for relativePath, content := range entries {
		fullPath := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(relativePath, "/")))
		if strings.HasSuffix(relativePath, "/") {
			if err := os.MkdirAll(fullPath, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", relativePath, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("mkdir parent of %s: %v", relativePath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", relativePath, err)
		}
	}
}
