package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteDialog writes cleaned sentences to path, one per line, creating
// parent directories as needed. An empty sentence list still produces the
// file, so downstream collaborators see every transcript they expect.
func WriteDialog(path string, sentences []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write dialog %s: %w", filepath.Base(path), err)
	}
	var b strings.Builder
	for _, s := range sentences {
		b.WriteString(s)
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write dialog %s: %w", filepath.Base(path), err)
	}
	return nil
}
