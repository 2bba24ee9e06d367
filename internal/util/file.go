package util

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// CreateFile creates path, making its parent directories first.
func CreateFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	return os.Create(path)
}

// WriteLines replaces path with one line per entry.
func WriteLines(path string, lines []string) error {
	f, err := CreateFile(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, l := range lines {
		if _, err := w.WriteString(l + "\n"); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
