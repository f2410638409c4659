// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/crudgen/internal/ports/secondary"
	"github.com/example/crudgen/internal/scaffold"
)

const (
	dirMode  = 0o755
	fileMode = 0o644

	// phpOpenTag seeds a route file that does not exist yet.
	phpOpenTag = "<?php\n"
)

// Writer implements secondary.ArtifactWriter rooted at a project directory.
type Writer struct {
	root string
}

var _ secondary.ArtifactWriter = (*Writer)(nil)

// NewWriter creates a Writer for the project at root.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Root returns the project root.
func (w *Writer) Root() string {
	return w.root
}

// Write applies file.Policy to the destination.
func (w *Writer) Write(ctx context.Context, file scaffold.GeneratedFile) (secondary.WriteOutcome, error) {
	path := w.abs(file.Path)

	switch file.Policy {
	case scaffold.SkipIfExists:
		exists, err := fileExists(path)
		if err != nil {
			return "", err
		}
		if exists {
			return secondary.OutcomeSkipped, nil
		}
		if err := writeFile(path, file.Content); err != nil {
			return "", err
		}
		return secondary.OutcomeCreated, nil

	case scaffold.Overwrite:
		exists, err := fileExists(path)
		if err != nil {
			return "", err
		}
		if err := writeFile(path, file.Content); err != nil {
			return "", err
		}
		if exists {
			return secondary.OutcomeOverwritten, nil
		}
		return secondary.OutcomeCreated, nil

	case scaffold.AppendIfAbsent:
		return w.appendIfAbsent(path, file)

	default:
		return "", fmt.Errorf("unknown write policy %q for %s", file.Policy, file.Path)
	}
}

// Preview reports the outcome Write would have without touching the file.
func (w *Writer) Preview(ctx context.Context, file scaffold.GeneratedFile) (secondary.WriteOutcome, error) {
	path := w.abs(file.Path)
	exists, err := fileExists(path)
	if err != nil {
		return "", err
	}

	switch file.Policy {
	case scaffold.SkipIfExists:
		if exists {
			return secondary.OutcomeSkipped, nil
		}
		return secondary.OutcomeCreated, nil
	case scaffold.Overwrite:
		if exists {
			return secondary.OutcomeOverwritten, nil
		}
		return secondary.OutcomeCreated, nil
	case scaffold.AppendIfAbsent:
		if !exists {
			return secondary.OutcomeAppended, nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file.Path, err)
		}
		if file.Marker != "" && strings.Contains(string(data), file.Marker) {
			return secondary.OutcomeUnchanged, nil
		}
		return secondary.OutcomeAppended, nil
	default:
		return "", fmt.Errorf("unknown write policy %q for %s", file.Policy, file.Path)
	}
}

func (w *Writer) appendIfAbsent(path string, file scaffold.GeneratedFile) (secondary.WriteOutcome, error) {
	if file.Marker == "" {
		return "", fmt.Errorf("append to %s requires a marker", file.Path)
	}

	current := phpOpenTag
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		current = string(data)
	case !os.IsNotExist(err):
		return "", fmt.Errorf("failed to read %s: %w", file.Path, err)
	}

	if strings.Contains(current, file.Marker) {
		return secondary.OutcomeUnchanged, nil
	}

	var b strings.Builder
	b.WriteString(current)
	if !strings.HasSuffix(current, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(file.Content)
	if !strings.HasSuffix(file.Content, "\n") {
		b.WriteString("\n")
	}

	if err := writeFile(path, b.String()); err != nil {
		return "", err
	}
	return secondary.OutcomeAppended, nil
}

// Exists reports whether path (relative to the root) exists.
func (w *Writer) Exists(path string) (bool, error) {
	_, err := os.Stat(w.abs(path))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GlobExists reports whether any path under the root matches pattern.
func (w *Writer) GlobExists(pattern string) (bool, error) {
	matches, err := filepath.Glob(w.abs(pattern))
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return len(matches) > 0, nil
}

func (w *Writer) abs(path string) string {
	return filepath.Join(w.root, filepath.FromSlash(path))
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), fileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
