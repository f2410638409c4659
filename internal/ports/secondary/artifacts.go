package secondary

import (
	"context"

	"github.com/example/crudgen/internal/scaffold"
)

// WriteOutcome reports what a write did to the destination.
type WriteOutcome string

// Write outcomes.
const (
	OutcomeCreated     WriteOutcome = "created"
	OutcomeOverwritten WriteOutcome = "overwritten"
	OutcomeSkipped     WriteOutcome = "skipped"
	OutcomeAppended    WriteOutcome = "appended"
	OutcomeUnchanged   WriteOutcome = "unchanged"
)

// ArtifactWriter defines the secondary port for writing generated files into a project.
// Paths are relative to the project root.
type ArtifactWriter interface {
	// Write applies the file's policy to its destination.
	Write(ctx context.Context, file scaffold.GeneratedFile) (WriteOutcome, error)

	// Preview returns the outcome Write would have, without writing.
	Preview(ctx context.Context, file scaffold.GeneratedFile) (WriteOutcome, error)

	// Exists reports whether a file or directory exists.
	Exists(path string) (bool, error)

	// GlobExists reports whether any path matches a glob pattern.
	GlobExists(pattern string) (bool, error)
}
