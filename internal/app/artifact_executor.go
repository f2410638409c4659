// Package app contains the application layer: service implementations and
// the artifact executor.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/crudgen/internal/ports/primary"
	"github.com/example/crudgen/internal/ports/secondary"
	"github.com/example/crudgen/internal/scaffold"
)

// ArtifactExecutor writes rendered files. Rendering stays pure; this is the
// only place generated content reaches the project.
type ArtifactExecutor interface {
	// Execute writes files in order and stops at the first failure.
	// Reports for files written before the failure are still returned.
	Execute(ctx context.Context, files []scaffold.GeneratedFile) ([]primary.FileReport, error)

	// Preview reports what Execute would do without writing.
	Preview(ctx context.Context, files []scaffold.GeneratedFile) ([]primary.FileReport, error)
}

// DefaultArtifactExecutor implements ArtifactExecutor over an ArtifactWriter.
type DefaultArtifactExecutor struct {
	writer secondary.ArtifactWriter
	logger *zap.Logger
}

// NewArtifactExecutor creates a new DefaultArtifactExecutor.
func NewArtifactExecutor(writer secondary.ArtifactWriter, logger *zap.Logger) *DefaultArtifactExecutor {
	return &DefaultArtifactExecutor{writer: writer, logger: logger}
}

// Execute writes each file according to its policy.
func (e *DefaultArtifactExecutor) Execute(ctx context.Context, files []scaffold.GeneratedFile) ([]primary.FileReport, error) {
	reports := make([]primary.FileReport, 0, len(files))
	for _, f := range files {
		outcome, err := e.writer.Write(ctx, f)
		if err != nil {
			return reports, fmt.Errorf("%w: %s: %w", ErrWriteFailed, f.Path, err)
		}
		e.logger.Debug("wrote artifact",
			zap.String("path", f.Path),
			zap.String("kind", string(f.Kind)),
			zap.String("outcome", string(outcome)))
		reports = append(reports, primary.FileReport{
			Path:   f.Path,
			Kind:   string(f.Kind),
			Status: statusFor(outcome),
		})
	}
	return reports, nil
}

// Preview computes each file's outcome and carries its rendered content.
func (e *DefaultArtifactExecutor) Preview(ctx context.Context, files []scaffold.GeneratedFile) ([]primary.FileReport, error) {
	reports := make([]primary.FileReport, 0, len(files))
	for _, f := range files {
		outcome, err := e.writer.Preview(ctx, f)
		if err != nil {
			return reports, fmt.Errorf("failed to preview %s: %w", f.Path, err)
		}
		reports = append(reports, primary.FileReport{
			Path:    f.Path,
			Kind:    string(f.Kind),
			Status:  statusFor(outcome),
			Content: f.Content,
		})
	}
	return reports, nil
}

func statusFor(outcome secondary.WriteOutcome) primary.OpStatus {
	switch outcome {
	case secondary.OutcomeCreated:
		return primary.OpCreate
	case secondary.OutcomeOverwritten:
		return primary.OpOverwrite
	case secondary.OutcomeSkipped:
		return primary.OpSkip
	case secondary.OutcomeAppended:
		return primary.OpAppend
	case secondary.OutcomeUnchanged:
		return primary.OpExists
	}
	return primary.OpStatus(outcome)
}
