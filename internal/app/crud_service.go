package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/crudgen/internal/core/rules"
	"github.com/example/crudgen/internal/ports/primary"
	"github.com/example/crudgen/internal/ports/secondary"
	"github.com/example/crudgen/internal/scaffold"
)

// CrudServiceImpl implements the CrudService interface.
type CrudServiceImpl struct {
	schema    secondary.SchemaProvider
	generator *scaffold.Generator
	executor  ArtifactExecutor
	logger    *zap.Logger
}

// NewCrudService creates a new CrudService with injected dependencies.
func NewCrudService(
	schema secondary.SchemaProvider,
	generator *scaffold.Generator,
	executor ArtifactExecutor,
	logger *zap.Logger,
) *CrudServiceImpl {
	return &CrudServiceImpl{
		schema:    schema,
		generator: generator,
		executor:  executor,
		logger:    logger,
	}
}

// ScaffoldCrud introspects the model, renders every CRUD artifact and writes
// them. Nothing is written when introspection fails.
func (s *CrudServiceImpl) ScaffoldCrud(ctx context.Context, req primary.CrudRequest) (*primary.ScaffoldResponse, error) {
	// 1. Validate name
	if err := scaffold.ValidateModelName(req.Name); err != nil {
		return nil, err
	}

	// 2. Introspect
	desc, fields, err := Introspect(ctx, s.schema, req.Name)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("introspected model",
		zap.String("model", req.Name),
		zap.String("table", desc.Table),
		zap.Int("fields", len(fields)))

	// 3. Derive rules and inputs (one deriver per run)
	spec, err := scaffold.BuildArtifactSpec(req.Name, desc.Table, fields, rules.NewDeriver())
	if err != nil {
		return nil, err
	}

	// 4. Render
	result, err := s.generator.GenerateCrud(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to render CRUD for %s: %w", req.Name, err)
	}

	resp := &primary.ScaffoldResponse{
		Target:    req.Name,
		DryRun:    req.DryRun,
		NextSteps: result.NextSteps,
	}

	// 5. Write (layout, resource, requests, controller, views, route)
	if req.DryRun {
		resp.Files, err = s.executor.Preview(ctx, result.Files)
		return resp, err
	}
	resp.Files, err = s.executor.Execute(ctx, result.Files)
	if err != nil {
		return resp, err
	}
	return resp, nil
}
