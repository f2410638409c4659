package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/crudgen/internal/ports/primary"
	"github.com/example/crudgen/internal/ports/secondary"
	"github.com/example/crudgen/internal/scaffold"
)

// sanctumPath is where composer installs the token authentication package.
const sanctumPath = "vendor/laravel/sanctum"

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	generator *scaffold.Generator
	executor  ArtifactExecutor
	writer    secondary.ArtifactWriter
	artisan   secondary.Artisan
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(
	generator *scaffold.Generator,
	executor ArtifactExecutor,
	writer secondary.ArtifactWriter,
	artisan secondary.Artisan,
	logger *zap.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		generator: generator,
		executor:  executor,
		writer:    writer,
		artisan:   artisan,
		logger:    logger,
	}
}

// ScaffoldWebAuth writes requests, controllers, views, the stylesheet and
// the web route block.
func (s *AuthServiceImpl) ScaffoldWebAuth(ctx context.Context, req primary.AuthRequest) (*primary.ScaffoldResponse, error) {
	result, err := s.generator.GenerateWebAuth()
	if err != nil {
		return nil, fmt.Errorf("failed to render web auth: %w", err)
	}
	return s.write(ctx, "web-auth", req.DryRun, result)
}

// ScaffoldAPIAuth makes sure the token package is installed, then writes
// requests, controllers and the API route block.
func (s *AuthServiceImpl) ScaffoldAPIAuth(ctx context.Context, req primary.AuthRequest) (*primary.ScaffoldResponse, error) {
	result, err := s.generator.GenerateAPIAuth()
	if err != nil {
		return nil, fmt.Errorf("failed to render api auth: %w", err)
	}

	installed, err := s.writer.Exists(sanctumPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check for sanctum: %w", err)
	}

	var warnings []string
	switch {
	case installed:
	case req.DryRun:
		warnings = append(warnings, "laravel/sanctum is not installed; it would be installed with 'php artisan install:sanctum'")
	default:
		// Warn so the line shows at the default level while composer runs.
		s.logger.Warn("installing laravel/sanctum with 'php artisan install:sanctum'")
		if err := s.artisan.InstallSanctum(ctx); err != nil {
			return nil, fmt.Errorf("failed to install laravel/sanctum: %w", err)
		}
		warnings = append(warnings, "laravel/sanctum was installed with 'php artisan install:sanctum'")
	}

	resp, err := s.write(ctx, "api-auth", req.DryRun, result)
	if resp != nil {
		resp.Warnings = append(warnings, resp.Warnings...)
	}
	return resp, err
}

func (s *AuthServiceImpl) write(ctx context.Context, target string, dryRun bool, result *scaffold.GeneratorResult) (*primary.ScaffoldResponse, error) {
	resp := &primary.ScaffoldResponse{
		Target:    target,
		DryRun:    dryRun,
		NextSteps: result.NextSteps,
	}

	var err error
	if dryRun {
		resp.Files, err = s.executor.Preview(ctx, result.Files)
	} else {
		resp.Files, err = s.executor.Execute(ctx, result.Files)
	}
	return resp, err
}
