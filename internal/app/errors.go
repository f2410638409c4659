package app

import (
	"errors"

	"github.com/example/crudgen/internal/ports/secondary"
)

// Sentinel errors returned by the scaffold services. Callers test them
// with errors.Is; each is wrapped with the failing model, path or command.
var (
	ErrModelNotFound    = secondary.ErrModelNotFound
	ErrNoWritableFields = errors.New("model has no writable fields")
	ErrMigrationFailed  = errors.New("migration failed")
	ErrWriteFailed      = errors.New("write failed")
)
