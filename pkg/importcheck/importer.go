// Package importcheck runs a batch of module imports and records a result per module.
package importcheck

import (
	"context"
	"time"
)

// Module describes a successfully imported module.
type Module struct {
	Name     string
	Version  string        // reported version, "" when the module exposes none
	Duration time.Duration // wall time of the import
}

// Importer resolves and loads a module by name.
// A nil error means the module imported cleanly.
type Importer interface {
	Import(ctx context.Context, name string) (Module, error)
}

// ImporterFunc adapts a function to the Importer interface.
type ImporterFunc func(ctx context.Context, name string) (Module, error)

// Import calls f.
func (f ImporterFunc) Import(ctx context.Context, name string) (Module, error) {
	return f(ctx, name)
}
