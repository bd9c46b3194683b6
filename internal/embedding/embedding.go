package embedding

import (
	"context"
	"errors"
)

// Embedder produces a fixed-length vector for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimension() int
}

// ErrNotConfigured is returned by the placeholder embedder.
var ErrNotConfigured = errors.New("embedding model not configured")

// Placeholder stands in when no API key is configured; every call fails.
type Placeholder struct{}

// Embed returns ErrNotConfigured.
func (Placeholder) Embed(ctx context.Context, text string) ([]float64, error) {
	_ = ctx
	_ = text
	return nil, ErrNotConfigured
}

// Dimension returns zero for the placeholder.
func (Placeholder) Dimension() int { return 0 }
