// Package genai sends composed prompts to a hosted text-generation backend.
package genai

import (
	"context"
)

// Provider is the interface every generation backend implements.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends one request and returns the raw response text.
	// An empty string with a nil error means the backend produced no text.
	Complete(ctx context.Context, req *Request) (string, error)
}

// Request is a single generation call.
type Request struct {
	Model             string
	SystemInstruction string
	UserContent       string
	Temperature       float64
	TopP              float64
}
