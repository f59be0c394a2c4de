package genai

import (
	"context"
	"log"
	"strings"

	"github.com/medusa-ai/forge/internal/config"
	"github.com/medusa-ai/forge/internal/errors"
	"github.com/medusa-ai/forge/internal/prompt"
)

// FailureMessage is the user-facing text for any backend failure.
const FailureMessage = "Failed to generate prompt. Please check your API key and try again."

// Generator produces an enhanced prompt from a composed payload.
type Generator interface {
	Generate(ctx context.Context, payload prompt.Payload) (string, error)
}

// Client is the Generator backed by a Provider.
type Client struct {
	provider    Provider
	model       string
	temperature float64
	topP        float64
}

// NewClient wraps provider with the sampling parameters from cfg.
func NewClient(provider Provider, cfg *config.Config) *Client {
	return &Client{
		provider:    provider,
		model:       cfg.Model,
		temperature: cfg.SamplingTemperature(),
		topP:        cfg.SamplingTopP(),
	}
}

// Generate issues exactly one backend call and returns the trimmed text.
// Transport, auth and quota failures become BACKEND_FAILURE with the cause
// logged; a blank result is EMPTY_RESPONSE.
func (c *Client) Generate(ctx context.Context, payload prompt.Payload) (string, error) {
	text, err := c.provider.Complete(ctx, &Request{
		Model:             c.model,
		SystemInstruction: payload.SystemInstruction,
		UserContent:       payload.UserContent,
		Temperature:       c.temperature,
		TopP:              c.topP,
	})
	if err != nil {
		log.Printf("genai: %s call failed: %v", c.provider.Name(), err)
		fErr := errors.NewBackendFailure(FailureMessage)
		fErr.Details = map[string]any{"provider": c.provider.Name()}
		return "", fErr
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.NewEmptyResponse()
	}
	return text, nil
}
