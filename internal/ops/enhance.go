package ops

import (
	"context"

	"github.com/medusa-ai/forge/internal/errors"
	"github.com/medusa-ai/forge/internal/history"
	"github.com/medusa-ai/forge/internal/prompt"
)

// EnhanceInput contains parameters for the Enhance operation.
type EnhanceInput struct {
	Idea    string
	Tool    prompt.Tool
	Options prompt.Options
}

// EnhanceOutput contains the result of the Enhance operation.
type EnhanceOutput struct {
	Prompt   string          `json:"prompt"`
	Entry    history.Entry   `json:"entry"`
	Template prompt.Template `json:"template"`
	Seq      uint64          `json:"seq,omitempty"`
}

// Enhance composes the request, calls the generator once, and records the
// result in history. Validation failures never reach the generator. A result
// overtaken by a newer request is discarded with STALE_REQUEST and not recorded.
func Enhance(ctx context.Context, deps Deps, input EnhanceInput) (*EnhanceOutput, error) {
	payload, err := prompt.Compose(input.Idea, input.Tool, input.Options)
	if err != nil {
		return nil, err
	}

	var seq uint64
	if deps.Session != nil {
		seq = deps.Session.Begin()
	}

	text, err := deps.Generator.Generate(ctx, payload)
	if deps.Session != nil && !deps.Session.IsCurrent(seq) {
		return nil, errors.NewStaleRequest(seq, deps.Session.Current())
	}
	if err != nil {
		return nil, err
	}

	entry := deps.History.Append(ctx, history.Record{
		Idea:    input.Idea,
		Prompt:  text,
		Tool:    input.Tool,
		Options: input.Options,
	})

	return &EnhanceOutput{
		Prompt:   text,
		Entry:    entry,
		Template: prompt.Lookup(input.Tool),
		Seq:      seq,
	}, nil
}

// Regenerate produces a fresh result for the same inputs. Results are never
// cached; each call is a new generation and a new history entry.
func Regenerate(ctx context.Context, deps Deps, input EnhanceInput) (*EnhanceOutput, error) {
	return Enhance(ctx, deps, input)
}
