package prompt

import (
	"fmt"
	"strings"

	"github.com/medusa-ai/forge/internal/errors"
)

// Payload is the request sent to the generation backend.
type Payload struct {
	SystemInstruction string `json:"system_instruction"`
	UserContent       string `json:"user_content"`
}

// Compose builds the generation payload for idea.
// The idea is quoted verbatim; trimming is only used for the emptiness check.
func Compose(idea string, tool Tool, opts Options) (Payload, error) {
	if strings.TrimSpace(idea) == "" {
		return Payload{}, errors.NewInvalidRequest("idea required")
	}

	var b strings.Builder
	b.WriteString("User idea: \"" + idea + "\"")

	opts = opts.Normalize(tool)
	switch tool {
	case ToolImage, ToolVideo:
		if opts.Style != StyleNone {
			b.WriteString("\nStyle to apply: \"" + string(opts.Style) + "\"")
		}
	case ToolWebsite:
		if opts.Category != CategoryNone {
			b.WriteString("\nWebsite Category: \"" + string(opts.Category) + "\"")
		}
	default:
		return Payload{}, errors.NewInvalidRequest(fmt.Sprintf("unknown tool %q", string(tool)))
	}

	return Payload{
		SystemInstruction: Lookup(tool).SystemInstruction,
		UserContent:       b.String(),
	}, nil
}
