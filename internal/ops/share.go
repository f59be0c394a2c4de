package ops

import (
	"log"
	"strings"

	"github.com/medusa-ai/forge/internal/errors"
	"github.com/medusa-ai/forge/internal/prompt"
	"github.com/medusa-ai/forge/internal/share"
)

// ShareInput contains parameters for the ShareLink operation.
type ShareInput struct {
	Idea     string
	Prompt   string
	Tool     string
	Style    string
	Category string
}

// ShareOutput contains the result of the ShareLink operation.
type ShareOutput struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// ShareLink encodes the current result into a link under base.
// Only a completed generation can be shared.
func ShareLink(base string, input ShareInput) (*ShareOutput, error) {
	if strings.TrimSpace(input.Idea) == "" || strings.TrimSpace(input.Prompt) == "" {
		return nil, errors.NewInvalidRequest("nothing to share: idea and prompt are required")
	}
	tool, err := prompt.ParseTool(input.Tool)
	if err != nil {
		return nil, err
	}
	opts, err := prompt.ParseOptions(tool, input.Style, input.Category)
	if err != nil {
		return nil, err
	}

	state := share.State{
		Idea:     input.Idea,
		Prompt:   input.Prompt,
		Tool:     tool,
		Style:    opts.Style,
		Category: opts.Category,
	}
	token, err := share.Encode(state)
	if err != nil {
		return nil, err
	}
	link, err := share.Link(base, state)
	if err != nil {
		return nil, err
	}
	return &ShareOutput{URL: link, Token: token}, nil
}

// OpenShared decodes a share token. A malformed token is logged and reported
// with ok=false so the caller can fall back to an empty generator.
func OpenShared(token string) (share.State, bool) {
	state, err := share.Decode(token)
	if err != nil {
		log.Printf("share: ignoring malformed link: %v", err)
		return share.State{}, false
	}
	return state, true
}
