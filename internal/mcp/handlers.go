package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/medusa-ai/forge/internal/config"
	"github.com/medusa-ai/forge/internal/errors"
	"github.com/medusa-ai/forge/internal/ops"
	"github.com/medusa-ai/forge/internal/prompt"
	"github.com/medusa-ai/forge/internal/share"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	deps ops.Deps
	cfg  *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps ops.Deps, cfg *config.Config) *Handlers {
	return &Handlers{deps: deps, cfg: cfg}
}

// Request types for each tool

// EnhanceRequest represents the arguments for prompt_enhance.
type EnhanceRequest struct {
	Idea     string `json:"idea"`
	Tool     string `json:"tool,omitempty"`
	Style    string `json:"style,omitempty"`
	Category string `json:"category,omitempty"`
}

// HistoryListRequest represents the arguments for history_list.
type HistoryListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// HistoryClearRequest represents the arguments for history_clear.
type HistoryClearRequest struct {
	Confirm bool `json:"confirm"`
}

// ShareEncodeRequest represents the arguments for share_encode.
type ShareEncodeRequest struct {
	Idea     string `json:"idea"`
	Prompt   string `json:"prompt"`
	Tool     string `json:"tool"`
	Style    string `json:"style,omitempty"`
	Category string `json:"category,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// ShareDecodeRequest represents the arguments for share_decode.
type ShareDecodeRequest struct {
	Token string `json:"token"`
}

// Handler implementations

// HandleEnhance handles the prompt_enhance tool call.
func (h *Handlers) HandleEnhance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EnhanceRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.Tool == "" {
		input.Tool = string(prompt.ToolImage)
	}
	tool, err := prompt.ParseTool(input.Tool)
	if err != nil {
		return errorResult(err), nil
	}
	opts, err := prompt.ParseOptions(tool, input.Style, input.Category)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Enhance(ctx, h.deps, ops.EnhanceInput{
		Idea:    input.Idea,
		Tool:    tool,
		Options: opts,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTemplates handles the prompt_templates tool call.
func (h *Handlers) HandleTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.Templates())
}

// HandleHistoryList handles the history_list tool call.
func (h *Handlers) HandleHistoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return successResult(ops.ListHistory(h.deps.History, ops.ListHistoryInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	}))
}

// HandleHistoryClear handles the history_clear tool call.
func (h *Handlers) HandleHistoryClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryClearRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if !input.Confirm {
		return errorResult(errors.NewInvalidRequest("confirm must be true")), nil
	}

	result, err := ops.ClearHistory(ctx, h.deps.History)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleShareEncode handles the share_encode tool call.
func (h *Handlers) HandleShareEncode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ShareEncodeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	base := input.BaseURL
	if base == "" {
		base = h.cfg.ShareBaseURL()
	}

	result, err := ops.ShareLink(base, ops.ShareInput{
		Idea:     input.Idea,
		Prompt:   input.Prompt,
		Tool:     input.Tool,
		Style:    input.Style,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleShareDecode handles the share_decode tool call.
// Unlike the web UI, a malformed token is reported to the caller.
func (h *Handlers) HandleShareDecode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ShareDecodeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	state, err := share.Decode(share.FromLink(input.Token))
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(state)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if fErr := errors.As(err); fErr != nil {
		errorObj := map[string]any{
			"code":    fErr.Code,
			"message": fErr.Message,
			"status":  fErr.Status,
		}
		if fErr.Code != errors.ErrInternal && fErr.Details != nil {
			errorObj["details"] = fErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
