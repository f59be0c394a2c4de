// Package ops implements the user-facing workflows shared by the web UI,
// the CLI and the MCP server.
package ops

import (
	"sync/atomic"

	"github.com/medusa-ai/forge/internal/genai"
	"github.com/medusa-ai/forge/internal/history"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = history.Capacity
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Deps are the collaborators a workflow needs.
// Session is optional; without it every result is treated as current.
type Deps struct {
	Generator genai.Generator
	History   *history.Store
	Session   *Session
}

// Session orders generation requests so only the most recently started one
// may apply its result.
type Session struct {
	seq atomic.Uint64
}

// Begin starts a request and returns its sequence number.
func (s *Session) Begin() uint64 {
	return s.seq.Add(1)
}

// IsCurrent reports whether seq is the most recently started request.
func (s *Session) IsCurrent(seq uint64) bool {
	return s.seq.Load() == seq
}

// Current returns the latest sequence number.
func (s *Session) Current() uint64 {
	return s.seq.Load()
}
