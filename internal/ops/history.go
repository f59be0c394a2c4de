package ops

import (
	"context"

	"github.com/medusa-ai/forge/internal/errors"
	"github.com/medusa-ai/forge/internal/history"
	"github.com/medusa-ai/forge/internal/share"
)

// ListHistoryInput contains parameters for the ListHistory operation.
type ListHistoryInput struct {
	Limit  int // default: 20, max: 50
	Offset int // default: 0
}

// ListHistoryOutput contains the result of the ListHistory operation.
type ListHistoryOutput struct {
	Items      []history.Entry `json:"items"`
	Pagination Pagination      `json:"pagination"`
	Sort       string          `json:"sort"`
}

// ListHistory returns a page of history entries, newest first.
func ListHistory(store *history.Store, input ListHistoryInput) *ListHistoryOutput {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := max(input.Offset, 0)

	all := store.List()
	total := len(all)

	items := []history.Entry{}
	if offset < total {
		end := min(offset+limit, total)
		items = all[offset:end]
	}

	return &ListHistoryOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort: "timestamp_desc",
	}
}

// ClearHistoryOutput contains the result of the ClearHistory operation.
type ClearHistoryOutput struct {
	Cleared int `json:"cleared"`
}

// ClearHistory removes every entry. Confirmation is the caller's job.
func ClearHistory(ctx context.Context, store *history.Store) (*ClearHistoryOutput, error) {
	n := store.Len()
	if err := store.Clear(ctx); err != nil {
		return nil, errors.NewInternal(err)
	}
	return &ClearHistoryOutput{Cleared: n}, nil
}

// UseEntry returns the generator state for a history entry, for seeding the
// generator from "View & Use".
func UseEntry(store *history.Store, id string) (*share.State, error) {
	e, ok := store.Get(id)
	if !ok {
		return nil, errors.NewNotFound(id)
	}
	opts := e.Options()
	return &share.State{
		Idea:     e.Idea,
		Prompt:   e.Prompt,
		Tool:     e.Tool,
		Style:    opts.Style,
		Category: opts.Category,
	}, nil
}
