// Package share encodes a generation result into a URL-safe token and back.
//
// A token is the JSON state, standard base64 encoded, then query-escaped so
// it can travel as the single value of the "share" query parameter.
package share

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/medusa-ai/forge/internal/errors"
	"github.com/medusa-ai/forge/internal/prompt"
)

// Param is the query parameter carrying a share token.
const Param = "share"

// State is the snapshot carried by a share link.
type State struct {
	Idea     string          `json:"idea"`
	Prompt   string          `json:"prompt"`
	Tool     prompt.Tool     `json:"tool"`
	Style    prompt.Style    `json:"style"`
	Category prompt.Category `json:"category"`
}

// normalized fills absent modifiers with none.
func (s State) normalized() State {
	if s.Style == "" {
		s.Style = prompt.StyleNone
	}
	if s.Category == "" {
		s.Category = prompt.CategoryNone
	}
	return s
}

// Options returns the state's modifiers as composer options.
func (s State) Options() prompt.Options {
	return prompt.Options{Style: s.Style, Category: s.Category}
}

// Encode serializes state into a share token. Absent modifiers are written as none.
func Encode(state State) (string, error) {
	data, err := json.Marshal(state.normalized())
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return url.QueryEscape(base64.StdEncoding.EncodeToString(data)), nil
}

// Decode parses a share token. Any failure, at any stage, is a DECODE_ERROR.
// Missing style and category default to none.
func Decode(token string) (State, error) {
	unescaped, err := url.QueryUnescape(strings.TrimSpace(token))
	if err != nil {
		return State{}, errors.NewDecode("malformed escaping")
	}

	// A token that went through one extra round of form decoding has its
	// '+' turned into spaces; base64 never contains spaces.
	unescaped = strings.ReplaceAll(unescaped, " ", "+")

	data, err := base64.StdEncoding.DecodeString(unescaped)
	if err != nil {
		return State{}, errors.NewDecode("malformed base64")
	}

	var raw struct {
		Idea     string `json:"idea"`
		Prompt   string `json:"prompt"`
		Tool     string `json:"tool"`
		Style    string `json:"style"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, errors.NewDecode("malformed json")
	}

	if raw.Idea == "" || raw.Prompt == "" || raw.Tool == "" {
		return State{}, errors.NewDecode("idea, prompt and tool are required")
	}
	tool, err := prompt.ParseTool(raw.Tool)
	if err != nil {
		return State{}, errors.NewDecode("unknown tool")
	}
	style, err := prompt.ParseStyle(raw.Style)
	if err != nil {
		return State{}, errors.NewDecode("unknown style")
	}
	category, err := prompt.ParseCategory(raw.Category)
	if err != nil {
		return State{}, errors.NewDecode("unknown category")
	}

	return State{
		Idea:     raw.Idea,
		Prompt:   raw.Prompt,
		Tool:     tool,
		Style:    style,
		Category: category,
	}, nil
}

// Link builds a share URL from base (origin + path) and state.
// Any query or fragment already on base is dropped.
func Link(base string, state State) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.NewInvalidRequest("invalid base URL")
	}
	token, err := Encode(state)
	if err != nil {
		return "", err
	}
	u.RawQuery = Param + "=" + token
	u.Fragment = ""
	return u.String(), nil
}

// FromLink extracts the token from a share link. Input without a share
// parameter is returned unchanged, so bare tokens pass through.
func FromLink(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "?") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	if raw, ok := rawParam(u.RawQuery, Param); ok {
		return raw
	}
	return s
}

// rawParam returns the still-escaped value of key in a raw query string.
// Decode does its own unescaping.
func rawParam(rawQuery, key string) (string, bool) {
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}
