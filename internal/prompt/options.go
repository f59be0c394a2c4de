package prompt

import (
	"strings"

	"github.com/medusa-ai/forge/internal/errors"
)

// Tool is the downstream generation target a prompt is written for.
type Tool string

const (
	ToolImage   Tool = "Image"
	ToolVideo   Tool = "Video"
	ToolWebsite Tool = "Website"
)

// Style narrows the aesthetic of Image and Video prompts.
type Style string

const (
	StyleNone           Style = "none"
	StyleAnime          Style = "anime"
	StyleRealistic      Style = "realistic"
	StyleHyperrealistic Style = "hyperrealistic"
	StyleCartoon        Style = "cartoon"
	StyleThreeD         Style = "3d"
	StyleTwoD           Style = "2d"
	StyleArt            Style = "art"
)

// Category narrows the domain of Website prompts.
type Category string

const (
	CategoryNone      Category = "none"
	CategoryAI        Category = "ai"
	CategoryProduct   Category = "product"
	CategoryTools     Category = "tools"
	CategoryPortfolio Category = "portfolio"
	CategoryEcommerce Category = "ecommerce"
)

// Choice is a selectable option with its display label.
type Choice[T ~string] struct {
	ID    T      `json:"id"`
	Label string `json:"label"`
}

var tools = []Choice[Tool]{
	{ToolImage, "Image Prompt"},
	{ToolVideo, "Video Prompt"},
	{ToolWebsite, "Website Prompt"},
}

var styles = []Choice[Style]{
	{StyleNone, "Default"},
	{StyleAnime, "Anime"},
	{StyleRealistic, "Realistic"},
	{StyleHyperrealistic, "Hyper-realistic"},
	{StyleCartoon, "Cartoon"},
	{StyleThreeD, "3D"},
	{StyleTwoD, "2D"},
	{StyleArt, "Art"},
}

var categories = []Choice[Category]{
	{CategoryNone, "None"},
	{CategoryAI, "AI"},
	{CategoryProduct, "Product"},
	{CategoryTools, "Tools"},
	{CategoryPortfolio, "Portfolio"},
	{CategoryEcommerce, "E-commerce"},
}

// Tools returns the selectable tools in display order.
func Tools() []Choice[Tool] { return append([]Choice[Tool](nil), tools...) }

// Styles returns the selectable styles in display order.
func Styles() []Choice[Style] { return append([]Choice[Style](nil), styles...) }

// Categories returns the selectable website categories in display order.
func Categories() []Choice[Category] { return append([]Choice[Category](nil), categories...) }

// ParseTool parses a tool name case-insensitively.
func ParseTool(s string) (Tool, error) {
	for _, c := range tools {
		if strings.EqualFold(strings.TrimSpace(s), string(c.ID)) {
			return c.ID, nil
		}
	}
	return "", errors.NewInvalidRequest("tool must be one of: Image, Video, Website")
}

// ParseStyle parses a style id. Empty input means StyleNone.
func ParseStyle(s string) (Style, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StyleNone, nil
	}
	for _, c := range styles {
		if s == string(c.ID) {
			return c.ID, nil
		}
	}
	return "", errors.NewInvalidRequest("style must be one of: none, anime, realistic, hyperrealistic, cartoon, 3d, 2d, art")
}

// ParseCategory parses a website category id. Empty input means CategoryNone.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryNone, nil
	}
	for _, c := range categories {
		if s == string(c.ID) {
			return c.ID, nil
		}
	}
	return "", errors.NewInvalidRequest("category must be one of: none, ai, product, tools, portfolio, ecommerce")
}

// UsesStyle reports whether the tool takes a Style option.
func (t Tool) UsesStyle() bool {
	switch t {
	case ToolImage, ToolVideo:
		return true
	case ToolWebsite:
		return false
	}
	return false
}

// UsesCategory reports whether the tool takes a Category option.
func (t Tool) UsesCategory() bool {
	switch t {
	case ToolWebsite:
		return true
	case ToolImage, ToolVideo:
		return false
	}
	return false
}

// Label returns the display label of a style.
func (s Style) Label() string {
	for _, c := range styles {
		if c.ID == s {
			return c.Label
		}
	}
	return string(s)
}

// Label returns the display label of a category.
func (c Category) Label() string {
	for _, ch := range categories {
		if ch.ID == c {
			return ch.Label
		}
	}
	return string(c)
}

// Options holds the tool-specific modifiers.
// Only the one relevant to the active tool has any effect.
type Options struct {
	Style    Style
	Category Category
}

// Normalize returns opts with the option that does not apply to tool reset to none.
// Empty values are treated as none.
func (o Options) Normalize(tool Tool) Options {
	out := Options{Style: StyleNone, Category: CategoryNone}
	if tool.UsesStyle() && o.Style != "" {
		out.Style = o.Style
	}
	if tool.UsesCategory() && o.Category != "" {
		out.Category = o.Category
	}
	return out
}

// ParseOptions parses raw style and category strings and normalizes them for tool.
func ParseOptions(tool Tool, style, category string) (Options, error) {
	st, err := ParseStyle(style)
	if err != nil {
		return Options{}, err
	}
	cat, err := ParseCategory(category)
	if err != nil {
		return Options{}, err
	}
	return Options{Style: st, Category: cat}.Normalize(tool), nil
}
