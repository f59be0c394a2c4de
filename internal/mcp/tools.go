package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/medusa-ai/forge/internal/prompt"
)

func choiceIDs[T ~string](choices []prompt.Choice[T]) []string {
	ids := make([]string, len(choices))
	for i, c := range choices {
		ids[i] = string(c.ID)
	}
	return ids
}

var (
	toolIDs     = choiceIDs(prompt.Tools())
	styleIDs    = choiceIDs(prompt.Styles())
	categoryIDs = choiceIDs(prompt.Categories())
)

var enhanceToolDef = mcp.NewTool("prompt_enhance",
	mcp.WithDescription("Turn a short idea into a detailed prompt for an image, video, or website generator. "+
		"Each call is a fresh generation and is recorded in history."),
	mcp.WithString("idea",
		mcp.Required(),
		mcp.Description("The user's idea, in their own words"),
	),
	mcp.WithString("tool",
		mcp.Description("Generation target (default Image)"),
		mcp.Enum(toolIDs...),
	),
	mcp.WithString("style",
		mcp.Description("Art style for Image and Video; ignored for Website"),
		mcp.Enum(styleIDs...),
	),
	mcp.WithString("category",
		mcp.Description("Website category; ignored for Image and Video"),
		mcp.Enum(categoryIDs...),
	),
)

var templatesToolDef = mcp.NewTool("prompt_templates",
	mcp.WithDescription("List generation targets with their system instructions, plus the selectable styles and website categories."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var historyListToolDef = mcp.NewTool("history_list",
	mcp.WithDescription("List past generations, newest first."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum entries to return (default 20, max 50)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Entries to skip"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var historyClearToolDef = mcp.NewTool("history_clear",
	mcp.WithDescription("Permanently remove every history entry. Requires confirm=true."),
	mcp.WithBoolean("confirm",
		mcp.Required(),
		mcp.Description("Must be true"),
	),
	mcp.WithDestructiveHintAnnotation(true),
)

var shareEncodeToolDef = mcp.NewTool("share_encode",
	mcp.WithDescription("Build a share link that reopens the generator with this idea and prompt."),
	mcp.WithString("idea", mcp.Required(), mcp.Description("Original idea")),
	mcp.WithString("prompt", mcp.Required(), mcp.Description("Generated prompt")),
	mcp.WithString("tool", mcp.Required(), mcp.Enum(toolIDs...)),
	mcp.WithString("style", mcp.Enum(styleIDs...)),
	mcp.WithString("category", mcp.Enum(categoryIDs...)),
	mcp.WithString("base_url",
		mcp.Description("Origin and path the link points at (default: the configured public URL)"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var shareDecodeToolDef = mcp.NewTool("share_decode",
	mcp.WithDescription("Decode a share link or bare share token into idea, prompt, tool, style and category."),
	mcp.WithString("token",
		mcp.Required(),
		mcp.Description("Share link or the value of its share parameter"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)
