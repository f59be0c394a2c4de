package ops

import "github.com/medusa-ai/forge/internal/prompt"

// TemplatesOutput lists the generation targets and their modifiers.
type TemplatesOutput struct {
	Templates  []prompt.Template                `json:"templates"`
	Styles     []prompt.Choice[prompt.Style]    `json:"styles"`
	Categories []prompt.Choice[prompt.Category] `json:"categories"`
}

// Templates returns every template with the selectable styles and categories.
func Templates() *TemplatesOutput {
	return &TemplatesOutput{
		Templates:  prompt.Templates(),
		Styles:     prompt.Styles(),
		Categories: prompt.Categories(),
	}
}
