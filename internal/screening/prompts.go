package screening

import (
	_ "embed"
	"strings"
)

//go:embed prompts/extract.md
var extractPrompt string

//go:embed prompts/requirements.md
var requirementsPrompt string

//go:embed prompts/skills.md
var skillsPrompt string

//go:embed prompts/research.md
var researchPrompt string

//go:embed prompts/match.md
var matchPrompt string

//go:embed prompts/report.md
var reportPrompt string

//go:embed prompts/revise.md
var revisePrompt string

// renderPrompt substitutes {{KEY}} placeholders in a prompt template.
func renderPrompt(template string, vars map[string]string) string {
	prompt := template
	for key, value := range vars {
		prompt = strings.ReplaceAll(prompt, "{{"+key+"}}", value)
	}
	return prompt
}
