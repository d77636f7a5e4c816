package llm

import (
	_ "embed"
	"fmt"
)

var (
	//go:embed prompts/enrich.txt
	enrichPrompt string
	//go:embed prompts/rewrite.txt
	rewritePrompt string
)

// EnrichPrompt renders the strict four-key JSON extraction prompt for the
// given raw vacancy text.
func EnrichPrompt(rawDescription string) string {
	return fmt.Sprintf(enrichPrompt, rawDescription)
}

// RewritePrompt renders the dual-variant resume rewrite prompt.
func RewritePrompt(resumeText, title, company, description, requirements, responsibilities string) string {
	return fmt.Sprintf(rewritePrompt, resumeText, title, company, description, requirements, responsibilities)
}
