package ai

import (
	"strings"

	"cvoptimizer/internal/config"
)

// Placeholders recognised in user prompt templates
const (
	PlaceholderAllowed = "{allowed}"
	PlaceholderJob     = "{job}"
	PlaceholderCV      = "{cv}"
)

// DefaultSystemPrompt is sent as the system message
const DefaultSystemPrompt = "Du är en professionell CV-optimerare som skriver ATS-vänliga CV:n."

// directives are sent in this order, each followed by a single space
var directives = []string{
	"Optimera detta CV för jobbannonsen nedan och gör det välskrivet, professionellt och ATS-vänligt.",
	"Behåll exakt samma sektioner, rubriker och ordning som i CV:t.",
	"Skriv ENDAST om formuleringar för bättre flyt, stavning och tydlighet.",
	"Skapa INTE nya namn, företag, datum, titlar eller erfarenheter.",
	"Lägg INTE till nya tekniker som saknas i CV:t.",
	"Skriv INTE placeholders som [Inget ...].",
	"Behåll språk per sektion (översätt inte mellan svenska/engelska).",
	"Använd keywords från jobbannonsen endast om de redan finns i CV:t.",
	"Tillåtna keywords från CV:t: " + PlaceholderAllowed + ".",
	"Skapa TVÅ versioner av CV:t: först svenska, sedan engelska.",
	"Format: börja med raden '=== SVENSKA CV ===' och därefter '=== ENGLISH CV ==='.",
	"Returnera ENDAST text utan markdown.",
	"Rubriker ska avslutas med ':' och bullets ska börja med '- '.",
}

// inputsBlock carries the posting and the CV after the directives
const inputsBlock = "\n\nJOBBANNONS:\n" + PlaceholderJob + "\n\nCV:\n" + PlaceholderCV + "\n"

// DefaultUserTemplate is the built-in user prompt template
var DefaultUserTemplate = buildDefaultUserTemplate()

func buildDefaultUserTemplate() string {
	var b strings.Builder
	for _, directive := range directives {
		b.WriteString(directive)
		b.WriteByte(' ')
	}
	// the last directive runs straight into the inputs block
	return strings.TrimSuffix(b.String(), " ") + inputsBlock
}

// Prompts is the active system prompt and user template
type Prompts struct {
	System string
	User   string
}

// DefaultPrompts returns the built-in prompts
func DefaultPrompts() Prompts {
	return Prompts{System: DefaultSystemPrompt, User: DefaultUserTemplate}
}

// PromptsFrom overlays loaded prompt files on the built-in prompts. A user
// template without {job} and {cv} gets the standard inputs block appended.
func PromptsFrom(loaded config.LoadedPrompts) Prompts {
	prompts := DefaultPrompts()
	if loaded.System != "" {
		prompts.System = loaded.System
	}
	if loaded.User != "" {
		prompts.User = loaded.User
		if !strings.Contains(loaded.User, PlaceholderJob) && !strings.Contains(loaded.User, PlaceholderCV) {
			prompts.User += inputsBlock
		}
	}
	return prompts
}

// BuildUserPrompt fills the template. Substituted values are not rescanned,
// so a CV that happens to contain "{job}" is left alone.
func BuildUserPrompt(template string, allowed []string, jobText, cvText string) string {
	return strings.NewReplacer(
		PlaceholderAllowed, strings.Join(allowed, ", "),
		PlaceholderJob, jobText,
		PlaceholderCV, cvText,
	).Replace(template)
}
