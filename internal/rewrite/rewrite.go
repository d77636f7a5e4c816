package rewrite

import (
	"context"
	"fmt"
	"strings"

	"cv-optimizer-backend/internal/llm"
	"cv-optimizer-backend/internal/scrape"
	"cv-optimizer-backend/internal/shared/telemetry"
)

const (
	spanishMarker = "Hoja de Vida Optimizada para"
	englishMarker = "Optimized Resume for"
)

// ResumePair holds the two rewritten resume variants. Both are full texts;
// in the normal and fallback paths each begins with its fixed header line.
type ResumePair struct {
	Spanish string
	English string
}

// SpanishHeader renders the fixed Spanish variant header for a vacancy.
func SpanishHeader(title, company string) string {
	return fmt.Sprintf("%s %s – %s – Versión en Español", spanishMarker, title, company)
}

// EnglishHeader renders the fixed English variant header for a vacancy.
func EnglishHeader(title, company string) string {
	return fmt.Sprintf("%s %s – %s – English Version", englishMarker, title, company)
}

// Rewriter produces the two tailored resume variants via the generative-text
// service, with a deterministic template fallback when the call fails.
type Rewriter struct {
	LLM llm.Client
}

// Rewrite builds the dual-variant prompt and splits the response at the
// English marker. A response missing either marker degrades to the raw text
// duplicated into both variants (soft failure, logged). A service error
// falls back to wrapping the unmodified resume with the two fixed headers.
// This method never returns an error: once vacancy data exists the pipeline
// always yields some two-variant output.
func (r *Rewriter) Rewrite(ctx context.Context, vacancy *scrape.VacancyRecord, resumeText string) ResumePair {
	prompt := llm.RewritePrompt(
		resumeText,
		vacancy.Title.String(),
		vacancy.Company.String(),
		vacancy.Description.String(),
		vacancy.Requirements.String(),
		strings.Join(vacancy.Keywords, " "),
	)

	if r == nil || r.LLM == nil {
		return Fallback(vacancy, resumeText)
	}

	response, err := r.LLM.Generate(ctx, prompt)
	if err != nil {
		telemetry.Warn("rewrite.service_failed", map[string]any{
			"error": err.Error(),
			"title": vacancy.Title.String(),
		})
		return Fallback(vacancy, resumeText)
	}

	return splitVariants(strings.TrimSpace(response))
}

// Fallback wraps the original unmodified resume text with the two fixed
// header lines.
func Fallback(vacancy *scrape.VacancyRecord, resumeText string) ResumePair {
	title := vacancy.Title.String()
	company := vacancy.Company.String()
	return ResumePair{
		Spanish: fmt.Sprintf("%s\n\n%s\n", SpanishHeader(title, company), resumeText),
		English: fmt.Sprintf("%s\n\n%s\n", EnglishHeader(title, company), resumeText),
	}
}

// splitVariants locates the literal English marker: everything before it is
// the Spanish variant, everything from it onward is the English variant.
// When either marker is absent the service drifted from the requested
// format; both outputs degrade to the raw response.
func splitVariants(response string) ResumePair {
	if !strings.Contains(response, spanishMarker) || !strings.Contains(response, englishMarker) {
		telemetry.Warn("rewrite.markers_missing", map[string]any{
			"response_prefix": prefixForLog(response),
		})
		return ResumePair{Spanish: response, English: response}
	}

	idx := strings.Index(response, englishMarker)
	return ResumePair{
		Spanish: strings.TrimSpace(response[:idx]),
		English: strings.TrimSpace(response[idx:]),
	}
}

func prefixForLog(s string) string {
	const limit = 120
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
