package enrich

import (
	"context"
	"encoding/json"
	"strings"

	"cv-optimizer-backend/internal/llm"
	"cv-optimizer-backend/internal/shared/telemetry"
)

// EnrichedVacancy is the fixed four-field structured summary of a raw job
// description. The JSON keys use the dataset's canonical triple-underscore
// naming so the record survives tabular round-tripping.
type EnrichedVacancy struct {
	Summary          string   `json:"Información___del___trabajo"`
	Responsibilities []string `json:"Responsabilidades"`
	Requirements     []string `json:"Requisitos"`
	Benefits         *string  `json:"Beneficios"`
}

// Fallback is the degraded shape used when the service call fails or returns
// unparsable content: the raw input passes through as the summary and the
// structured fields stay null.
func Fallback(rawDescription string) EnrichedVacancy {
	return EnrichedVacancy{Summary: rawDescription}
}

// Enricher turns unstructured vacancy text into an EnrichedVacancy via the
// generative-text service.
type Enricher struct {
	LLM llm.Client
}

// Enrich sends the raw description through the strict JSON prompt. Failures
// are recovered locally via Fallback; this method never returns an error.
func (e *Enricher) Enrich(ctx context.Context, rawDescription string) EnrichedVacancy {
	if e == nil || e.LLM == nil {
		return Fallback(rawDescription)
	}

	response, err := e.LLM.Generate(ctx, llm.EnrichPrompt(rawDescription))
	if err != nil {
		telemetry.Warn("enrich.service_failed", map[string]any{"error": err.Error()})
		return Fallback(rawDescription)
	}

	var enriched EnrichedVacancy
	if err := json.Unmarshal([]byte(stripFences(response)), &enriched); err != nil {
		telemetry.Warn("enrich.parse_failed", map[string]any{"error": err.Error()})
		return Fallback(rawDescription)
	}

	telemetry.Info("enrich.complete", map[string]any{
		"responsibilities": len(enriched.Responsibilities),
		"requirements":     len(enriched.Requirements),
	})
	return enriched
}

// stripFences removes a leading ```json fence and a trailing ``` fence when
// the model wraps its output in a code block.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}
	return cleaned
}
