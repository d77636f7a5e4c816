package optimize

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"cv-optimizer-backend/internal/dataset"
	"cv-optimizer-backend/internal/enrich"
	"cv-optimizer-backend/internal/extract"
	"cv-optimizer-backend/internal/history"
	"cv-optimizer-backend/internal/rewrite"
	"cv-optimizer-backend/internal/scrape"
	"cv-optimizer-backend/internal/shared/telemetry"
)

// Pipeline states, in order. A request either reaches stateDelivered or
// terminates in Rejected (bad input) or Aborted (scrape failure).
const (
	stateReceived     = "Received"
	stateTextReady    = "TextReady"
	stateVacancyReady = "VacancyReady"
	stateEnriched     = "Enriched"
	stateRewritten    = "Rewritten"
	statePersisted    = "Persisted"
	stateDelivered    = "Delivered"
)

// Scraper renders and parses a job posting.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*scrape.VacancyRecord, error)
}

// Enricher structures raw vacancy text; it never fails.
type Enricher interface {
	Enrich(ctx context.Context, rawDescription string) enrich.EnrichedVacancy
}

// Rewriter produces the two resume variants; it never fails.
type Rewriter interface {
	Rewrite(ctx context.Context, vacancy *scrape.VacancyRecord, resumeText string) rewrite.ResumePair
}

// DatasetSink appends one row to the durable tabular store.
type DatasetSink interface {
	Append(row dataset.Row) error
}

// HistorySink appends one run entry to the flat-file history.
type HistorySink interface {
	Append(entry history.Entry, now time.Time) error
}

// AnalyticsSink mirrors persisted records into the analytics store.
type AnalyticsSink interface {
	InsertVacancy(ctx context.Context, record dataset.PersistedVacancy) error
}

// Request is one optimization submission. Either ResumeText or File must be
// provided; File takes precedence when both are set.
type Request struct {
	ResumeText string
	FileName   string
	File       io.Reader
	VacancyURL string
}

// Result is the delivered output of one successful pipeline run.
type Result struct {
	ResumeES   string
	ResumeEN   string
	FilenameES string
	FilenameEN string
	Vacancy    *scrape.VacancyRecord
	Persisted  dataset.PersistedVacancy
}

// Service sequences the pipeline for a single request. One run is strictly
// sequential; the service assumes one run in flight per process at a time
// for dataset correctness.
type Service struct {
	Scraper   Scraper
	Enricher  Enricher
	Rewriter  Rewriter
	Dataset   DatasetSink
	History   HistorySink
	Analytics AnalyticsSink
	Artifacts *ArtifactWriter

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// Submit runs extract (if file) → scrape → enrich → rewrite → persist →
// deliver. Once vacancy data exists the pipeline always produces a
// two-variant output; persistence and history failures are logged, never
// surfaced.
func (s *Service) Submit(ctx context.Context, req Request) (*Result, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	start := now()

	// Received → TextReady; both inputs are checked before any extraction
	// work is spent on the upload.
	if strings.TrimSpace(req.VacancyURL) == "" {
		return nil, newError(KindMissingInput, "vacancy_url is required", nil)
	}
	resumeText, err := s.resolveResumeText(req)
	if err != nil {
		return nil, err
	}
	s.transition(stateReceived, stateTextReady)

	// TextReady → VacancyReady; scrape failure has no fallback because
	// there is no vacancy data to fall back to.
	vacancy, err := s.Scraper.Scrape(ctx, req.VacancyURL)
	if err != nil {
		return nil, newError(KindScrapeFailed, "could not extract vacancy information", err)
	}
	s.transition(stateTextReady, stateVacancyReady)

	// VacancyReady → Enriched
	var enriched enrich.EnrichedVacancy
	if vacancy.Description.Available() {
		enriched = s.Enricher.Enrich(ctx, vacancy.Description.Value())
	}
	s.transition(stateVacancyReady, stateEnriched)

	// Enriched → Rewritten
	pair := s.Rewriter.Rewrite(ctx, vacancy, resumeText)
	s.transition(stateEnriched, stateRewritten)

	// Rewritten → Persisted; best-effort.
	record := dataset.BuildPersisted(vacancy, enriched, now())
	if err := s.Dataset.Append(record.Row()); err != nil {
		telemetry.Error("persist.dataset_failed", map[string]any{"error": err.Error()})
	}
	if s.Analytics != nil {
		if err := s.Analytics.InsertVacancy(ctx, record); err != nil {
			telemetry.Error("persist.analytics_failed", map[string]any{"error": err.Error()})
		}
	}
	if s.History != nil {
		entry := history.Entry{
			Company:  vacancy.Company.String(),
			Title:    vacancy.Title.String(),
			URL:      vacancy.URL.String(),
			Original: resumeText,
			Spanish:  pair.Spanish,
			English:  pair.English,
		}
		if err := s.History.Append(entry, now()); err != nil {
			telemetry.Warn("persist.history_failed", map[string]any{"error": err.Error()})
		}
	}
	s.transition(stateRewritten, statePersisted)

	// Persisted → Delivered
	names := NamesFor(vacancy.Title.String(), vacancy.Company.String())
	if s.Artifacts != nil {
		if err := s.Artifacts.Write(names, pair, record); err != nil {
			return nil, newError(KindInternalError, "could not write artifacts", err)
		}
	}
	s.transition(statePersisted, stateDelivered)

	telemetry.Info("optimize.delivered", map[string]any{
		"title":       vacancy.Title.String(),
		"company":     vacancy.Company.String(),
		"duration_ms": float64(now().Sub(start).Microseconds()) / 1000.0,
	})

	return &Result{
		ResumeES:   pair.Spanish,
		ResumeEN:   pair.English,
		FilenameES: names.Spanish,
		FilenameEN: names.English,
		Vacancy:    vacancy,
		Persisted:  record,
	}, nil
}

// ExtractText runs the document extractor alone, mapping its failures onto
// boundary kinds.
func (s *Service) ExtractText(fileName string, r io.Reader) (string, error) {
	text, err := extract.Extract(fileName, r)
	if err != nil {
		return "", mapExtractErr(err)
	}
	return text, nil
}

func (s *Service) resolveResumeText(req Request) (string, error) {
	if req.File != nil {
		text, err := extract.Extract(req.FileName, req.File)
		if err != nil {
			return "", mapExtractErr(err)
		}
		return text, nil
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		return "", newError(KindMissingInput, "resume text or file is required", nil)
	}
	return req.ResumeText, nil
}

func mapExtractErr(err error) error {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return newError(KindUnsupportedFormat, "file format is not supported", err)
	case errors.Is(err, extract.ErrNoText):
		return newError(KindExtractionFailed, "no text could be extracted from the file", err)
	default:
		return newError(KindInternalError, "file processing failed", err)
	}
}

func (s *Service) transition(from, to string) {
	telemetry.Info("pipeline.transition", map[string]any{"from": from, "to": to})
}
