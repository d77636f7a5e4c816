package optimize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cv-optimizer-backend/internal/dataset"
	"cv-optimizer-backend/internal/rewrite"
	"cv-optimizer-backend/internal/shared/util"
)

// ArtifactNames holds the three deterministic artifact file names for one
// request.
type ArtifactNames struct {
	Spanish string
	English string
	JSON    string
}

// NamesFor derives the artifact names from job title and company:
// <title_slug>-<company_slug>_es.txt / _en.txt / .json.
func NamesFor(title, company string) ArtifactNames {
	base := fmt.Sprintf("%s-%s", util.Slugify(title), util.Slugify(company))
	return ArtifactNames{
		Spanish: base + "_es.txt",
		English: base + "_en.txt",
		JSON:    base + ".json",
	}
}

// ArtifactWriter writes the per-request artifacts into a fixed directory.
type ArtifactWriter struct {
	Dir string
}

// Write emits the two resume texts and the structured record. Names are
// returned even on error so callers can log what was attempted.
func (w *ArtifactWriter) Write(names ArtifactNames, pair rewrite.ResumePair, record dataset.PersistedVacancy) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("artifacts: %w", err)
	}

	if err := os.WriteFile(filepath.Join(w.Dir, names.Spanish), []byte(pair.Spanish), 0o644); err != nil {
		return fmt.Errorf("artifacts: write %s: %w", names.Spanish, err)
	}
	if err := os.WriteFile(filepath.Join(w.Dir, names.English), []byte(pair.English), 0o644); err != nil {
		return fmt.Errorf("artifacts: write %s: %w", names.English, err)
	}

	payload, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return fmt.Errorf("artifacts: marshal record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.Dir, names.JSON), payload, 0o644); err != nil {
		return fmt.Errorf("artifacts: write %s: %w", names.JSON, err)
	}
	return nil
}
