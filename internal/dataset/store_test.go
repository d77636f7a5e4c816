package dataset

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"cv-optimizer-backend/internal/enrich"
	"cv-optimizer-backend/internal/scrape"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "jobs.csv"))
}

func TestAppendCreatesDataset(t *testing.T) {
	store := tempStore(t)

	err := store.Append(Row{
		Columns: []string{"a", "b"},
		Values:  map[string]string{"a": "1", "b": "2"},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	header, rows, err := store.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(header, []string{"a", "b"}) {
		t.Fatalf("header = %v", header)
	}
	if len(rows) != 1 || rows[0]["a"] != "1" || rows[0]["b"] != "2" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestAppendCreatesMissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "data", "processed", "jobs.csv"))

	err := store.Append(Row{
		Columns: []string{"a"},
		Values:  map[string]string{"a": "1"},
	})
	if err != nil {
		t.Fatalf("append into fresh directory: %v", err)
	}

	_, rows, err := store.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
}

func TestAppendDisjointColumnsUnions(t *testing.T) {
	store := tempStore(t)

	if err := store.Append(Row{
		Columns: []string{"a", "b"},
		Values:  map[string]string{"a": "1", "b": "2"},
	}); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := store.Append(Row{
		Columns: []string{"b", "c"},
		Values:  map[string]string{"b": "3", "c": "4"},
	}); err != nil {
		t.Fatalf("append second: %v", err)
	}

	header, rows, err := store.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(header, []string{"a", "b", "c"}) {
		t.Fatalf("header = %v, want union in order", header)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	// Original values unmodified; unmatched cells empty on both sides.
	if rows[0]["a"] != "1" || rows[0]["b"] != "2" || rows[0]["c"] != "" {
		t.Fatalf("first row = %v", rows[0])
	}
	if rows[1]["a"] != "" || rows[1]["b"] != "3" || rows[1]["c"] != "4" {
		t.Fatalf("second row = %v", rows[1])
	}
}

func TestAppendIsPureAppendLog(t *testing.T) {
	store := tempStore(t)
	row := Row{Columns: []string{"a"}, Values: map[string]string{"a": "same"}}

	for i := 0; i < 3; i++ {
		if err := store.Append(row); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	_, rows, err := store.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 identical rows (no dedup), got %d", len(rows))
	}
}

func TestBuildPersistedFlattens(t *testing.T) {
	vacancy := &scrape.VacancyRecord{
		Title:       scrape.FieldOf("Data Scientist"),
		URL:         scrape.FieldOf("https://example.com/jobs/1"),
		Company:     scrape.FieldOf("Tech Global"),
		Description: scrape.FieldOf("We are hiring. Job Description: build models. Responsibilities include ML."),
		Schedule:    scrape.FieldOf("Tiempo completo"),
		Modality:    scrape.FieldOf("Remoto"),
	}
	benefits := "Health insurance"
	enriched := enrich.EnrichedVacancy{
		Summary:          "Short summary",
		Responsibilities: []string{"Build", "Ship"},
		Requirements:     []string{"Python"},
		Benefits:         &benefits,
	}

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	record := BuildPersisted(vacancy, enriched, now)

	if record.SubmissionDate != "29-08-2026" {
		t.Errorf("submission date = %q", record.SubmissionDate)
	}
	if record.Language != "inglés" {
		t.Errorf("language = %q", record.Language)
	}
	if record.Title != "Data Scientist" || record.Company != "Tech Global" {
		t.Errorf("title/company = %q/%q", record.Title, record.Company)
	}
	if record.Recruiter != scrape.Sentinel || record.Salary != scrape.Sentinel {
		t.Errorf("unavailable fields must keep the sentinel: %+v", record)
	}
	if record.Benefits != benefits {
		t.Errorf("benefits = %q", record.Benefits)
	}

	row := record.Row()
	if len(row.Columns) != 16 {
		t.Fatalf("expected 16 canonical columns, got %d", len(row.Columns))
	}
	if row.Values[ColResponsibilities] != `["Build","Ship"]` {
		t.Errorf("responsibilities cell = %q", row.Values[ColResponsibilities])
	}
}

func TestPersistedVacancyRoundTripsThroughStore(t *testing.T) {
	store := tempStore(t)

	vacancy := &scrape.VacancyRecord{
		Title:       scrape.FieldOf("Engineer"),
		URL:         scrape.FieldOf("https://example.com/2"),
		Company:     scrape.FieldOf("Acme"),
		Description: scrape.FieldOf("Una empresa busca ingeniero, con experiencia en sistemas distribuidos."),
	}
	record := BuildPersisted(vacancy, enrich.Fallback(vacancy.Description.Value()), time.Now())

	if err := store.Append(record.Row()); err != nil {
		t.Fatalf("append: %v", err)
	}

	header, rows, err := store.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(header, record.Row().Columns) {
		t.Fatalf("header = %v", header)
	}
	if rows[0][ColTitle] != "Engineer" || rows[0][ColCompany] != "Acme" {
		t.Fatalf("row = %v", rows[0])
	}
	if rows[0][ColSummary] != vacancy.Description.Value() {
		t.Fatalf("fallback summary must pass through: %q", rows[0][ColSummary])
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"We are looking for a senior software engineer to join our fully remote team in Europe.", "inglés"},
		{"Buscamos una persona apasionada por los datos para unirse a nuestro equipo en Bogotá.", "español"},
		{"Job Description: x", "inglés"},
		{"NA", "español"},
		{"", "español"},
	}
	for _, tc := range cases {
		if got := DetectLanguage(tc.text); got != tc.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
