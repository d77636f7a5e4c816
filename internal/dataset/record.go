package dataset

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"

	"cv-optimizer-backend/internal/enrich"
	"cv-optimizer-backend/internal/scrape"
)

// Canonical dataset column names. The triple-underscore word separator is
// deliberate: it survives tabular round-tripping where spaces would not.
const (
	ColSubmissionDate   = "Fecha___de___la___solicitud"
	ColURL              = "Enlace___de___la___vacante"
	ColLanguage         = "Idioma___de___la___publicación"
	ColTitle            = "Título___del___puesto"
	ColCompany          = "Nombre___de___la___empresa"
	ColRecruiter        = "Nombre___del___reclutador"
	ColEmail            = "Correo___electrónico"
	ColPhone            = "WhatsApp"
	ColSummary          = "Información___del___trabajo"
	ColResponsibilities = "Responsabilidades"
	ColRequirements     = "Requisitos"
	ColSalary           = "Salario"
	ColSchedule         = "Horario___laboral"
	ColModality         = "Modalidad___de___trabajo"
	ColLocation         = "Ubicación"
	ColBenefits         = "Beneficios"
)

// canonicalColumns fixes the write order of a freshly built record.
var canonicalColumns = []string{
	ColSubmissionDate,
	ColURL,
	ColLanguage,
	ColTitle,
	ColCompany,
	ColRecruiter,
	ColEmail,
	ColPhone,
	ColSummary,
	ColResponsibilities,
	ColRequirements,
	ColSalary,
	ColSchedule,
	ColModality,
	ColLocation,
	ColBenefits,
}

// PersistedVacancy is the flattened superset of the scraped record and its
// enrichment, ready for the tabular store.
type PersistedVacancy struct {
	SubmissionDate   string
	URL              string
	Language         string
	Title            string
	Company          string
	Recruiter        string
	Email            string
	Phone            string
	Summary          string
	Responsibilities []string
	Requirements     []string
	Salary           string
	Schedule         string
	Modality         string
	Location         string
	Benefits         string
}

// BuildPersisted flattens a scraped vacancy plus its enrichment into the
// canonical persisted shape, stamping the submission date and the detected
// publication language.
func BuildPersisted(vacancy *scrape.VacancyRecord, enriched enrich.EnrichedVacancy, now time.Time) PersistedVacancy {
	record := PersistedVacancy{
		SubmissionDate:   now.Format("02-01-2006"),
		URL:              vacancy.URL.String(),
		Language:         DetectLanguage(vacancy.Description.Value()),
		Title:            vacancy.Title.String(),
		Company:          vacancy.Company.String(),
		Recruiter:        vacancy.Recruiter.String(),
		Email:            vacancy.Email.String(),
		Phone:            vacancy.Phone.String(),
		Summary:          enriched.Summary,
		Responsibilities: enriched.Responsibilities,
		Requirements:     enriched.Requirements,
		Salary:           vacancy.Salary.String(),
		Schedule:         vacancy.Schedule.String(),
		Modality:         vacancy.Modality.String(),
		Location:         vacancy.Location.String(),
		Benefits:         vacancy.Benefits.String(),
	}
	if enriched.Benefits != nil {
		record.Benefits = *enriched.Benefits
	}
	if record.Summary == "" && vacancy.Description.Available() {
		record.Summary = vacancy.Description.Value()
	}
	return record
}

// Row converts the record into an ordered dataset row. List fields are
// serialized as JSON arrays so they survive the CSV cell intact.
func (p PersistedVacancy) Row() Row {
	values := map[string]string{
		ColSubmissionDate:   p.SubmissionDate,
		ColURL:              p.URL,
		ColLanguage:         p.Language,
		ColTitle:            p.Title,
		ColCompany:          p.Company,
		ColRecruiter:        p.Recruiter,
		ColEmail:            p.Email,
		ColPhone:            p.Phone,
		ColSummary:          p.Summary,
		ColResponsibilities: marshalList(p.Responsibilities),
		ColRequirements:     marshalList(p.Requirements),
		ColSalary:           p.Salary,
		ColSchedule:         p.Schedule,
		ColModality:         p.Modality,
		ColLocation:         p.Location,
		ColBenefits:         p.Benefits,
	}
	return Row{Columns: append([]string(nil), canonicalColumns...), Values: values}
}

// MarshalJSON emits the canonical column naming, matching the dataset.
func (p PersistedVacancy) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		ColSubmissionDate:   p.SubmissionDate,
		ColURL:              p.URL,
		ColLanguage:         p.Language,
		ColTitle:            p.Title,
		ColCompany:          p.Company,
		ColRecruiter:        p.Recruiter,
		ColEmail:            p.Email,
		ColPhone:            p.Phone,
		ColSummary:          p.Summary,
		ColResponsibilities: p.Responsibilities,
		ColRequirements:     p.Requirements,
		ColSalary:           p.Salary,
		ColSchedule:         p.Schedule,
		ColModality:         p.Modality,
		ColLocation:         p.Location,
		ColBenefits:         nullableString(p.Benefits),
	}
	return json.Marshal(out)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func marshalList(items []string) string {
	if items == nil {
		return ""
	}
	data, err := json.Marshal(items)
	if err != nil {
		return strings.Join(items, "; ")
	}
	return string(data)
}

// DetectLanguage classifies posting text as "inglés" or "español". Short or
// unavailable text falls back to the phrase heuristic the dataset was
// originally built with.
func DetectLanguage(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed != "" && trimmed != scrape.Sentinel {
		info := whatlanggo.Detect(trimmed)
		if info.IsReliable() {
			switch info.Lang {
			case whatlanggo.Eng:
				return "inglés"
			case whatlanggo.Spa:
				return "español"
			}
		}
	}
	if strings.Contains(text, "Job Description:") || strings.Contains(text, "Responsibilities") {
		return "inglés"
	}
	return "español"
}
