package analytics

import (
	"context"
	"database/sql"
	"encoding/json"

	"cv-optimizer-backend/internal/dataset"
)

// InsertVacancy mirrors one persisted vacancy row into the analytics table.
func (d *DB) InsertVacancy(ctx context.Context, record dataset.PersistedVacancy) error {
	_, err := d.pool.ExecContext(ctx, `
INSERT INTO vacancies (
  submission_date, url, language, title, company,
  recruiter, email, phone, summary, responsibilities,
  requirements, salary, schedule, modality, location, benefits
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		record.SubmissionDate,
		record.URL,
		record.Language,
		record.Title,
		record.Company,
		nullable(record.Recruiter),
		nullable(record.Email),
		nullable(record.Phone),
		nullable(record.Summary),
		nullableList(record.Responsibilities),
		nullableList(record.Requirements),
		nullable(record.Salary),
		nullable(record.Schedule),
		nullable(record.Modality),
		nullable(record.Location),
		nullable(record.Benefits),
	)
	return err
}

// CountVacancies returns the number of mirrored rows.
func (d *DB) CountVacancies(ctx context.Context) (int, error) {
	var count int
	err := d.pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM vacancies;`).Scan(&count)
	return count, err
}

func nullable(s string) sql.NullString {
	if s == "" || s == "NA" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableList(items []string) sql.NullString {
	if items == nil {
		return sql.NullString{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(data), Valid: true}
}
