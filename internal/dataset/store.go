package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Row is one dataset record: an ordered column list plus the cell values.
type Row struct {
	Columns []string
	Values  map[string]string
}

// Store is an append-only tabular CSV store. Appending a row whose column
// set differs from the stored schema widens the header to the union, leaving
// unmatched cells empty on either side. A file lock serializes the
// read-modify-write cycle; concurrent processes block rather than race.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore creates a store backed by the CSV file at path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Append reads the existing dataset, aligns columns, appends the row, and
// rewrites the file atomically via a temp file and rename.
func (s *Store) Append(row Row) error {
	// The lock file lives next to the dataset, so the directory must exist
	// before the first lock attempt.
	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("dataset append: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("dataset append: lock: %w", err)
	}
	defer s.lock.Unlock()

	columns, rows, err := s.read()
	if err != nil {
		return fmt.Errorf("dataset append: %w", err)
	}

	columns = unionColumns(columns, row.Columns)
	rows = append(rows, row.Values)

	return s.write(columns, rows)
}

// ReadAll returns the stored header and rows. A missing file yields an empty
// dataset, not an error.
func (s *Store) ReadAll() ([]string, []map[string]string, error) {
	if err := s.ensureDir(); err != nil {
		return nil, nil, fmt.Errorf("dataset read: %w", err)
	}
	if err := s.lock.RLock(); err != nil {
		return nil, nil, fmt.Errorf("dataset read: lock: %w", err)
	}
	defer s.lock.Unlock()
	return s.read()
}

func (s *Store) ensureDir() error {
	dir := filepath.Dir(s.path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) read() ([]string, []map[string]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var rows []map[string]string
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(cells) {
				row[col] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func (s *Store) write(columns []string, rows []map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("dataset write: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("dataset write: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(columns); err != nil {
		tmp.Close()
		return fmt.Errorf("dataset write header: %w", err)
	}
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = row[col]
		}
		if err := writer.Write(cells); err != nil {
			tmp.Close()
			return fmt.Errorf("dataset write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("dataset flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("dataset close: %w", err)
	}

	return os.Rename(tmp.Name(), s.path)
}

// unionColumns keeps the existing column order and appends new columns in
// record order.
func unionColumns(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	out := append([]string(nil), existing...)
	for _, col := range existing {
		seen[col] = struct{}{}
	}
	for _, col := range incoming {
		if _, ok := seen[col]; ok {
			continue
		}
		seen[col] = struct{}{}
		out = append(out, col)
	}
	return out
}
