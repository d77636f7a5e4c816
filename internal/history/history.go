package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one optimization run: the inputs plus all three resume texts.
type Entry struct {
	Timestamp string `json:"fecha"`
	Company   string `json:"empresa"`
	Title     string `json:"puesto"`
	URL       string `json:"vacancy_url"`
	Original  string `json:"cv_original"`
	Spanish   string `json:"cv_es"`
	English   string `json:"cv_en"`
}

// Log appends run entries to a flat JSON array file. It is strictly
// best-effort: callers log returned errors and move on.
type Log struct {
	path string
}

// NewLog creates a history log at path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append stamps and appends one entry, rewriting the file.
func (l *Log) Append(entry Entry, now time.Time) error {
	entry.Timestamp = now.Format("2006-01-02 15:04:05")

	entries, err := l.read()
	if err != nil {
		return fmt.Errorf("history append: %w", err)
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("history append: %w", err)
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("history append: %w", err)
		}
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("history append: %w", err)
	}
	return nil
}

// Entries returns the stored history; a missing file is an empty history.
func (l *Log) Entries() ([]Entry, error) {
	return l.read()
}

func (l *Log) read() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
