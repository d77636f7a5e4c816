package scrape

import "strings"

// KeywordStrategy derives a list of relevant skills from posting text. The
// default allow-list scan is a coarse placeholder; callers may swap in a
// smarter extractor without touching the rest of the pipeline.
type KeywordStrategy interface {
	Keywords(text string) []string
}

// AllowList matches case-folded whitespace tokens against a fixed term list,
// collecting first-seen matches capitalized, deduplicated, in insertion
// order. When nothing matches it substitutes Defaults.
type AllowList struct {
	Terms    []string
	Defaults []string
}

// DefaultAllowList mirrors the domain terms the dataset was seeded with.
func DefaultAllowList() AllowList {
	return AllowList{
		Terms: []string{
			"python", "machine learning", "data science", "remote",
			"english", "skills", "experience",
		},
		Defaults: []string{
			"Python", "Machine Learning", "Data Science", "Remote", "English",
		},
	}
}

func (a AllowList) Keywords(text string) []string {
	terms := make(map[string]struct{}, len(a.Terms))
	for _, t := range a.Terms {
		terms[strings.ToLower(t)] = struct{}{}
	}

	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		if _, ok := terms[token]; !ok {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, capitalize(token))
	}

	if len(out) == 0 {
		return append([]string(nil), a.Defaults...)
	}
	return out
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
