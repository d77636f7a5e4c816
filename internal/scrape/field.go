package scrape

import (
	"encoding/json"
	"strings"
)

// Sentinel is the serialized placeholder for a field that could not be
// extracted from the posting.
const Sentinel = "NA"

// Field is an optional string. A field is either available with a non-empty
// value, or unavailable; it serializes to the sentinel when unavailable so
// downstream consumers always see every key populated.
type Field struct {
	value     string
	available bool
}

// FieldOf wraps a scraped value. Empty or whitespace-only input yields an
// unavailable field.
func FieldOf(value string) Field {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Field{}
	}
	return Field{value: trimmed, available: true}
}

// Preformatted wraps text whose surrounding whitespace is significant, such
// as a multi-line block that starts with its own separator. Whitespace-only
// input still yields an unavailable field.
func Preformatted(value string) Field {
	if strings.TrimSpace(value) == "" {
		return Field{}
	}
	return Field{value: value, available: true}
}

// NA returns an unavailable field.
func NA() Field {
	return Field{}
}

// Available reports whether the field carries a real value.
func (f Field) Available() bool {
	return f.available
}

// Value returns the raw value, or the empty string when unavailable.
func (f Field) Value() string {
	return f.value
}

// Or returns the value when available, otherwise def.
func (f Field) Or(def string) string {
	if f.available {
		return f.value
	}
	return def
}

// String renders the value, substituting the sentinel when unavailable.
func (f Field) String() string {
	return f.Or(Sentinel)
}

// MarshalJSON serializes the value or the sentinel.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts a plain string, mapping the sentinel back to an
// unavailable field.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == Sentinel {
		*f = Field{}
		return nil
	}
	*f = FieldOf(raw)
	return nil
}
