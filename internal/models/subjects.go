package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SubjectList decodes either a JSON array of strings or a single
// comma-separated string. Entries are trimmed and blanks dropped while
// the original order is kept.
type SubjectList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *SubjectList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}

	var raw []string
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("subjects must be a list of strings: %w", err)
		}
	} else {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return fmt.Errorf("subjects must be a string or a list of strings: %w", err)
		}
		raw = strings.Split(joined, ",")
	}

	*l = NormalizeSubjects(raw)
	return nil
}

// NormalizeSubjects trims every entry and drops empty ones.
func NormalizeSubjects(in []string) SubjectList {
	out := make(SubjectList, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
