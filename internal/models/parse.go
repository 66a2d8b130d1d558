package models

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts accepted in the source tables, most common first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	time.RFC3339,
}

// ParseDate parses a table date string. An empty string is reported as
// missing via the error; callers decide how a missing date degrades.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %s", s)
}

// TruthyString reports whether a textual boolean counts as true.
// "true", "1" and "yes" match case-insensitively; everything else is false.
func TruthyString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
