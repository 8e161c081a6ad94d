package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/chrisdamba/ecomdash/internal/models"
)

var timestampLayouts = []string{
	models.TimestampLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	models.DateLayout,
}

// ParseTimestamp returns nil for an empty cell.
func ParseTimestamp(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognised timestamp %q", s)
}

// FormatTimestamp is the inverse of ParseTimestamp for the table layout.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.TimestampLayout)
}
