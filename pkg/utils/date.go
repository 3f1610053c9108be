package utils

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDateLayouts são os formatos de data aceitos quando nenhum outro é configurado
var DefaultDateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"01-02-06",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02 Jan 2006",
	"Jan 2 2006",
}

// ParseDate tenta interpretar a data com cada um dos formatos, na ordem informada
func ParseDate(dateStr string, layouts ...string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}

	for _, layout := range layouts {
		date, err := time.Parse(layout, dateStr)
		if err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format %q", dateStr)
}
