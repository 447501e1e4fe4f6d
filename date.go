package main

import (
	"strings"
	"time"
)

const displayDateLayout = "January 2, 2006"

// Tried in order; the first layout that parses the whole string wins.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"2006-1-2",
	"1/2/2006",
	time.RFC3339,
}

// parseDisplayDate resolves a human readable date. Month names are the
// English ones of Go's layout table, independent of the system locale.
func parseDisplayDate(value string) (time.Time, error) {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(value), `"'`))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, dateParseError(value)
}

// normalizeDate returns the sortable value of a display date. Unparseable
// dates resolve to the zero time so they sort after every valid date.
func normalizeDate(value string, log Logger) time.Time {
	t, err := parseDisplayDate(value)
	if err != nil {
		if strings.TrimSpace(value) != "" {
			log.Warn("could not parse date, sorting post last", "date", value, "error", err)
		}
		return time.Time{}
	}
	return t
}
