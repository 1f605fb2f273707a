package domain

import (
	"strings"
	"time"
)

// approachDateLayout is the NeoWs close_approach_date format.
const approachDateLayout = "2006-01-02"

type datedApproach struct {
	date     time.Time
	approach CloseApproach
}

// SelectApproach picks the most relevant close approach relative to today:
// the earliest approach on or after today, otherwise the most recent past
// approach. Entries with unparsable dates are skipped; when none parse the
// first entry is returned as-is. The bool is false only for an empty list.
func SelectApproach(approaches []CloseApproach, today time.Time) (CloseApproach, bool) {
	if len(approaches) == 0 {
		return CloseApproach{}, false
	}

	parsed := make([]datedApproach, 0, len(approaches))
	for _, a := range approaches {
		d, ok := parseApproachDate(a.CloseApproachDate)
		if !ok {
			continue
		}
		parsed = append(parsed, datedApproach{date: d, approach: a})
	}
	if len(parsed) == 0 {
		return approaches[0], true
	}

	day := truncateToDay(today)

	var next, last *datedApproach
	for i := range parsed {
		p := &parsed[i]
		if !p.date.Before(day) {
			if next == nil || p.date.Before(next.date) {
				next = p
			}
			continue
		}
		if last == nil || p.date.After(last.date) {
			last = p
		}
	}

	if next != nil {
		return next.approach, true
	}
	return last.approach, true
}

func parseApproachDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(approachDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// truncateToDay returns midnight UTC of t's UTC calendar date. "Today" for
// approach selection is always the UTC date, whatever the host time zone.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
