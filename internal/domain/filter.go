package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeFilter selects events relative to a reference day.
type TimeFilter int

const (
	AllEvents TimeFilter = iota
	PastEvents
	FutureEvents
)

func (f TimeFilter) String() string {
	switch f {
	case PastEvents:
		return "past"
	case FutureEvents:
		return "future"
	default:
		return "all"
	}
}

// ParseTimeFilter accepts "past", "future", "all" or the empty string.
func ParseTimeFilter(s string) (TimeFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AllEvents, nil
	case "past":
		return PastEvents, nil
	case "future":
		return FutureEvents, nil
	}
	return AllEvents, fmt.Errorf("unknown time filter %q", s)
}

// FilterEvents applies the time filter and a case-insensitive title search.
// Both conditions must hold. An event dated today counts as future.
func FilterEvents(views []EventView, when TimeFilter, search string, today time.Time) []EventView {
	ref := today.Format(DateLayout)
	needle := strings.ToLower(search)

	filtered := make([]EventView, 0, len(views))
	for _, v := range views {
		day := v.Day()
		switch when {
		case PastEvents:
			if day >= ref {
				continue
			}
		case FutureEvents:
			if day < ref {
				continue
			}
		}
		if needle != "" && !strings.Contains(strings.ToLower(v.Title), needle) {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}
