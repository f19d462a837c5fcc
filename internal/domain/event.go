package domain

import (
	"strings"
	"time"
)

// DateLayout is the on-disk and on-screen date format. Dates in this layout
// sort lexicographically in chronological order.
const DateLayout = "2006-01-02"

// OrganizerUnavailable is shown when an event's organizer has no matching user.
const OrganizerUnavailable = "not available"

// Event is an occasion created by an organizer.
type Event struct {
	ID          int64
	Title       string
	Description string
	Date        time.Time
	Organizer   string // email of the organizing user
	Capacity    int
	ImagePath   string // empty when the event has no poster
}

// EventView is an Event enriched with its participant count and the
// organizer's display name.
type EventView struct {
	Event
	Participants  int
	OrganizerName string
	// Poster is the image to display: ImagePath when the file exists,
	// otherwise a placeholder. Filled in by the caller at render time.
	Poster string
}

// Day formats the event date with DateLayout.
func (e Event) Day() string {
	return e.Date.Format(DateLayout)
}

// MergeEventViews joins the results of the three independent event queries by
// event id. Events missing from counts get 0 participants and events missing
// from names get OrganizerUnavailable; no event is ever dropped.
func MergeEventViews(events []Event, counts map[int64]int, names map[int64]string) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		v := EventView{Event: e, OrganizerName: OrganizerUnavailable}
		if n, ok := counts[e.ID]; ok {
			v.Participants = n
		}
		if name, ok := names[e.ID]; ok && strings.TrimSpace(name) != "" {
			v.OrganizerName = name
		}
		views = append(views, v)
	}
	return views
}
