// Package calendar arranges events by day and exports them as iCalendar.
package calendar

import (
	"fmt"
	"io"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/conorfennell/nyx/internal/domain"
)

const productID = "-//nyx//event calendar//EN"

// Day is one cell of a month view.
type Day struct {
	Date   time.Time
	Events []domain.EventView
}

// Month returns every day of the given month in order, each carrying the
// events dated on it.
func Month(views []domain.EventView, year int, month time.Month) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	byDay := make(map[string][]domain.EventView)
	for _, v := range views {
		if v.Date.Year() == year && v.Date.Month() == month {
			byDay[v.Day()] = append(byDay[v.Day()], v)
		}
	}

	var days []Day
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		events := byDay[d.Format(domain.DateLayout)]
		sort.SliceStable(events, func(i, j int) bool { return events[i].ID < events[j].ID })
		days = append(days, Day{Date: d, Events: events})
	}
	return days
}

// Export writes the events as an iCalendar document with one all-day event
// each. stamp is used as DTSTAMP.
func Export(w io.Writer, views []domain.EventView, stamp time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, v := range views {
		ev := cal.AddEvent(fmt.Sprintf("evento-%d@nyx", v.ID))
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(v.Date)
		ev.SetAllDayEndAt(v.Date.AddDate(0, 0, 1))
		ev.SetSummary(v.Title)
		if v.Description != "" {
			ev.SetDescription(v.Description)
		}
		if v.Organizer != "" {
			ev.SetOrganizer("mailto:"+v.Organizer, ics.WithCN(v.OrganizerName))
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
