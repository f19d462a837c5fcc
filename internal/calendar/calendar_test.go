package calendar

import (
	"bytes"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/nyx/internal/domain"
)

func view(id int64, title, date string) domain.EventView {
	d, _ := time.Parse(domain.DateLayout, date)
	return domain.EventView{
		Event:         domain.Event{ID: id, Title: title, Description: title + " desc", Date: d, Organizer: "a@x.com"},
		OrganizerName: "Anna Rossi",
	}
}

func TestMonth(t *testing.T) {
	views := []domain.EventView{
		view(2, "Second", "2026-10-16"),
		view(1, "First", "2026-10-16"),
		view(3, "Last day", "2026-10-31"),
		view(4, "Other month", "2026-11-01"),
	}

	days := Month(views, 2026, time.October)
	require.Len(t, days, 31)
	assert.Equal(t, "2026-10-01", days[0].Date.Format(domain.DateLayout))
	assert.Empty(t, days[0].Events)

	require.Len(t, days[15].Events, 2)
	assert.Equal(t, int64(1), days[15].Events[0].ID)
	assert.Equal(t, int64(2), days[15].Events[1].ID)

	require.Len(t, days[30].Events, 1)
	assert.Equal(t, "Last day", days[30].Events[0].Title)

	assert.Len(t, Month(nil, 2028, time.February), 29)
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	stamp := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	require.NoError(t, Export(&buf, []domain.EventView{view(1, "Gala", "2026-11-01"), view(2, "Picnic", "2026-11-02")}, stamp))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Gala")
	assert.Contains(t, out, "20261101")

	cal, err := ics.ParseCalendar(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "evento-1@nyx", events[0].Id())
	assert.Equal(t, "Picnic", events[1].GetProperty(ics.ComponentPropertySummary).Value)
}
