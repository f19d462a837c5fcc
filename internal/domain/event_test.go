package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestMergeEventViews(t *testing.T) {
	events := []Event{
		{ID: 1, Title: "Gala", Date: day(t, "2026-10-20"), Organizer: "a@x.com"},
		{ID: 2, Title: "Picnic", Date: day(t, "2026-10-21"), Organizer: "ghost@x.com"},
	}
	counts := map[int64]int{1: 3}
	names := map[int64]string{1: "Anna Rossi"}

	views := MergeEventViews(events, counts, names)
	require.Len(t, views, 2)

	assert.Equal(t, 3, views[0].Participants)
	assert.Equal(t, "Anna Rossi", views[0].OrganizerName)

	t.Run("missing count defaults to zero", func(t *testing.T) {
		assert.Equal(t, 0, views[1].Participants)
	})
	t.Run("missing organizer defaults to sentinel", func(t *testing.T) {
		assert.Equal(t, OrganizerUnavailable, views[1].OrganizerName)
	})
}

func TestMergeEventViewsNilMaps(t *testing.T) {
	views := MergeEventViews([]Event{{ID: 7}}, nil, nil)
	require.Len(t, views, 1)
	assert.Equal(t, 0, views[0].Participants)
	assert.Equal(t, OrganizerUnavailable, views[0].OrganizerName)
}

func TestFilterEvents(t *testing.T) {
	today := day(t, "2026-10-16")
	views := MergeEventViews([]Event{
		{ID: 1, Title: "Summer Gala", Date: day(t, "2026-07-01")},
		{ID: 2, Title: "Winter gala", Date: day(t, "2026-12-01")},
		{ID: 3, Title: "Today Party", Date: day(t, "2026-10-16")},
		{ID: 4, Title: "Yesterday Party", Date: day(t, "2026-10-15")},
	}, nil, nil)

	testCases := []struct {
		name     string
		when     TimeFilter
		search   string
		expected []int64
	}{
		{name: "all", when: AllEvents, expected: []int64{1, 2, 3, 4}},
		{name: "past", when: PastEvents, expected: []int64{1, 4}},
		{name: "future includes today", when: FutureEvents, expected: []int64{2, 3}},
		{name: "search is case-insensitive", when: AllEvents, search: "GALA", expected: []int64{1, 2}},
		{name: "filters are ANDed", when: FutureEvents, search: "gala", expected: []int64{2}},
		{name: "no match", when: PastEvents, search: "winter", expected: []int64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterEvents(views, tc.when, tc.search, today)
			ids := make([]int64, 0, len(got))
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func TestParseTimeFilter(t *testing.T) {
	for in, want := range map[string]TimeFilter{"": AllEvents, "all": AllEvents, "Past": PastEvents, " future ": FutureEvents} {
		got, err := ParseTimeFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTimeFilter("tomorrow")
	assert.Error(t, err)
}
