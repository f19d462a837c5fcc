package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/conorfennell/nyx/internal/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func (c *cli) today() time.Time {
	t := c.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// relativeDay renders a date against today, e.g. "3 days ago".
func (c *cli) relativeDay(d time.Time) string {
	today := c.today()
	if d.Equal(today) {
		return "today"
	}
	return humanize.RelTime(d, today, "ago", "from now")
}

func (c *cli) printEvents(views []domain.EventView) error {
	if len(views) == 0 {
		fmt.Fprintln(c.out, "No events")
		return nil
	}
	tw := newTable(c.out)
	fmt.Fprintln(tw, "ID\tDATE\tWHEN\tTITLE\tORGANIZER\tPARTICIPANTS")
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s/%s\n",
			v.ID, v.Day(), c.relativeDay(v.Date), v.Title, v.OrganizerName,
			humanize.Comma(int64(v.Participants)), humanize.Comma(int64(v.Capacity)))
	}
	return tw.Flush()
}

func (c *cli) printEvent(v domain.EventView, participants []domain.Participant) error {
	tw := newTable(c.out)
	fmt.Fprintf(tw, "Title:\t%s\n", v.Title)
	fmt.Fprintf(tw, "Date:\t%s (%s)\n", v.Day(), c.relativeDay(v.Date))
	fmt.Fprintf(tw, "Organizer:\t%s\n", v.OrganizerName)
	fmt.Fprintf(tw, "Capacity:\t%d\n", v.Capacity)
	fmt.Fprintf(tw, "Participants:\t%d\n", v.Participants)
	fmt.Fprintf(tw, "Poster:\t%s\n", v.Poster)
	fmt.Fprintf(tw, "Description:\t%s\n", v.Description)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(participants) == 0 {
		return nil
	}
	fmt.Fprintln(c.out)
	return c.printParticipants(participants)
}

func (c *cli) printParticipants(ps []domain.Participant) error {
	if len(ps) == 0 {
		fmt.Fprintln(c.out, "No participants")
		return nil
	}
	tw := newTable(c.out)
	fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME")
	for _, p := range ps {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.FirstName, p.LastName)
	}
	return tw.Flush()
}
