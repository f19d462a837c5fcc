package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/conorfennell/nyx/internal/calendar"
	"github.com/conorfennell/nyx/internal/domain"
)

func (c *cli) calendarCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "calendar", Short: "Browse events by month or export them"}
	cmd.AddCommand(c.calendarMonthCmd(), c.calendarExportCmd())
	return cmd
}

func (c *cli) calendarMonthCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "month",
		Short: "List the days of a month that have events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref := c.today()
			if month != "" {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("--month must look like 2006-01: %w", err)
				}
				ref = t
			}
			views, err := c.svc.ListEvents(cmd.Context(), domain.AllEvents, "")
			if err != nil {
				return err
			}

			fmt.Fprintln(c.out, ref.Format("January 2006"))
			tw := newTable(c.out)
			empty := true
			for _, d := range calendar.Month(views, ref.Year(), ref.Month()) {
				for _, v := range d.Events {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", d.Date.Format("Mon 02"), v.ID, v.Title, v.OrganizerName)
					empty = false
				}
			}
			if empty {
				fmt.Fprintln(c.out, "No events")
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM, default current)")
	return cmd
}

func (c *cli) calendarExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every event as an iCalendar file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := c.svc.ListEvents(cmd.Context(), domain.AllEvents, "")
			if err != nil {
				return err
			}
			var w io.Writer = c.out
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := calendar.Export(w, views, c.now()); err != nil {
				return err
			}
			if w != c.out {
				fmt.Fprintf(c.out, "Exported %d events to %s\n", len(views), output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default standard output)")
	return cmd
}
