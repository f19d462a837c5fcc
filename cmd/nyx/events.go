package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/conorfennell/nyx/internal/domain"
	"github.com/conorfennell/nyx/internal/forms"
)

func (c *cli) eventCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "event", Short: "Create, edit and browse events"}
	cmd.AddCommand(
		c.eventCreateCmd(),
		c.eventUpdateCmd(),
		c.eventDeleteCmd(),
		c.eventListCmd(),
		c.eventHomeCmd(),
		c.eventMineCmd(),
		c.eventShowCmd(),
	)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid event id %q", s)
	}
	return id, nil
}

func eventFlags(cmd *cobra.Command, form *forms.EventForm, date *string) {
	f := cmd.Flags()
	f.StringVar(&form.Title, "title", "", "Event title")
	f.StringVar(&form.Description, "description", "", "Event description")
	f.StringVar(date, "date", "", "Event date (YYYY-MM-DD)")
	f.IntVar(&form.Capacity, "capacity", 0, "Maximum number of participants")
	f.StringVar(&form.ImagePath, "image", "", "Poster image to copy into the posters directory")
}

func (c *cli) eventCreateCmd() *cobra.Command {
	var form forms.EventForm
	var date string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event organized by you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if form.Date, err = parseDate("date", date); err != nil {
				return err
			}
			e, err := c.svc.CreateEvent(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Created event %d: %s on %s\n", e.ID, e.Title, e.Day())
			return nil
		},
	}
	eventFlags(cmd, &form, &date)
	return cmd
}

// eventUpdateCmd starts from the stored event and overrides only the fields
// given on the command line. --image "" removes the poster.
func (c *cli) eventUpdateCmd() *cobra.Command {
	var form forms.EventForm
	var date string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit one of your events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := c.svc.Event(cmd.Context(), id)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			merged := forms.EventForm{
				Title:       current.Title,
				Description: current.Description,
				Date:        current.Date,
				Capacity:    current.Capacity,
				ImagePath:   current.ImagePath,
			}
			if f.Changed("title") {
				merged.Title = form.Title
			}
			if f.Changed("description") {
				merged.Description = form.Description
			}
			if f.Changed("date") {
				if merged.Date, err = parseDate("date", date); err != nil {
					return err
				}
			}
			if f.Changed("capacity") {
				merged.Capacity = form.Capacity
			}
			if f.Changed("image") {
				merged.ImagePath = form.ImagePath
			}

			e, err := c.svc.UpdateEvent(cmd.Context(), id, merged)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Updated event %d: %s on %s\n", e.ID, e.Title, e.Day())
			return nil
		},
	}
	eventFlags(cmd, &form, &date)
	return cmd
}

func (c *cli) eventDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one of your events and its participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.svc.DeleteEvent(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Deleted event %d\n", id)
			return nil
		},
	}
}

func (c *cli) eventListCmd() *cobra.Command {
	var when, search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally filtered by time and title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := domain.ParseTimeFilter(when)
			if err != nil {
				return err
			}
			views, err := c.svc.ListEvents(cmd.Context(), filter, search)
			if err != nil {
				return err
			}
			return c.printEvents(views)
		},
	}
	cmd.Flags().StringVar(&when, "when", "all", "Which events to show: all, past or future")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive text the title must contain")
	return cmd
}

func (c *cli) eventHomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "List events close to today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := c.svc.HomeEvents(cmd.Context())
			if err != nil {
				return err
			}
			return c.printEvents(views)
		},
	}
}

func (c *cli) eventMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the events you organize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := c.svc.MyEvents(cmd.Context())
			if err != nil {
				return err
			}
			return c.printEvents(views)
		},
	}
}

func (c *cli) eventShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an event and its participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			v, err := c.svc.Event(cmd.Context(), id)
			if err != nil {
				return err
			}
			ps, err := c.svc.Participants(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.printEvent(v, ps)
		},
	}
}
