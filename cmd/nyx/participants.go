package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/nyx/internal/forms"
)

func (c *cli) participantCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "participant", Short: "Register and list event participants"}
	cmd.AddCommand(c.participantAddCmd(), c.participantListCmd())
	return cmd
}

func (c *cli) participantAddCmd() *cobra.Command {
	var form forms.ParticipantForm
	var birth string
	cmd := &cobra.Command{
		Use:   "add EVENT_ID",
		Short: "Register a participant to an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if form.BirthDate, err = parseDate("birth-date", birth); err != nil {
				return err
			}
			p, err := c.svc.AddParticipant(cmd.Context(), id, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Registered %s %s to event %d\n", p.FirstName, p.LastName, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.FirstName, "first-name", "", "Participant first name")
	cmd.Flags().StringVar(&form.LastName, "last-name", "", "Participant last name")
	cmd.Flags().StringVar(&birth, "birth-date", "", "Participant birth date (YYYY-MM-DD)")
	return cmd
}

func (c *cli) participantListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list EVENT_ID",
		Short: "List the participants of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ps, err := c.svc.Participants(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.printParticipants(ps)
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show participants per event and events per organizer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := c.svc.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(c.out)
			fmt.Fprintln(tw, "EVENT\tPARTICIPANTS")
			for _, e := range st.PerEvent {
				fmt.Fprintf(tw, "%s\t%d\n", e.Title, e.Participants)
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "ORGANIZER\tEVENTS")
			for _, o := range st.PerOrganizer {
				fmt.Fprintf(tw, "%s\t%d\n", o.Name, o.Events)
			}
			return tw.Flush()
		},
	}
}
