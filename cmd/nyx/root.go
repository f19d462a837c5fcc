package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/conorfennell/nyx/internal/app"
	"github.com/conorfennell/nyx/internal/config"
	"github.com/conorfennell/nyx/internal/domain"
	"github.com/conorfennell/nyx/internal/forms"
	"github.com/conorfennell/nyx/internal/poster"
	"github.com/conorfennell/nyx/internal/session"
	"github.com/conorfennell/nyx/internal/storage"
)

// cli is the state shared by every command once the root pre-run has opened
// the database.
type cli struct {
	out     io.Writer
	cfg     *config.Config
	db      *storage.DB
	posters *poster.Store
	svc     *app.Service
	now     func() time.Time
}

// run executes one command line and closes the database whatever the
// outcome.
func run(ctx context.Context, out io.Writer, args []string) error {
	c := &cli{out: out, now: time.Now}
	root := c.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := c.close(); err == nil {
		err = cerr
	}
	return err
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nyx",
		Short:         "Manage local events, participants and posters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd)
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.out)
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.accountCmd(),
		c.eventCmd(),
		c.participantCmd(),
		c.statsCmd(),
		c.calendarCmd(),
		c.seedCmd(),
	)
	return root
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	c.cfg = cfg
	logger := cfg.Logger()
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DB), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := storage.Open(cmd.Context(), cfg.DB)
	if err != nil {
		logger.Error("Failed to open database", "path", cfg.DB, "error", err)
		return err
	}
	logger.Debug("Database opened", "path", cfg.DB)
	c.db = db

	c.posters = poster.NewStore(cfg.Posters.Dir, cfg.Posters.Placeholder, cfg.Posters.Crop)
	if err := c.posters.EnsurePlaceholder(); err != nil {
		logger.Warn("Poster placeholder unavailable", "path", cfg.Posters.Placeholder, "error", err)
	}
	c.svc = app.New(db, session.NewFileStore(cfg.Session.File), c.posters, app.Options{
		HomeWindowDays: cfg.Home.Window,
		Now:            c.now,
		Logger:         logger,
	})
	return nil
}

func (c *cli) close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// describe turns service errors into the messages shown to the user.
func describe(err error) string {
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return "an account with this email already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "incorrect email or password"
	case errors.Is(err, domain.ErrNoSession):
		return "you are not logged in, run 'nyx login' first"
	case errors.Is(err, domain.ErrNotOrganizer):
		return "only the organizer can change this event"
	case errors.Is(err, poster.ErrNotImage):
		return "the selected poster is not an image"
	}
	return err.Error()
}

// parseDate reads a YYYY-MM-DD flag value. An empty value yields the zero
// time so the form validator reports the missing field.
func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be a date like 2006-01-02: %w", flag, err)
	}
	return t, nil
}
