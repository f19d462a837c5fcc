package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/conorfennell/nyx/internal/storage"
)

const fixture = `
users:
  - email: a@x.com
    password: secret1
    nome: Anna
    cognome: Rossi
    data_nascita: "1990-01-01"
events:
  - titolo: Gala
    descrizione: Black tie
    data_evento: "2026-11-01"
    organizzatore: a@x.com
    capienza: 50
    partecipanti:
      - nome: Luca
        cognome: Bianchi
        data_nascita: "2000-01-01"
      - nome: R2D2
        cognome: Droid
        data_nascita: "2000-01-01"
  - titolo: Past Fair
    descrizione: Already happened
    data_evento: "2025-05-01"
    capienza: 10
  - titolo: Broken
    descrizione: Bad date
    data_evento: "first of may"
    capienza: 10
`

func now() time.Time {
	return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "nyx.db"))
	require.NoError(t, err)
	defer db.Close()

	root := filepath.Join(dir, "fixtures")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "events.yaml"), []byte(fixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("# ignored"), 0o644))

	loader := NewLoader(db, nil, now, bcrypt.MinCost)

	report, err := loader.Run(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Files)
	assert.Equal(t, 1, report.Users)
	assert.Equal(t, 2, report.Events)
	assert.Equal(t, 1, report.Participants)
	assert.Len(t, report.Errors, 2, "the invalid participant and the bad date")

	u, err := db.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))

	events, err := db.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Past Fair", events[0].Title)
	assert.Empty(t, events[0].Organizer)

	t.Run("second run skips what exists", func(t *testing.T) {
		again, err := loader.Run(ctx, root)
		require.NoError(t, err)
		assert.Zero(t, again.Users)
		assert.Zero(t, again.Events)
		assert.Equal(t, 3, again.Skipped)

		events, err := db.ListEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})
}

func TestRunMissingRoot(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "nyx.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = NewLoader(db, nil, now, bcrypt.MinCost).Run(ctx, filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
