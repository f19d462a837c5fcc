package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/conorfennell/nyx/internal/domain"
)

const eventColumns = `id, titolo, descrizione, data_evento, organizzatore, capienza, immagine_path`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var (
		e         domain.Event
		day       string
		organizer sql.NullString
		image     sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &day, &organizer, &e.Capacity, &image); err != nil {
		return domain.Event{}, err
	}
	date, err := parseDay(day)
	if err != nil {
		return domain.Event{}, err
	}
	e.Date = date
	e.Organizer = organizer.String
	e.ImagePath = image.String
	return e, nil
}

func (db *DB) queryEvents(ctx context.Context, what, query string, args ...any) ([]domain.Event, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", what, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", what, err)
	}
	return events, nil
}

// ListEvents returns every event ordered by date.
func (db *DB) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return db.queryEvents(ctx, "events", `
		SELECT `+eventColumns+`
		FROM evento
		ORDER BY data_evento, id
	`)
}

// ListEventsBetween returns the events dated within [from, to], both inclusive.
func (db *DB) ListEventsBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	return db.queryEvents(ctx, "events in window", `
		SELECT `+eventColumns+`
		FROM evento
		WHERE data_evento >= ? AND data_evento <= ?
		ORDER BY data_evento, id
	`, formatDay(from), formatDay(to))
}

// ListEventsByOrganizer returns the events created by the given user.
func (db *DB) ListEventsByOrganizer(ctx context.Context, email string) ([]domain.Event, error) {
	return db.queryEvents(ctx, "events for organizer "+email, `
		SELECT `+eventColumns+`
		FROM evento
		WHERE organizzatore = ?
		ORDER BY data_evento, id
	`, email)
}

// FindEvent retrieves one event. It returns domain.ErrNotFound when no row matches.
func (db *DB) FindEvent(ctx context.Context, id int64) (domain.Event, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM evento WHERE id = ?
	`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, fmt.Errorf("event %d: %w", id, domain.ErrNotFound)
		}
		return domain.Event{}, fmt.Errorf("failed to find event %d: %w", id, err)
	}
	return e, nil
}

// CountParticipants maps event id to its number of participations. Events
// without participations are absent from the result.
func (db *DB) CountParticipants(ctx context.Context) (map[int64]int, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT P.evento_id, COUNT(*)
		FROM evento E
		JOIN partecipazione P ON E.id = P.evento_id
		GROUP BY P.evento_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan participant count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// OrganizerNames maps event id to the organizer's "<nome> <cognome>". Events
// whose organizer has no user row are absent from the result.
func (db *DB) OrganizerNames(ctx context.Context) (map[int64]string, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT E.id, U.nome || ' ' || U.cognome
		FROM evento E
		JOIN utente U ON E.organizzatore = U.email
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve organizer names: %w", err)
	}
	defer rows.Close()

	names := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan organizer name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// InsertEvent inserts a new event and returns its id.
func (db *DB) InsertEvent(ctx context.Context, e domain.Event) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO evento (titolo, descrizione, data_evento, organizzatore, capienza, immagine_path)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.Title,
		e.Description,
		formatDay(e.Date),
		nullable(e.Organizer),
		e.Capacity,
		nullable(e.ImagePath),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert event %q: %w", e.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for event %q: %w", e.Title, err)
	}
	return id, nil
}

// UpdateEvent overwrites every mutable field of the event with the given id.
func (db *DB) UpdateEvent(ctx context.Context, e domain.Event) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE evento
		SET titolo = ?, descrizione = ?, data_evento = ?, capienza = ?, immagine_path = ?
		WHERE id = ?
	`,
		e.Title,
		e.Description,
		formatDay(e.Date),
		e.Capacity,
		nullable(e.ImagePath),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event %d: %w", e.ID, err)
	}
	return expectRow(res, "event", e.ID)
}

// DeleteEvent removes an event. Its participations go with it.
func (db *DB) DeleteEvent(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `
		DELETE FROM evento
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	return expectRow(res, "event", id)
}

func expectRow(res sql.Result, what string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for %s %v: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", what, id, domain.ErrNotFound)
	}
	return nil
}
