package storage

import (
	"context"
	"fmt"

	"github.com/conorfennell/nyx/internal/domain"
)

// ParticipantsPerEvent counts participations grouped by event title, busiest
// first. Titles without participations are not listed.
func (db *DB) ParticipantsPerEvent(ctx context.Context) ([]domain.EventStat, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT E.titolo, COUNT(*) AS partecipazioni
		FROM evento E
		JOIN partecipazione P ON E.id = P.evento_id
		GROUP BY E.titolo
		ORDER BY partecipazioni DESC, E.titolo
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read participation statistics: %w", err)
	}
	defer rows.Close()

	var stats []domain.EventStat
	for rows.Next() {
		var s domain.EventStat
		if err := rows.Scan(&s.Title, &s.Participants); err != nil {
			return nil, fmt.Errorf("failed to scan participation statistic: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// EventsPerOrganizer counts events per organizing user, most active first.
func (db *DB) EventsPerOrganizer(ctx context.Context) ([]domain.OrganizerStat, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT E.organizzatore, U.nome || ' ' || U.cognome, COUNT(*) AS num_eventi
		FROM evento E
		JOIN utente U ON E.organizzatore = U.email
		GROUP BY E.organizzatore, U.nome, U.cognome
		ORDER BY num_eventi DESC, E.organizzatore
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read organizer statistics: %w", err)
	}
	defer rows.Close()

	var stats []domain.OrganizerStat
	for rows.Next() {
		var s domain.OrganizerStat
		if err := rows.Scan(&s.Email, &s.Name, &s.Events); err != nil {
			return nil, fmt.Errorf("failed to scan organizer statistic: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
