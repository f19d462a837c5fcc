package storage

import (
	"context"
	"fmt"

	"github.com/conorfennell/nyx/internal/domain"
)

// ListParticipants returns id, first and last name of everyone registered to
// the event, in registration order.
func (db *DB) ListParticipants(ctx context.Context, eventID int64) ([]domain.Participant, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, nome, cognome
		FROM partecipazione WHERE evento_id = ?
		ORDER BY id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants for event %d: %w", eventID, err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		p := domain.Participant{EventID: eventID}
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan participant row for event %d: %w", eventID, err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// InsertParticipant registers a participant and returns the new row id.
// A missing event surfaces as a foreign key violation.
func (db *DB) InsertParticipant(ctx context.Context, p domain.Participant) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO partecipazione (nome, cognome, data_nascita, evento_id)
		VALUES (?, ?, ?, ?)
	`, p.FirstName, p.LastName, formatDay(p.BirthDate), p.EventID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert participant for event %d: %w", p.EventID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for participant: %w", err)
	}
	return id, nil
}
