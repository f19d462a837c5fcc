package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/conorfennell/nyx/internal/domain"
)

// CountUsersByEmail reports how many accounts use the email (0 or 1).
func (db *DB) CountUsersByEmail(ctx context.Context, email string) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM utente WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count users with email %s: %w", email, err)
	}
	return n, nil
}

// InsertUser stores a new account inside a transaction.
func (db *DB) InsertUser(ctx context.Context, u domain.User) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO utente (email, password, nome, cognome, data_nascita)
		VALUES (?, ?, ?, ?, ?)
	`, u.Email, u.PasswordHash, u.FirstName, u.LastName, formatDay(u.BirthDate))
	if err != nil {
		return fmt.Errorf("failed to insert user %s: %w", u.Email, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user %s: %w", u.Email, err)
	}
	return nil
}

// FindUserByEmail retrieves an account. It returns domain.ErrNotFound when the
// email is unknown.
func (db *DB) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var (
		u     domain.User
		birth string
	)
	err := db.conn.QueryRowContext(ctx, `
		SELECT email, password, nome, cognome, data_nascita
		FROM utente WHERE email = ?
	`, email).Scan(&u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &birth)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("failed to find user %s: %w", email, err)
	}
	if u.BirthDate, err = parseDay(birth); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// DeleteUser removes an account together with the events it organizes and
// their participations.
func (db *DB) DeleteUser(ctx context.Context, email string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM utente WHERE email = ?`, email)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", email, err)
	}
	return expectRow(res, "user", email)
}
