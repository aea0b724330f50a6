package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type ResetRepo struct{ db *sqlx.DB }

func NewResetRepo(db *sqlx.DB) *ResetRepo { return &ResetRepo{db: db} }

// Issue stores a fresh reset token for the user, invalidating any prior one.
func (r *ResetRepo) Issue(userID, token string, expiresAt time.Time) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM password_resets WHERE user_id = ?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  INSERT INTO password_resets(user_id, token, expires_at) VALUES(?, ?, ?)
	`, userID, token, expiresAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

// Consume looks up a token, deletes it, and returns the owning user id.
// Expired or unknown tokens return ("", nil).
func (r *ResetRepo) Consume(token string, now time.Time) (string, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var row struct {
		UserID    string `db:"user_id"`
		ExpiresAt string `db:"expires_at"`
	}
	if err := tx.Get(&row, `SELECT user_id, expires_at FROM password_resets WHERE token = ?`, token); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	if _, err := tx.Exec(`DELETE FROM password_resets WHERE token = ?`, token); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	exp, err := time.Parse(time.RFC3339, row.ExpiresAt)
	if err != nil || now.After(exp) {
		return "", nil
	}
	return row.UserID, nil
}
