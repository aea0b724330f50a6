package repos

import (
	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NotificationRepo struct{ db *sqlx.DB }

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) Append(id, userID, orderID, message string) error {
	_, err := r.db.Exec(`
	  INSERT INTO notifications(id, user_id, order_id, message)
	  VALUES(?, ?, ?, ?)
	`, id, userID, orderID, message)
	return err
}

// List returns the recipient's notifications newest-first, each joined with
// the referenced order's human-readable number.
func (r *NotificationRepo) List(userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.db.Select(&out, `
	  SELECT n.id, n.user_id, n.order_id, o.order_number, n.message, n.is_read, n.created_at
	  FROM notifications n
	  JOIN orders o ON o.id = n.order_id
	  WHERE n.user_id = ?
	  ORDER BY datetime(n.created_at) DESC, n.id
	`, userID)
	return out, err
}

func (r *NotificationRepo) CountUnread(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID)
	return n, err
}

// MarkRead flips is_read for a notification owned by userID. Returns false
// when the notification does not exist or belongs to someone else.
func (r *NotificationRepo) MarkRead(id, userID string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
