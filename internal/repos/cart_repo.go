package repos

import (
	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartItemRow is a cart line joined with live product data.
type CartItemRow struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
	Images    string  `db:"images"`
	Qty       int     `db:"qty"`
	Selected  bool    `db:"selected"`
	Subtotal  float64 `db:"subtotal"`
}

// Upsert adds qty to an existing line or inserts a new one. Merge semantics:
// the (user, product) pair stays a single row.
func (r *CartRepo) Upsert(userID, productID string, qty int) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(user_id,product_id,qty,created_at)
		VALUES(?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(user_id,product_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, userID, productID, qty)
	return err
}

// SetQty replaces the quantity; qty <= 0 deletes the row.
func (r *CartRepo) SetQty(userID, productID string, qty int) error {
	if qty <= 0 {
		return r.Remove(userID, productID)
	}
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND product_id = ?
	`, qty, userID, productID)
	return err
}

func (r *CartRepo) SetSelected(userID, productID string, selected bool) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET selected = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND product_id = ?
	`, selected, userID, productID)
	return err
}

func (r *CartRepo) Remove(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	return err
}

func (r *CartRepo) Clear(userID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}

func (r *CartRepo) List(userID string) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, `
	  SELECT ci.product_id, p.name, p.price, p.images, ci.qty, ci.selected,
	         (ci.qty * p.price) AS subtotal
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.user_id = ?
	  ORDER BY datetime(ci.created_at)
	`, userID)
	return rows, err
}

// ListSelected returns only the rows flagged for checkout.
func (r *CartRepo) ListSelected(userID string) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, `
	  SELECT ci.product_id, p.name, p.price, p.images, ci.qty, ci.selected,
	         (ci.qty * p.price) AS subtotal
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.user_id = ? AND ci.selected = 1
	  ORDER BY datetime(ci.created_at)
	`, userID)
	return rows, err
}

// Count returns the total number of units in the cart (for the header badge).
func (r *CartRepo) Count(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COALESCE(SUM(qty),0) FROM cart_items WHERE user_id = ?`, userID)
	return n, err
}
