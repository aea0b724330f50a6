package repos

import (
	"database/sql"
	"strconv"

	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

func formatMoney(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Checkout runs the whole cart-to-order transition in one transaction:
// read the buyer's selected cart rows joined with live product data, snapshot
// them into order_items, delete only those cart rows, and append a
// notification to the seller of the first purchased product. Unselected rows
// are never touched. Returns sql.ErrNoRows when nothing is selected.
func (r *OrderRepo) Checkout(orderID, orderNumber, userID, address, sellerMsgID string) (float64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	type line struct {
		ProductID string  `db:"product_id"`
		Name      string  `db:"name"`
		Price     float64 `db:"price"`
		Qty       int     `db:"qty"`
		SellerID  string  `db:"seller_id"`
	}
	var lines []line
	if err := tx.Select(&lines, `
	  SELECT ci.product_id, p.name, p.price, ci.qty, p.seller_id
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.user_id = ? AND ci.selected = 1
	  ORDER BY datetime(ci.created_at)
	`, userID); err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, sql.ErrNoRows
	}

	total := 0.0
	for _, l := range lines {
		total += l.Price * float64(l.Qty)
	}

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, order_number, user_id, total_price, status, address, created_at, updated_at)
	  VALUES(?, ?, ?, ?, 'payment', ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`, orderID, orderNumber, userID, total, address); err != nil {
		return 0, err
	}
	for _, l := range lines {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, price, qty)
		  VALUES(?, ?, ?, ?, ?)
		`, orderID, l.ProductID, l.Name, l.Price, l.Qty); err != nil {
			return 0, err
		}
	}

	if _, err := tx.Exec(`
	  DELETE FROM cart_items WHERE user_id = ? AND selected = 1
	`, userID); err != nil {
		return 0, err
	}

	// Notify the seller of the first purchased product.
	if _, err := tx.Exec(`
	  INSERT INTO notifications(id, user_id, order_id, message)
	  VALUES(?, ?, ?, ?)
	`, sellerMsgID, lines[0].SellerID, orderID,
		"New order "+orderNumber+": "+formatMoney(total)); err != nil {
		return 0, err
	}

	return total, tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (domain.Order, []domain.OrderLine, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
	  SELECT id, order_number, user_id, total_price, status, verification_code,
	         address, created_at, updated_at
	  FROM orders WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	var items []domain.OrderLine
	if err := r.db.Select(&items, `
	  SELECT order_id, product_id, name, price, qty
	  FROM order_items WHERE order_id = ?
	  ORDER BY name
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) ListByBuyer(userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, order_number, user_id, total_price, status, verification_code,
	         address, created_at, updated_at
	  FROM orders
	  WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

// ListBySeller returns orders containing at least one product owned by the
// seller.
func (r *OrderRepo) ListBySeller(sellerID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT DISTINCT o.id, o.order_number, o.user_id, o.total_price, o.status,
	         o.verification_code, o.address, o.created_at, o.updated_at
	  FROM orders o
	  JOIN order_items oi ON oi.order_id = o.id
	  JOIN products p ON p.id = oi.product_id
	  WHERE p.seller_id = ?
	  ORDER BY datetime(o.created_at) DESC
	`, sellerID)
	return out, err
}

// SellerOwns reports whether the seller owns any product on the order.
func (r *OrderRepo) SellerOwns(orderID, sellerID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*)
	  FROM order_items oi JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ? AND p.seller_id = ?
	`, orderID, sellerID)
	return n > 0, err
}

// SetStatus updates the status, leaving verification_code untouched. The
// received state is terminal and cannot be overwritten here.
func (r *OrderRepo) SetStatus(orderID, status string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status != 'received'
	`, status, orderID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// SetDelivery moves the order to delivery and stores the freshly minted
// verification code, overwriting any prior code.
func (r *OrderRepo) SetDelivery(orderID, code string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE orders SET status = 'delivery', verification_code = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status != 'received'
	`, code, orderID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// FinishDelivery is the single guarded UPDATE behind delivery verification:
// it succeeds only while the order is in delivery with exactly the submitted
// code, and atomically clears the code. Zero rows affected means wrong code
// or wrong state, with no side effect.
func (r *OrderRepo) FinishDelivery(orderID, userID, code string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE orders
	  SET status = 'received', verification_code = NULL, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND user_id = ? AND status = 'delivery' AND verification_code = ?
	`, orderID, userID, code)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
