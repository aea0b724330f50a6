package repos

import (
	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Add inserts the review and recomputes the product's running average and
// count in the same transaction.
func (r *ReviewRepo) Add(id, productID, userID string, rating int, comment string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO reviews(id, product_id, user_id, rating, comment)
	  VALUES(?, ?, ?, ?, ?)
	`, id, productID, userID, rating, comment); err != nil {
		return err
	}

	if _, err := tx.Exec(`
	  UPDATE products SET
	    rating        = (SELECT AVG(rating)  FROM reviews WHERE product_id = ?),
	    reviews_count = (SELECT COUNT(*)     FROM reviews WHERE product_id = ?)
	  WHERE id = ?
	`, productID, productID, productID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ReviewRepo) ListByProduct(productID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT rv.id, rv.product_id, rv.user_id, u.name AS reviewer,
	         rv.rating, rv.comment, rv.created_at
	  FROM reviews rv
	  JOIN users u ON u.id = rv.user_id
	  WHERE rv.product_id = ?
	  ORDER BY datetime(rv.created_at) DESC
	`, productID)
	return out, err
}
