package repos

import (
	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, price, description, features, images, seller_id,
    rating, reviews_count, created_at`

// Sort keys accepted by List.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,name,price,description,features,images,seller_id)
	  VALUES(?,?,?,?,?,?,?)`,
		p.ID, p.Name, p.Price, p.Description, p.Features, p.Images, p.SellerID)
	return err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// List returns products, optionally filtered by a name substring and ordered
// by one of the Sort* keys.
func (r *ProductRepo) List(q, sort string) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if q != "" {
		where = `LOWER(name) LIKE ?`
		args = append(args, "%"+q+"%")
	}

	order := `datetime(created_at) DESC`
	switch sort {
	case SortPriceAsc:
		order = `price ASC`
	case SortPriceDesc:
		order = `price DESC`
	}

	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY `+order, args...)
	return out, err
}

func (r *ProductRepo) ListBySeller(sellerID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE seller_id = ?
	  ORDER BY datetime(created_at) DESC`, sellerID)
	return out, err
}
