package services_test

import (
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"bazaar/internal/repos"
	"bazaar/internal/services"
)

// memdb opens an in-memory database with the real schema and a small
// fixture: one seller with two listings and two customers.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := repos.EnsureSchema(db); err != nil {
		t.Fatal(err)
	}

	fixture := `
	INSERT INTO users(id,email,name,password_hash,address,role) VALUES
	  ('u-seller','seller@test','Sam Seller','x','1 Market St','seller'),
	  ('u-rival','rival@test','Rita Rival','x','2 Market St','seller'),
	  ('u-buyer','buyer@test','Beatrix','x','42 Elm Ave','customer'),
	  ('u-carol','carol@test','Carol','x','7 Oak Rd','customer');
	INSERT INTO products(id,name,price,description,features,images,seller_id) VALUES
	  ('p-a','Kettle',10.0,'A kettle','2L','/media/a.jpg','u-seller'),
	  ('p-b','Mug',5.0,'A mug','350ml','/media/b.jpg','u-seller');
	`
	if _, err := db.Exec(fixture); err != nil {
		t.Fatal(err)
	}
	return db
}

type env struct {
	db       *sqlx.DB
	users    *repos.UserRepo
	products *repos.ProductRepo
	carts    *repos.CartRepo
	orders   *repos.OrderRepo
	notes    *repos.NotificationRepo
	reviews  *repos.ReviewRepo

	cartSvc   *services.CartService
	orderSvc  *services.OrderService
	noteSvc   *services.NotificationService
	reviewSvc *services.ReviewService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := memdb(t)
	e := &env{
		db:       db,
		users:    repos.NewUserRepo(db),
		products: repos.NewProductRepo(db),
		carts:    repos.NewCartRepo(db),
		orders:   repos.NewOrderRepo(db),
		notes:    repos.NewNotificationRepo(db),
		reviews:  repos.NewReviewRepo(db),
	}
	e.cartSvc = services.NewCartService(e.carts, e.products)
	e.orderSvc = services.NewOrderService(e.orders, e.users, e.notes)
	e.noteSvc = services.NewNotificationService(e.notes)
	e.reviewSvc = services.NewReviewService(e.reviews, e.products)
	return e
}

// recorderMailer captures outbound mail for assertions.
type recorderMailer struct {
	mu   sync.Mutex
	sent []struct{ To, Subject, Body string }
}

func (m *recorderMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, struct{ To, Subject, Body string }{to, subject, body})
	return nil
}
