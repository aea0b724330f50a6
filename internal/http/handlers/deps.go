package handlers

import (
	"bazaar/internal/config"
	"bazaar/internal/repos"
	"bazaar/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler      *ProductHandler
	CartHandler         *CartHandler
	OrderHandler        *OrderHandler
	SellerHandler       *SellerHandler
	NotificationHandler *NotificationHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	noteRepo := repos.NewNotificationRepo(db)
	reviewRepo := repos.NewReviewRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, reviewRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(orderRepo, userRepo, noteRepo)
	noteSvc := services.NewNotificationService(noteRepo)
	reviewSvc := services.NewReviewService(reviewRepo, prodRepo)

	return &Deps{
		ProductHandler:      &ProductHandler{Catalog: catalogSvc, Cart: cartSvc, Reviews: reviewSvc},
		CartHandler:         &CartHandler{Cart: cartSvc},
		OrderHandler:        &OrderHandler{Order: orderSvc, Cart: cartSvc},
		SellerHandler:       &SellerHandler{Catalog: catalogSvc, Order: orderSvc, MediaDir: cfg.MediaDir},
		NotificationHandler: &NotificationHandler{Notes: noteSvc},
	}
}
