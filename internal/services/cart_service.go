package services

import (
	"bazaar/internal/domain"
	"bazaar/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add merges qty into the user's cart line for the product; two adds of the
// same product never produce two rows.
func (s *CartService) Add(userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if _, err := s.Prods.Get(productID); err != nil {
		return domain.ErrNotFound
	}
	return s.Carts.Upsert(userID, productID, qty)
}

// SetQty replaces a line's quantity; zero or negative removes the line.
func (s *CartService) SetQty(userID, productID string, qty int) error {
	return s.Carts.SetQty(userID, productID, qty)
}

func (s *CartService) SetSelected(userID, productID string, selected bool) error {
	return s.Carts.SetSelected(userID, productID, selected)
}

func (s *CartService) Remove(userID, productID string) error {
	return s.Carts.Remove(userID, productID)
}

type CartView struct {
	Items         []repos.CartItemRow
	Total         float64 // all lines
	SelectedTotal float64 // what checkout would charge
}

func (s *CartService) View(userID string) (CartView, error) {
	items, err := s.Carts.List(userID)
	if err != nil {
		return CartView{}, err
	}
	cv := CartView{Items: items}
	for _, it := range items {
		cv.Total += it.Subtotal
		if it.Selected {
			cv.SelectedTotal += it.Subtotal
		}
	}
	return cv, nil
}

func (s *CartService) Count(userID string) (int, error) {
	return s.Carts.Count(userID)
}
