package services

import (
	"strings"

	"bazaar/internal/domain"
	"bazaar/internal/repos"

	"github.com/google/uuid"
)

type CatalogService struct {
	Prods   *repos.ProductRepo
	Reviews *repos.ReviewRepo
}

func NewCatalogService(prods *repos.ProductRepo, reviews *repos.ReviewRepo) *CatalogService {
	return &CatalogService{Prods: prods, Reviews: reviews}
}

func (s *CatalogService) List(q, sort string) ([]domain.Product, error) {
	return s.Prods.List(strings.ToLower(strings.TrimSpace(q)), sort)
}

// ProductDetail is a product with its delimited fields split for display and
// its reviews attached.
type ProductDetail struct {
	Product  domain.Product
	Features []string
	Images   []string
	Reviews  []domain.Review
}

func (s *CatalogService) Get(id string) (ProductDetail, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return ProductDetail{}, domain.ErrNotFound
	}
	rvs, err := s.Reviews.ListByProduct(id)
	if err != nil {
		return ProductDetail{}, err
	}
	return ProductDetail{
		Product:  p,
		Features: splitLines(p.Features),
		Images:   splitLines(p.Images),
		Reviews:  rvs,
	}, nil
}

// NewListing is a seller's add-product submission; ImagePaths come from the
// upload handler, already stored under the media dir.
type NewListing struct {
	Name        string
	Price       float64
	Description string
	Features    string
	ImagePaths  []string
}

func (s *CatalogService) AddProduct(sellerID string, in NewListing) (string, error) {
	paths := in.ImagePaths
	if len(paths) == 0 {
		paths = []string{"/static/images/placeholder.jpg"}
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Features:    in.Features,
		Images:      strings.Join(paths, "\n"),
		SellerID:    sellerID,
	}
	if err := s.Prods.Create(&p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (s *CatalogService) ListBySeller(sellerID string) ([]domain.Product, error) {
	return s.Prods.ListBySeller(sellerID)
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
