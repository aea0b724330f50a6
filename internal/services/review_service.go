package services

import (
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/repos"

	"github.com/google/uuid"
)

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Prods   *repos.ProductRepo
}

func NewReviewService(reviews *repos.ReviewRepo, prods *repos.ProductRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods}
}

// Add records a rating and recomputes the product's running average. A user
// may review the same product more than once; every submission counts.
func (s *ReviewService) Add(userID, productID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be 1-5", domain.ErrValidation)
	}
	if _, err := s.Prods.Get(productID); err != nil {
		return domain.ErrNotFound
	}
	return s.Reviews.Add(uuid.NewString(), productID, userID, rating, comment)
}
