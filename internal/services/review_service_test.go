package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bazaar/internal/domain"
)

func TestReviews_RecomputeAverage(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.reviewSvc.Add("u-buyer", "p-a", 5, "great"))
	require.NoError(t, e.reviewSvc.Add("u-carol", "p-a", 1, "broke in a week"))

	p, err := e.products.Get("p-a")
	require.NoError(t, err)
	require.InDelta(t, 3.0, p.Rating, 1e-9)
	require.Equal(t, 2, p.ReviewsCount)
}

func TestReviews_SameUserCountsTwice(t *testing.T) {
	e := newEnv(t)

	// no de-duplication: every submission counts
	require.NoError(t, e.reviewSvc.Add("u-buyer", "p-a", 4, "good"))
	require.NoError(t, e.reviewSvc.Add("u-buyer", "p-a", 2, "changed my mind"))

	p, err := e.products.Get("p-a")
	require.NoError(t, err)
	require.InDelta(t, 3.0, p.Rating, 1e-9)
	require.Equal(t, 2, p.ReviewsCount)
}

func TestReviews_Validation(t *testing.T) {
	e := newEnv(t)

	require.ErrorIs(t, e.reviewSvc.Add("u-buyer", "p-a", 0, "x"), domain.ErrValidation)
	require.ErrorIs(t, e.reviewSvc.Add("u-buyer", "p-a", 6, "x"), domain.ErrValidation)
	require.ErrorIs(t, e.reviewSvc.Add("u-buyer", "p-nope", 3, "x"), domain.ErrNotFound)

	p, err := e.products.Get("p-a")
	require.NoError(t, err)
	require.Equal(t, 0, p.ReviewsCount)
}

func TestReviews_ListedOnProduct(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.reviewSvc.Add("u-buyer", "p-a", 5, "great"))

	rvs, err := e.reviews.ListByProduct("p-a")
	require.NoError(t, err)
	require.Len(t, rvs, 1)
	require.Equal(t, "Beatrix", rvs[0].Reviewer)
	require.Equal(t, 5, rvs[0].Rating)
}
