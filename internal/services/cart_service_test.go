package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bazaar/internal/domain"
)

func TestCartAdd_MergesQuantities(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.cartSvc.Add("u-buyer", "p-a", 2))
	require.NoError(t, e.cartSvc.Add("u-buyer", "p-a", 3))

	cv, err := e.cartSvc.View("u-buyer")
	require.NoError(t, err)
	require.Len(t, cv.Items, 1, "same product must stay a single row")
	require.Equal(t, 5, cv.Items[0].Qty)
	require.InDelta(t, 50.0, cv.Total, 1e-9)
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	e := newEnv(t)
	err := e.cartSvc.Add("u-buyer", "p-nope", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartSetQty_ZeroRemovesRow(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.cartSvc.Add("u-buyer", "p-a", 2))
	require.NoError(t, e.cartSvc.SetQty("u-buyer", "p-a", 0))

	cv, err := e.cartSvc.View("u-buyer")
	require.NoError(t, err)
	require.Empty(t, cv.Items)
}

func TestCartSelection_TotalsFollowFlag(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.cartSvc.Add("u-buyer", "p-a", 2)) // 20.00
	require.NoError(t, e.cartSvc.Add("u-buyer", "p-b", 1)) // 5.00
	require.NoError(t, e.cartSvc.SetSelected("u-buyer", "p-b", false))

	cv, err := e.cartSvc.View("u-buyer")
	require.NoError(t, err)
	require.InDelta(t, 25.0, cv.Total, 1e-9)
	require.InDelta(t, 20.0, cv.SelectedTotal, 1e-9)
}

func TestCartIsPerUser(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.cartSvc.Add("u-buyer", "p-a", 1))
	cv, err := e.cartSvc.View("u-carol")
	require.NoError(t, err)
	require.Empty(t, cv.Items)
}
