package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bazaar/internal/domain"
)

func placeOrder(t *testing.T, e *env) domain.Order {
	t.Helper()
	require.NoError(t, e.cartSvc.Add("u-buyer", "p-a", 2))
	o, err := e.orderSvc.Checkout("u-buyer")
	require.NoError(t, err)
	return o
}

func getOrder(t *testing.T, e *env, id string) domain.Order {
	t.Helper()
	o, _, err := e.orders.Get(id)
	require.NoError(t, err)
	return o
}

func TestUpdateStatus_DeliveryMintsCode(t *testing.T) {
	e := newEnv(t)
	o := placeOrder(t, e)

	code, err := e.orderSvc.UpdateStatus("u-seller", o.ID, domain.StatusDelivery)
	require.NoError(t, err)
	require.Regexp(t, `^\d{6}$`, code)

	got := getOrder(t, e, o.ID)
	require.Equal(t, domain.StatusDelivery, got.Status)
	require.True(t, got.VerificationCode.Valid)
	require.Equal(t, code, got.VerificationCode.String)

	// the buyer is told the code
	notes, err := e.noteSvc.List("u-buyer")
	require.NoError(t, err)
	require.NotEmpty(t, notes)
	require.Contains(t, notes[0].Message, code)
}

func TestUpdateStatus_ReenteringDeliveryOverwritesCode(t *testing.T) {
	e := newEnv(t)
	o := placeOrder(t, e)

	first, err := e.orderSvc.UpdateStatus("u-seller", o.ID, domain.StatusDelivery)
	require.NoError(t, err)
	second, err := e.orderSvc.UpdateStatus("u-seller", o.ID, domain.StatusDelivery)
	require.NoError(t, err)

	got := getOrder(t, e, o.ID)
	require.Equal(t, second, got.VerificationCode.String)
	if first != second {
		// the first code no longer verifies
		require.ErrorIs(t, e.orderSvc.VerifyDelivery("u-buyer", o.ID, first), domain.ErrVerificationFailed)
	}
}

func TestUpdateStatus_ShippingLeavesCodeUntouched(t *testing.T) {
	e := newEnv(t)
	o := placeOrder(t, e)

	code, err := e.orderSvc.UpdateStatus("u-seller", o.ID, domain.StatusDelivery)
	require.NoError(t, err)

	_, err = e.orderSvc.UpdateStatus("u-seller", o.ID, domain.StatusShipping)
	require.NoError(t, err)

	got := getOrder(t, e, o.ID)
	require.Equal(t, domain.StatusShipping, got.Status)
	require.True(t, got.VerificationCode.Valid, "moving away from delivery keeps the stored code")
	require.Equal(t, code, got.VerificationCode.String)
}

func TestUpdateStatus_DirectReceivedForbidden(t *testing.T) {
	e := newEnv(t)
	o := placeOrder(t, e)

	_, err := e.orderSvc.UpdateStatus("u-seller", o.ID, domain.StatusReceived)
	require.ErrorIs(t, err, domain.ErrValidation)

	require.Equal(t, domain.StatusPayment, getOrder(t, e, o.ID).Status)
}

func TestUpdateStatus_Authorization(t *testing.T) {
	e := newEnv(t)
	o := placeOrder(t, e)

	_, err := e.orderSvc.UpdateStatus("u-rival", o.ID, domain.StatusShipping)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.orderSvc.UpdateStatus("u-seller", "no-such-order", domain.StatusShipping)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.orderSvc.UpdateStatus("u-seller", o.ID, "teleported")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerifyDelivery_RoundTrip(t *testing.T) {
	e := newEnv(t)
	o := placeOrder(t, e)

	code, err := e.orderSvc.UpdateStatus("u-seller", o.ID, domain.StatusDelivery)
	require.NoError(t, err)

	// wrong code: reported failure, order untouched
	err = e.orderSvc.VerifyDelivery("u-buyer", o.ID, "000000")
	if code != "000000" {
		require.ErrorIs(t, err, domain.ErrVerificationFailed)
		got := getOrder(t, e, o.ID)
		require.Equal(t, domain.StatusDelivery, got.Status)
		require.Equal(t, code, got.VerificationCode.String)
	}

	// right code: received, code cleared
	require.NoError(t, e.orderSvc.VerifyDelivery("u-buyer", o.ID, code))
	got := getOrder(t, e, o.ID)
	require.Equal(t, domain.StatusReceived, got.Status)
	require.False(t, got.VerificationCode.Valid)

	// replaying the same code fails: status is no longer delivery
	require.ErrorIs(t, e.orderSvc.VerifyDelivery("u-buyer", o.ID, code), domain.ErrVerificationFailed)
}

func TestVerifyDelivery_WrongStateFails(t *testing.T) {
	e := newEnv(t)
	o := placeOrder(t, e)

	// still in payment: nothing to verify
	require.ErrorIs(t, e.orderSvc.VerifyDelivery("u-buyer", o.ID, "123456"), domain.ErrVerificationFailed)
}

func TestVerifyDelivery_OnlyBuyer(t *testing.T) {
	e := newEnv(t)
	o := placeOrder(t, e)

	code, err := e.orderSvc.UpdateStatus("u-seller", o.ID, domain.StatusDelivery)
	require.NoError(t, err)

	require.ErrorIs(t, e.orderSvc.VerifyDelivery("u-carol", o.ID, code), domain.ErrForbidden)
	require.ErrorIs(t, e.orderSvc.VerifyDelivery("u-buyer", "no-such-order", code), domain.ErrNotFound)
}

func TestReceivedIsTerminal(t *testing.T) {
	e := newEnv(t)
	o := placeOrder(t, e)

	code, err := e.orderSvc.UpdateStatus("u-seller", o.ID, domain.StatusDelivery)
	require.NoError(t, err)
	require.NoError(t, e.orderSvc.VerifyDelivery("u-buyer", o.ID, code))

	_, err = e.orderSvc.UpdateStatus("u-seller", o.ID, domain.StatusShipping)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Equal(t, domain.StatusReceived, getOrder(t, e, o.ID).Status)
}

func TestSellerOrderListing(t *testing.T) {
	e := newEnv(t)
	o := placeOrder(t, e)

	mine, err := e.orderSvc.ListForSeller("u-seller")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, o.ID, mine[0].ID)

	theirs, err := e.orderSvc.ListForSeller("u-rival")
	require.NoError(t, err)
	require.Empty(t, theirs)
}
