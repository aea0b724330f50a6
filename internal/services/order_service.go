package services

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/repos"

	"github.com/google/uuid"
)

// OrderService owns the order lifecycle: the cart-to-order transition and the
// payment -> shipping -> delivery -> received state machine. The received
// state is reachable only through VerifyDelivery, so a verification code can
// never outlive the delivery state.
type OrderService struct {
	Orders *repos.OrderRepo
	Users  *repos.UserRepo
	Notes  *repos.NotificationRepo
}

func NewOrderService(orders *repos.OrderRepo, users *repos.UserRepo, notes *repos.NotificationRepo) *OrderService {
	return &OrderService{Orders: orders, Users: users, Notes: notes}
}

// Checkout snapshots the buyer's selected cart rows into a new order, clears
// those rows, and notifies the seller, all in one transaction. The buyer's
// stored address is frozen onto the order.
func (s *OrderService) Checkout(buyerID string) (domain.Order, error) {
	u, err := s.Users.ByID(buyerID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("checkout: %w", domain.ErrAuthRequired)
	}

	// Unique order numbers are enforced by the DB; retry a few times on the
	// astronomically rare collision.
	for attempt := 0; attempt < 5; attempt++ {
		orderID := uuid.NewString()
		number, err := newOrderNumber()
		if err != nil {
			return domain.Order{}, err
		}
		_, err = s.Orders.Checkout(orderID, number, buyerID, u.Address, uuid.NewString())
		if err == sql.ErrNoRows {
			return domain.Order{}, domain.ErrEmptySelection
		}
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed: orders.order_number") {
				continue
			}
			return domain.Order{}, err
		}
		o, _, err := s.Orders.Get(orderID)
		return o, err
	}
	return domain.Order{}, fmt.Errorf("checkout: could not assign a unique order number")
}

// Get returns an order with its snapshot lines, enforcing that the caller is
// the buyer or a seller with a product on the order.
func (s *OrderService) Get(callerID, callerRole, orderID string) (domain.Order, []domain.OrderLine, error) {
	o, items, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.Order{}, nil, domain.ErrNotFound
	}
	if o.UserID == callerID {
		return o, items, nil
	}
	if callerRole == domain.RoleSeller {
		owns, err := s.Orders.SellerOwns(orderID, callerID)
		if err != nil {
			return domain.Order{}, nil, err
		}
		if owns {
			return o, items, nil
		}
	}
	return domain.Order{}, nil, domain.ErrForbidden
}

func (s *OrderService) ListForBuyer(buyerID string) ([]domain.Order, error) {
	return s.Orders.ListByBuyer(buyerID)
}

func (s *OrderService) ListForSeller(sellerID string) ([]domain.Order, error) {
	return s.Orders.ListBySeller(sellerID)
}

// UpdateStatus moves an order to payment, shipping, or delivery on behalf of
// a seller who owns a product on it. Moving to delivery mints a fresh 6-digit
// verification code (overwriting any prior one) and relays it to the buyer
// via notification; the returned string is empty for the other targets.
// A direct transition to received is rejected: the only path there is
// VerifyDelivery.
func (s *OrderService) UpdateStatus(sellerID, orderID, target string) (string, error) {
	switch target {
	case domain.StatusPayment, domain.StatusShipping, domain.StatusDelivery:
	case domain.StatusReceived:
		return "", fmt.Errorf("%w: received is set by delivery verification", domain.ErrValidation)
	default:
		return "", fmt.Errorf("%w: unknown status %q", domain.ErrValidation, target)
	}

	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return "", domain.ErrNotFound
	}
	owns, err := s.Orders.SellerOwns(orderID, sellerID)
	if err != nil {
		return "", err
	}
	if !owns {
		return "", domain.ErrForbidden
	}
	if o.Status == domain.StatusReceived {
		return "", fmt.Errorf("%w: order %s already received", domain.ErrValidation, o.OrderNumber)
	}

	if target == domain.StatusDelivery {
		code, err := newVerificationCode()
		if err != nil {
			return "", err
		}
		ok, err := s.Orders.SetDelivery(orderID, code)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", domain.ErrNotFound
		}
		_ = s.Notes.Append(uuid.NewString(), o.UserID, orderID,
			"Order "+o.OrderNumber+" is out for delivery. Your confirmation code is "+code+".")
		return code, nil
	}

	ok, err := s.Orders.SetStatus(orderID, target)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNotFound
	}
	_ = s.Notes.Append(uuid.NewString(), o.UserID, orderID,
		"Order "+o.OrderNumber+" status changed to "+target+".")
	return "", nil
}

// VerifyDelivery finalizes an order: it succeeds only while the order is in
// delivery and the submitted code matches exactly, atomically setting
// received and clearing the code. Any failure leaves the order untouched.
func (s *OrderService) VerifyDelivery(buyerID, orderID, code string) error {
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.ErrNotFound
	}
	if o.UserID != buyerID {
		return domain.ErrForbidden
	}
	ok, err := s.Orders.FinishDelivery(orderID, buyerID, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrVerificationFailed
	}
	return nil
}

// newOrderNumber builds a human-readable, probabilistically unique number,
// e.g. BZ-20260827-3FA2C1. The orders.order_number UNIQUE index is the
// actual guarantee; Checkout retries on collision.
func newOrderNumber() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("BZ-%s-%s",
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(hex.EncodeToString(b))), nil
}

func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
