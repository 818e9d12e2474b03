package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"souq/cart"
	"souq/models"
)

// OrderCreator is the persistence collaborator checkout submits to.
type OrderCreator interface {
	Create(ctx context.Context, input models.OrderInput) (models.Order, error)
}

// ShiftDirectory answers whether a delivery shift can be selected.
type ShiftDirectory interface {
	ActiveShift(ctx context.Context, shiftID string) (bool, error)
}

// OTPVerifier checks a one-time code for a guest phone number.
type OTPVerifier interface {
	Verify(ctx context.Context, phone, code string) (bool, error)
}

// SessionStore persists checkout sessions between steps.
type SessionStore struct {
	storage cart.Storage
}

func NewSessionStore(storage cart.Storage) *SessionStore {
	return &SessionStore{storage: storage}
}

func sessionKey(id string) string {
	return "checkout:" + id
}

func (s *SessionStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := s.storage.Get(ctx, sessionKey(id))
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.storage.Set(ctx, sessionKey(sess.ID), string(data)); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Orchestrator drives the checkout flow against injected collaborators.
type Orchestrator struct {
	Sessions *SessionStore
	Carts    *cart.Store
	Orders   OrderCreator
	Shifts   ShiftDirectory
	OTP      OTPVerifier
}

// Identity runs the StageIdentity transition and persists the session.
func (o *Orchestrator) Identity(ctx context.Context, sess *Session, name, phone, customerID string, authenticated bool) error {
	if err := sess.SubmitIdentity(name, phone, customerID, authenticated); err != nil {
		return err
	}
	return o.Sessions.Save(ctx, sess)
}

// Address validates the shift against the directory, runs the
// StageAddress transition and persists the session.
func (o *Orchestrator) Address(ctx context.Context, sess *Session, address string, lat, lng *float64, shiftID string, terms bool) error {
	if shiftID != "" {
		active, err := o.Shifts.ActiveShift(ctx, shiftID)
		if err != nil {
			return fmt.Errorf("shift lookup: %w", err)
		}
		if !active {
			return &ValidationError{Field: "shiftId", Reason: "unknown or inactive shift"}
		}
	}
	if err := sess.SubmitAddress(address, lat, lng, shiftID, terms); err != nil {
		return err
	}
	return o.Sessions.Save(ctx, sess)
}

// VerifyOTP checks the guest's code. A wrong code keeps the session in
// StageOTP and returns a ValidationError; retries are unlimited.
func (o *Orchestrator) VerifyOTP(ctx context.Context, sess *Session, code string) error {
	if sess.Stage != StageOTP {
		return fmt.Errorf("otp step not active")
	}
	ok, err := o.OTP.Verify(ctx, sess.Phone, code)
	if err != nil {
		return fmt.Errorf("otp check: %w", err)
	}
	if !ok {
		return &ValidationError{Field: "otp", Reason: "incorrect code"}
	}
	if err := sess.MarkVerified(); err != nil {
		return err
	}
	return o.Sessions.Save(ctx, sess)
}

// Submit hands the cart snapshot to order creation. The cart is cleared
// if and only if creation succeeds; on failure the session stays in
// StageSubmit and the cart is untouched.
func (o *Orchestrator) Submit(ctx context.Context, sess *Session) (models.Order, error) {
	if sess.Stage != StageSubmit {
		return models.Order{}, fmt.Errorf("submit step not active")
	}

	c, err := o.Carts.Load(ctx, sess.CartID)
	if err != nil {
		return models.Order{}, &SubmissionError{Err: err}
	}
	if c.TotalUniqueItems() == 0 {
		return models.Order{}, &ValidationError{Field: "cart", Reason: "cart is empty"}
	}

	order, err := o.Orders.Create(ctx, sess.OrderInput(c.OrderLines()))
	if err != nil {
		return models.Order{}, &SubmissionError{Err: err}
	}

	if err := o.Carts.Clear(ctx, sess.CartID); err != nil {
		log.Println("Submit cart clear error:", err)
	}
	sess.Complete(order.OrderID)
	if err := o.Sessions.Save(ctx, sess); err != nil {
		log.Println("Submit session save error:", err)
	}
	return order, nil
}
