package checkout

import (
	"fmt"
	"strings"
	"time"

	"souq/models"
)

// Checkout stages. A session only moves forward; a failed submit stays
// in StageSubmit so the user can retry without re-entering anything.
type Stage string

const (
	StageIdentity Stage = "collect_identity"
	StageAddress  Stage = "collect_address_and_shift"
	StageOTP      Stage = "otp_verify"
	StageSubmit   Stage = "submit"
	StageComplete Stage = "complete"
)

// ValidationError blocks progression until the named field is fixed.
// It is never fatal; the session stays where it is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// SubmissionError wraps a failed order-creation call. The cart and the
// session survive it so the user can retry.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "order submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Session is one customer's walk through checkout, persisted between
// steps so a page reload resumes where it left off.
type Session struct {
	ID            string    `json:"id"`
	CartID        string    `json:"cartId"`
	Stage         Stage     `json:"stage"`
	Name          string    `json:"name,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	CustomerID    string    `json:"customerId,omitempty"`
	Authenticated bool      `json:"authenticated"`
	Verified      bool      `json:"verified"`
	Address       string    `json:"address,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	ShiftID       string    `json:"shiftId,omitempty"`
	TermsAccepted bool      `json:"termsAccepted"`
	OrderID       string    `json:"orderId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewSession(id, cartID string) *Session {
	return &Session{
		ID:        id,
		CartID:    cartID,
		Stage:     StageIdentity,
		CreatedAt: time.Now(),
	}
}

// SubmitIdentity advances past StageIdentity. An authenticated caller
// skips OTP later; a guest will be routed through it.
func (s *Session) SubmitIdentity(name, phone, customerID string, authenticated bool) error {
	if s.Stage != StageIdentity {
		return fmt.Errorf("identity already collected")
	}
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if !authenticated {
		if name == "" {
			return &ValidationError{Field: "name", Reason: "required"}
		}
		if phone == "" {
			return &ValidationError{Field: "phone", Reason: "required"}
		}
	}
	s.Name = name
	s.Phone = phone
	s.CustomerID = customerID
	s.Authenticated = authenticated
	s.Stage = StageAddress
	return nil
}

// SubmitAddress advances past StageAddress. Coordinates are an optional
// convenience; when present with an empty address they become the
// delivery address, when absent the address must be typed in. Missing
// geolocation is never an error.
func (s *Session) SubmitAddress(address string, lat, lng *float64, shiftID string, termsAccepted bool) error {
	if s.Stage != StageAddress {
		return fmt.Errorf("address step not active")
	}
	address = strings.TrimSpace(address)
	if address == "" && lat != nil && lng != nil {
		address = fmt.Sprintf("%.6f,%.6f", *lat, *lng)
	}
	if address == "" {
		return &ValidationError{Field: "address", Reason: "required"}
	}
	if shiftID == "" {
		return &ValidationError{Field: "shiftId", Reason: "required"}
	}
	if !termsAccepted {
		return &ValidationError{Field: "terms", Reason: "must be accepted"}
	}
	s.Address = address
	s.Latitude = lat
	s.Longitude = lng
	s.ShiftID = shiftID
	s.TermsAccepted = termsAccepted
	if s.Authenticated || s.Verified {
		s.Stage = StageSubmit
	} else {
		s.Stage = StageOTP
	}
	return nil
}

// MarkVerified records a successful OTP check and moves on to submit.
// A failed check leaves the session in StageOTP; retries are unlimited.
func (s *Session) MarkVerified() error {
	if s.Stage != StageOTP {
		return fmt.Errorf("otp step not active")
	}
	s.Verified = true
	s.Stage = StageSubmit
	return nil
}

// OrderInput builds the immutable payload handed to order creation.
func (s *Session) OrderInput(lines []models.OrderLine) models.OrderInput {
	return models.OrderInput{
		CustomerID: s.CustomerID,
		Name:       s.Name,
		Phone:      s.Phone,
		Address:    s.Address,
		Latitude:   s.Latitude,
		Longitude:  s.Longitude,
		ShiftID:    s.ShiftID,
		Lines:      lines,
	}
}

// Complete records the created order and terminates the session.
func (s *Session) Complete(orderID string) {
	s.OrderID = orderID
	s.Stage = StageComplete
}
