package checkout

import (
	"context"
	"errors"
	"testing"

	"souq/cart"
	"souq/models"
)

type memStorage struct {
	data map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string]string)}
}

func (m *memStorage) Get(_ context.Context, key string) (string, error) {
	return m.data[key], nil
}

func (m *memStorage) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

type fakeOrders struct {
	calls int
	fail  bool
}

func (f *fakeOrders) Create(_ context.Context, input models.OrderInput) (models.Order, error) {
	f.calls++
	if f.fail {
		return models.Order{}, errors.New("persistence down")
	}
	return models.Order{OrderID: "ord-1", OrderNumber: "ORD100001", Lines: input.Lines, Status: models.OrderPending}, nil
}

type fakeShifts struct{ active map[string]bool }

func (f *fakeShifts) ActiveShift(_ context.Context, id string) (bool, error) {
	return f.active[id], nil
}

type fakeOTP struct{ code string }

func (f *fakeOTP) Verify(_ context.Context, _, code string) (bool, error) {
	return code == f.code, nil
}

func newTestOrchestrator(orders *fakeOrders) (*Orchestrator, *cart.Store) {
	storage := newMemStorage()
	carts := cart.NewStore(storage)
	return &Orchestrator{
		Sessions: NewSessionStore(storage),
		Carts:    carts,
		Orders:   orders,
		Shifts:   &fakeShifts{active: map[string]bool{"morning": true}},
		OTP:      &fakeOTP{code: "1234"},
	}, carts
}

func seedCart(t *testing.T, carts *cart.Store, cartID string) {
	t.Helper()
	c := cart.New()
	c.AddItem(models.ProductSnapshot{ProductID: "p1", Name: "Rice", Price: 10}, 2)
	if err := carts.Save(context.Background(), cartID, c); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
}

func TestIdentityRequiresNameAndPhone(t *testing.T) {
	orc, _ := newTestOrchestrator(&fakeOrders{})
	sess := NewSession("s1", "c1")

	err := orc.Identity(context.Background(), sess, "", "0501234567", "", false)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}
	if sess.Stage != StageIdentity {
		t.Fatalf("stage must not advance, got %s", sess.Stage)
	}
}

func TestAuthenticatedIdentitySkipsOTP(t *testing.T) {
	orc, _ := newTestOrchestrator(&fakeOrders{})
	sess := NewSession("s1", "c1")
	ctx := context.Background()

	if err := orc.Identity(ctx, sess, "", "", "user-9", true); err != nil {
		t.Fatalf("identity: %v", err)
	}
	if err := orc.Address(ctx, sess, "King Fahd Rd 12", nil, nil, "morning", true); err != nil {
		t.Fatalf("address: %v", err)
	}
	if sess.Stage != StageSubmit {
		t.Fatalf("authenticated session must skip otp, got stage %s", sess.Stage)
	}
}

func TestEmptyAddressBlocksWithoutCallingOrders(t *testing.T) {
	orders := &fakeOrders{}
	orc, _ := newTestOrchestrator(orders)
	sess := NewSession("s1", "c1")
	ctx := context.Background()

	if err := orc.Identity(ctx, sess, "Sara", "0501234567", "", false); err != nil {
		t.Fatalf("identity: %v", err)
	}

	err := orc.Address(ctx, sess, "   ", nil, nil, "morning", true)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "address" {
		t.Fatalf("expected address validation error, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatal("order creation must not be called on validation failure")
	}
}

func TestCoordinatesDegradeToAddress(t *testing.T) {
	orc, _ := newTestOrchestrator(&fakeOrders{})
	sess := NewSession("s1", "c1")
	ctx := context.Background()

	if err := orc.Identity(ctx, sess, "Sara", "0501234567", "", false); err != nil {
		t.Fatalf("identity: %v", err)
	}

	lat, lng := 24.7136, 46.6753
	if err := orc.Address(ctx, sess, "", &lat, &lng, "morning", true); err != nil {
		t.Fatalf("coordinates should satisfy the address requirement: %v", err)
	}
	if sess.Address == "" {
		t.Fatal("address must be derived from coordinates")
	}
}

func TestGuestFlowThroughOTP(t *testing.T) {
	orders := &fakeOrders{}
	orc, carts := newTestOrchestrator(orders)
	seedCart(t, carts, "c1")
	sess := NewSession("s1", "c1")
	ctx := context.Background()

	if err := orc.Identity(ctx, sess, "Sara", "0501234567", "", false); err != nil {
		t.Fatalf("identity: %v", err)
	}
	if err := orc.Address(ctx, sess, "King Fahd Rd 12", nil, nil, "morning", true); err != nil {
		t.Fatalf("address: %v", err)
	}
	if sess.Stage != StageOTP {
		t.Fatalf("guest must pass through otp, got stage %s", sess.Stage)
	}

	// wrong code: stays in otp, retry allowed
	err := orc.VerifyOTP(ctx, sess, "0000")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error on wrong code, got %v", err)
	}
	if sess.Stage != StageOTP {
		t.Fatalf("wrong code must keep stage otp, got %s", sess.Stage)
	}

	if err := orc.VerifyOTP(ctx, sess, "1234"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	order, err := orc.Submit(ctx, sess)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.Status != models.OrderPending {
		t.Fatalf("orders are created pending, got %s", order.Status)
	}
	if sess.Stage != StageComplete {
		t.Fatalf("expected complete, got %s", sess.Stage)
	}

	c, err := carts.Load(ctx, "c1")
	if err != nil {
		t.Fatalf("cart load: %v", err)
	}
	if c.TotalUniqueItems() != 0 {
		t.Fatal("cart must be cleared after a confirmed order")
	}
}

func TestFailedSubmitKeepsCartAndAllowsRetry(t *testing.T) {
	orders := &fakeOrders{fail: true}
	orc, carts := newTestOrchestrator(orders)
	seedCart(t, carts, "c1")
	sess := NewSession("s1", "c1")
	ctx := context.Background()

	if err := orc.Identity(ctx, sess, "", "", "user-9", true); err != nil {
		t.Fatalf("identity: %v", err)
	}
	if err := orc.Address(ctx, sess, "King Fahd Rd 12", nil, nil, "morning", true); err != nil {
		t.Fatalf("address: %v", err)
	}

	_, err := orc.Submit(ctx, sess)
	var serr *SubmissionError
	if !errors.As(err, &serr) {
		t.Fatalf("expected submission error, got %v", err)
	}
	if sess.Stage != StageSubmit {
		t.Fatalf("failed submit must stay in submit, got %s", sess.Stage)
	}

	c, err := carts.Load(ctx, "c1")
	if err != nil {
		t.Fatalf("cart load: %v", err)
	}
	if c.TotalUniqueItems() == 0 {
		t.Fatal("cart must survive a failed submit")
	}

	// retry succeeds without re-entering identity or address
	orders.fail = false
	if _, err := orc.Submit(ctx, sess); err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if orders.calls != 2 {
		t.Fatalf("expected 2 create calls, got %d", orders.calls)
	}
}

func TestInactiveShiftRejected(t *testing.T) {
	orc, _ := newTestOrchestrator(&fakeOrders{})
	sess := NewSession("s1", "c1")
	ctx := context.Background()

	if err := orc.Identity(ctx, sess, "Sara", "0501234567", "", false); err != nil {
		t.Fatalf("identity: %v", err)
	}

	err := orc.Address(ctx, sess, "King Fahd Rd 12", nil, nil, "midnight", true)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "shiftId" {
		t.Fatalf("expected shift validation error, got %v", err)
	}
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	orders := &fakeOrders{}
	orc, _ := newTestOrchestrator(orders)
	sess := NewSession("s1", "c-empty")
	ctx := context.Background()

	if err := orc.Identity(ctx, sess, "", "", "user-9", true); err != nil {
		t.Fatalf("identity: %v", err)
	}
	if err := orc.Address(ctx, sess, "King Fahd Rd 12", nil, nil, "morning", true); err != nil {
		t.Fatalf("address: %v", err)
	}

	_, err := orc.Submit(ctx, sess)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "cart" {
		t.Fatalf("expected cart validation error, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatal("order creation must not be called for an empty cart")
	}
}
