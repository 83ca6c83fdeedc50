package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatusBackend struct {
	status string
	err    error
	calls  int
}

func (f *fakeStatusBackend) CheckPaymentStatus(ctx context.Context, orderID int64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.status, nil
}

type fakeClearableCart struct {
	clearCalls int
}

func (f *fakeClearableCart) Clear() { f.clearCalls++ }

func TestReconcileMissingOrderReferenceMakesNoBackendCall(t *testing.T) {
	for _, raw := range []string{"", "abc", "-1", "0", "12x"} {
		fb := &fakeStatusBackend{}
		cart := &fakeClearableCart{}
		rec := NewReconciler(fb, cart, nil)

		decision := rec.Reconcile(context.Background(), raw)

		assert.Equal(t, OutcomeMissingRef, decision.Outcome, "orderId=%q", raw)
		assert.Equal(t, "/checkout", decision.Redirect)
		assert.Zero(t, fb.calls, "orderId=%q must not reach the backend", raw)
		assert.Zero(t, cart.clearCalls)
	}
}

func TestReconcilePaidClearsCartAndRedirectsToConfirmation(t *testing.T) {
	fb := &fakeStatusBackend{status: "paid"}
	cart := &fakeClearableCart{}
	rec := NewReconciler(fb, cart, nil)

	decision := rec.Reconcile(context.Background(), "42")

	assert.Equal(t, OutcomePaid, decision.Outcome)
	assert.Equal(t, int64(42), decision.OrderID)
	assert.Equal(t, "/order-confirmation/42", decision.Redirect)
	assert.Equal(t, 1, cart.clearCalls)
	assert.Equal(t, 1, fb.calls, "exactly one status check per invocation")
}

func TestReconcileFailedKeepsCart(t *testing.T) {
	fb := &fakeStatusBackend{status: "failed"}
	cart := &fakeClearableCart{}
	rec := NewReconciler(fb, cart, nil)

	decision := rec.Reconcile(context.Background(), "42")

	assert.Equal(t, OutcomeFailed, decision.Outcome)
	assert.Equal(t, "/checkout", decision.Redirect)
	assert.Zero(t, cart.clearCalls)
}

func TestReconcileUnknownStatusIsPending(t *testing.T) {
	fb := &fakeStatusBackend{status: "created"}
	rec := NewReconciler(fb, &fakeClearableCart{}, nil)

	decision := rec.Reconcile(context.Background(), "42")

	assert.Equal(t, OutcomePending, decision.Outcome)
	assert.Contains(t, decision.Message, "created")
	assert.Equal(t, "/checkout", decision.Redirect)
}

func TestReconcileCheckFailureIsUnverifiedNotFailed(t *testing.T) {
	fb := &fakeStatusBackend{err: errors.New("gateway timeout")}
	cart := &fakeClearableCart{}
	rec := NewReconciler(fb, cart, nil)

	decision := rec.Reconcile(context.Background(), "42")

	assert.Equal(t, OutcomeUnverified, decision.Outcome)
	assert.Equal(t, "/checkout", decision.Redirect)
	assert.Zero(t, cart.clearCalls)
	assert.Equal(t, 1, fb.calls, "no retry loop inside reconcile")
}

type recordingReconcilePublisher struct {
	outcomes []string
}

func (r *recordingReconcilePublisher) PaymentReconciled(ctx context.Context, orderID int64, outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func TestReconcilePublishesOutcome(t *testing.T) {
	fb := &fakeStatusBackend{status: "paid"}
	pub := &recordingReconcilePublisher{}
	rec := NewReconciler(fb, &fakeClearableCart{}, pub)

	_ = rec.Reconcile(context.Background(), "42")

	require.Equal(t, []string{"PAID"}, pub.outcomes)
}
