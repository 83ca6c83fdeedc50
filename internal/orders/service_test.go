package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/fault"
)

type fakeOrdersBackend struct {
	orders map[int64]*domain.Order
	list   []domain.Order

	fetchCalls  []int64
	cancelCalls []int64
	cancelErr   error
}

func (f *fakeOrdersBackend) FetchOrder(ctx context.Context, id int64) (*domain.Order, error) {
	f.fetchCalls = append(f.fetchCalls, id)
	order, ok := f.orders[id]
	if !ok {
		return nil, fault.Remote("fetch order", 404, "order not found", nil)
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrdersBackend) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, len(f.list))
	copy(out, f.list)
	return out, nil
}

func (f *fakeOrdersBackend) CancelOrder(ctx context.Context, id int64) error {
	f.cancelCalls = append(f.cancelCalls, id)
	return f.cancelErr
}

func TestConfirmationPrefersHandoffState(t *testing.T) {
	fb := &fakeOrdersBackend{orders: map[int64]*domain.Order{}}
	svc := NewService(fb)

	handoff := &Confirmation{OrderID: 42, PaymentMethod: domain.PaymentMethodCOD}
	conf, err := svc.Confirmation(context.Background(), 42, handoff)

	require.NoError(t, err)
	assert.Same(t, handoff, conf)
	assert.Empty(t, fb.fetchCalls, "hand-off state saves the re-fetch")
}

func TestConfirmationFallsBackToFetch(t *testing.T) {
	fb := &fakeOrdersBackend{orders: map[int64]*domain.Order{
		42: {
			ID:            42,
			Total:         500,
			PaymentMethod: domain.PaymentMethodUPI,
			PaymentStatus: domain.PaymentStatusPaid,
			Items:         []domain.OrderLine{{ProductID: 1, Name: "Rice 5kg", Quantity: 2, Price: 250}},
		},
	}}
	svc := NewService(fb)

	conf, err := svc.Confirmation(context.Background(), 42, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(42), conf.OrderID)
	assert.Equal(t, domain.PaymentStatusPaid, conf.PaymentStatus)
	assert.Len(t, conf.Items, 1)
}

func TestConfirmationNormalizesMissingFields(t *testing.T) {
	conf := ConfirmationFromOrder(&domain.Order{ID: 7, Total: 100})

	assert.Equal(t, domain.PaymentStatusPending, conf.PaymentStatus)
	assert.NotNil(t, conf.Items)
	assert.Empty(t, conf.Items)
}

func TestHistoryFillsLineItemsPerOrder(t *testing.T) {
	fb := &fakeOrdersBackend{
		list: []domain.Order{{ID: 1}, {ID: 2}},
		orders: map[int64]*domain.Order{
			1: {ID: 1, Items: []domain.OrderLine{{ProductID: 9, Name: "Atta", Quantity: 1, Price: 60}}},
			2: {ID: 2, Items: []domain.OrderLine{{ProductID: 3, Name: "Dal", Quantity: 2, Price: 120}}},
		},
	}
	svc := NewService(fb)

	list, err := svc.History(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Atta", list[0].Items[0].Name)
	assert.Equal(t, "Dal", list[1].Items[0].Name)
	assert.Equal(t, []int64{1, 2}, fb.fetchCalls)
}

func TestCancelPendingOrder(t *testing.T) {
	fb := &fakeOrdersBackend{}
	svc := NewService(fb)
	order := &domain.Order{ID: 5, Status: domain.OrderStatusPending}

	require.NoError(t, svc.Cancel(context.Background(), order))

	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
	assert.Equal(t, domain.CancelledByUser, order.CancelledBy)
	assert.Equal(t, []int64{5}, fb.cancelCalls)
}

func TestCancelAlreadyCancelledIsNoOp(t *testing.T) {
	fb := &fakeOrdersBackend{}
	svc := NewService(fb)
	order := &domain.Order{ID: 5, Status: domain.OrderStatusCancelled, CancelledBy: domain.CancelledByAdmin}

	require.NoError(t, svc.Cancel(context.Background(), order))

	assert.Empty(t, fb.cancelCalls)
	assert.Equal(t, domain.CancelledByAdmin, order.CancelledBy, "repeat cancel never rewrites attribution")
}

func TestCancelNonPendingIsRejected(t *testing.T) {
	fb := &fakeOrdersBackend{}
	svc := NewService(fb)

	for _, status := range []domain.OrderStatus{domain.OrderStatusShipped, domain.OrderStatusDelivered} {
		order := &domain.Order{ID: 5, Status: status}
		err := svc.Cancel(context.Background(), order)
		require.Error(t, err, "status=%s", status)
		assert.True(t, fault.IsValidation(err))
		assert.Equal(t, status, order.Status)
	}
	assert.Empty(t, fb.cancelCalls)
}

func TestCancelBackendFailureKeepsLocalStatus(t *testing.T) {
	fb := &fakeOrdersBackend{cancelErr: errors.New("backend down")}
	svc := NewService(fb)
	order := &domain.Order{ID: 5, Status: domain.OrderStatusPending}

	require.Error(t, svc.Cancel(context.Background(), order))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
}

func TestCancelByIDLooksUpFirst(t *testing.T) {
	fb := &fakeOrdersBackend{orders: map[int64]*domain.Order{
		5: {ID: 5, Status: domain.OrderStatusShipped},
	}}
	svc := NewService(fb)

	_, err := svc.CancelByID(context.Background(), 5)

	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))
	assert.Empty(t, fb.cancelCalls)
}
