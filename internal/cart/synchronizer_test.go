package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
	"github.com/KishoreBalajiP/eco-frontend/internal/session"
)

type fakeCartBackend struct {
	cart []domain.CartLine
	err  error

	fetchCalls  int
	addCalls    []addCall
	removeCalls []int64
}

type addCall struct {
	productID int64
	quantity  int
}

func (f *fakeCartBackend) FetchCart(ctx context.Context) ([]domain.CartLine, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.cart, nil
}

func (f *fakeCartBackend) AddToCart(ctx context.Context, productID int64, quantity int) ([]domain.CartLine, error) {
	f.addCalls = append(f.addCalls, addCall{productID, quantity})
	if f.err != nil {
		return nil, f.err
	}
	return f.cart, nil
}

func (f *fakeCartBackend) RemoveFromCart(ctx context.Context, productID int64) ([]domain.CartLine, error) {
	f.removeCalls = append(f.removeCalls, productID)
	if f.err != nil {
		return nil, f.err
	}
	return f.cart, nil
}

func authedSession() *session.Session {
	return &session.Session{
		ID:         "sid-1",
		Status:     session.StatusAuthenticated,
		Credential: "token",
		Identity:   domain.Identity{ID: 1, Name: "Asha", Role: domain.RoleUser},
	}
}

func TestFetchReplacesMirrorWithServerCart(t *testing.T) {
	backend := &fakeCartBackend{cart: []domain.CartLine{
		{ProductID: 1, Name: "Rice 5kg", UnitPrice: 250, Quantity: 2},
	}}
	sync := NewSynchronizer(backend, authedSession())

	require.NoError(t, sync.Fetch(context.Background()))

	assert.Len(t, sync.Lines(), 1)
	assert.Equal(t, 500.0, sync.Total())
	assert.Equal(t, 1, backend.fetchCalls)
}

func TestFetchSignedOutEmptiesMirrorWithoutBackendCall(t *testing.T) {
	backend := &fakeCartBackend{cart: []domain.CartLine{{ProductID: 1, Quantity: 1}}}
	sess := &session.Session{ID: "sid-1", Status: session.StatusUnauthenticated}
	sync := NewSynchronizer(backend, sess)

	require.NoError(t, sync.Fetch(context.Background()))

	assert.True(t, sync.Empty())
	assert.Zero(t, backend.fetchCalls)
}

func TestFetchFailureKeepsPreviousMirror(t *testing.T) {
	backend := &fakeCartBackend{cart: []domain.CartLine{
		{ProductID: 1, Name: "Rice 5kg", UnitPrice: 250, Quantity: 2},
	}}
	sync := NewSynchronizer(backend, authedSession())
	require.NoError(t, sync.Fetch(context.Background()))

	backend.err = errors.New("backend down")
	err := sync.Fetch(context.Background())

	require.Error(t, err)
	assert.Len(t, sync.Lines(), 1, "stale mirror must survive a failed refresh")
}

func TestAddAdoptsServerResponseInsteadOfLocalMath(t *testing.T) {
	// Server applies its own stock clamp: asked for 5, granted 3.
	backend := &fakeCartBackend{cart: []domain.CartLine{
		{ProductID: 7, Name: "Sugar 1kg", UnitPrice: 45, Quantity: 3},
	}}
	sync := NewSynchronizer(backend, authedSession())

	require.NoError(t, sync.Add(context.Background(), 7, 5))

	lines := sync.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 135.0, sync.Total())
}

func TestAddFailureLeavesMirrorUntouched(t *testing.T) {
	backend := &fakeCartBackend{cart: []domain.CartLine{
		{ProductID: 1, UnitPrice: 10, Quantity: 1},
	}}
	sync := NewSynchronizer(backend, authedSession())
	require.NoError(t, sync.Fetch(context.Background()))

	backend.err = errors.New("insufficient stock")
	require.Error(t, sync.Add(context.Background(), 1, 99))

	require.Len(t, sync.Lines(), 1)
	assert.Equal(t, 1, sync.Lines()[0].Quantity)
}

func TestSetQuantityRoutesToAddOrRemove(t *testing.T) {
	backend := &fakeCartBackend{}
	sync := NewSynchronizer(backend, authedSession())

	require.NoError(t, sync.SetQuantity(context.Background(), 7, 4))
	require.NoError(t, sync.SetQuantity(context.Background(), 7, 0))
	require.NoError(t, sync.SetQuantity(context.Background(), 7, -2))

	require.Len(t, backend.addCalls, 1)
	assert.Equal(t, addCall{productID: 7, quantity: 4}, backend.addCalls[0])
	assert.Equal(t, []int64{7, 7}, backend.removeCalls)
}

func TestClearIsLocalOnly(t *testing.T) {
	backend := &fakeCartBackend{cart: []domain.CartLine{{ProductID: 1, Quantity: 1}}}
	sync := NewSynchronizer(backend, authedSession())
	require.NoError(t, sync.Fetch(context.Background()))

	sync.Clear()

	assert.True(t, sync.Empty())
	assert.Equal(t, 1, backend.fetchCalls)
	assert.Empty(t, backend.removeCalls)
}

func TestLinesReturnsACopy(t *testing.T) {
	backend := &fakeCartBackend{cart: []domain.CartLine{{ProductID: 1, UnitPrice: 10, Quantity: 1}}}
	sync := NewSynchronizer(backend, authedSession())
	require.NoError(t, sync.Fetch(context.Background()))

	lines := sync.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, sync.Lines()[0].Quantity)
}
