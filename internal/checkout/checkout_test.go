package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranesta/storefront/internal/api"
	"github.com/pranesta/storefront/internal/cart"
	"github.com/pranesta/storefront/internal/domain"
)

type backendMock struct {
	orderErr   error
	intentErr  error
	confirmErr error

	orderCalls   int
	intentCalls  int
	confirmCalls int

	gotOrder     api.OrderRequest
	gotOrderID   string
	gotReference string
	gotSuccess   bool
}

func (b *backendMock) CreateOrder(ctx context.Context, order api.OrderRequest) (string, error) {
	b.orderCalls++
	b.gotOrder = order
	if b.orderErr != nil {
		return "", b.orderErr
	}
	return "ord-1", nil
}

func (b *backendMock) CreatePaymentIntent(ctx context.Context, orderID string) (string, error) {
	b.intentCalls++
	b.gotOrderID = orderID
	if b.intentErr != nil {
		return "", b.intentErr
	}
	return "pi_abc", nil
}

func (b *backendMock) ConfirmPayment(ctx context.Context, orderID, reference string, success bool) error {
	b.confirmCalls++
	b.gotReference = reference
	b.gotSuccess = success
	return b.confirmErr
}

func setup(t *testing.T, backend *backendMock) (*Orchestrator, *cart.Store, *[]string) {
	t.Helper()
	store := cart.NewStore()
	var statuses []string
	o := NewOrchestrator(backend, store, func(msg string) {
		statuses = append(statuses, msg)
	})
	return o, store, &statuses
}

func TestCheckout_EmptyCartIsNoOp(t *testing.T) {
	backend := &backendMock{}
	o, _, statuses := setup(t, backend)

	o.Checkout(context.Background())

	assert.Zero(t, backend.orderCalls)
	assert.Zero(t, backend.intentCalls)
	assert.Zero(t, backend.confirmCalls)
	assert.Empty(t, *statuses)
}

func TestCheckout_FullSuccess(t *testing.T) {
	backend := &backendMock{}
	o, store, statuses := setup(t, backend)
	store.Add(domain.Product{ID: "p1", Title: "Silver Ring", Price: 100})
	store.Add(domain.Product{ID: "p1", Title: "Silver Ring", Price: 100})

	o.Checkout(context.Background())

	require.Equal(t, 1, backend.orderCalls)
	require.Equal(t, 1, backend.intentCalls)
	require.Equal(t, 1, backend.confirmCalls)

	// Order body carries the cart lines plus the placeholder identity.
	require.Len(t, backend.gotOrder.Items, 1)
	assert.Equal(t, 2, backend.gotOrder.Items[0].Qty)
	assert.Equal(t, "Guest", backend.gotOrder.CustomerName)
	assert.Equal(t, "guest@example.com", backend.gotOrder.CustomerEmail)

	// Each step feeds the next.
	assert.Equal(t, "ord-1", backend.gotOrderID)
	assert.Equal(t, "pi_abc", backend.gotReference)
	assert.True(t, backend.gotSuccess)

	assert.Equal(t, 0, store.Len(), "cart clears on full success")
	require.NotEmpty(t, *statuses)
	assert.Equal(t, SuccessMessage, (*statuses)[len(*statuses)-1])
	assert.Contains(t, *statuses, "Payment initiated. Reference: pi_abc")
}

func TestCheckout_OrderFailureSurfacesDetailAndKeepsCart(t *testing.T) {
	backend := &backendMock{
		orderErr: &api.BackendError{StatusCode: http.StatusBadRequest, Detail: "Out of stock"},
	}
	o, store, statuses := setup(t, backend)
	store.Add(domain.Product{ID: "p1", Title: "Silver Ring", Price: 100})

	o.Checkout(context.Background())

	assert.Equal(t, "Out of stock", (*statuses)[len(*statuses)-1])
	assert.Equal(t, 1, store.Len(), "cart must survive a failed checkout")
	assert.Zero(t, backend.intentCalls, "sequence aborts at the failed step")
	assert.Zero(t, backend.confirmCalls)
}

func TestCheckout_OrderTransportFailureUsesFallback(t *testing.T) {
	backend := &backendMock{orderErr: errors.New("connection refused")}
	o, store, statuses := setup(t, backend)
	store.Add(domain.Product{ID: "p1", Price: 100})

	o.Checkout(context.Background())

	assert.Equal(t, "Failed to create order", (*statuses)[len(*statuses)-1])
	assert.Equal(t, 1, store.Len())
}

func TestCheckout_IntentFailureAborts(t *testing.T) {
	backend := &backendMock{
		intentErr: &api.BackendError{StatusCode: http.StatusBadGateway, Detail: ""},
	}
	o, store, statuses := setup(t, backend)
	store.Add(domain.Product{ID: "p1", Price: 100})

	o.Checkout(context.Background())

	assert.Equal(t, "Failed to start payment", (*statuses)[len(*statuses)-1])
	assert.Equal(t, 1, store.Len())
	assert.Zero(t, backend.confirmCalls)
}

func TestCheckout_ConfirmFailureKeepsCart(t *testing.T) {
	backend := &backendMock{
		confirmErr: &api.BackendError{StatusCode: http.StatusPaymentRequired, Detail: "Card declined"},
	}
	o, store, statuses := setup(t, backend)
	store.Add(domain.Product{ID: "p1", Price: 100})

	o.Checkout(context.Background())

	assert.Equal(t, "Card declined", (*statuses)[len(*statuses)-1])
	assert.Equal(t, 1, store.Len())
	// The interim initiated notice was still shown before the failure.
	assert.Contains(t, *statuses, "Payment initiated. Reference: pi_abc")
}
