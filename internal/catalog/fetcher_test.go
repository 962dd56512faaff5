package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranesta/storefront/internal/domain"
)

type sourceFunc func(ctx context.Context, category string) ([]domain.Product, error)

func (f sourceFunc) Products(ctx context.Context, category string) ([]domain.Product, error) {
	return f(ctx, category)
}

type statusRecorder struct {
	mu   sync.Mutex
	last string
}

func (r *statusRecorder) set(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = msg
}

func (r *statusRecorder) get() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func TestLoad_ReplacesListWholesale(t *testing.T) {
	status := &statusRecorder{}
	calls := 0
	f := NewFetcher(sourceFunc(func(ctx context.Context, category string) ([]domain.Product, error) {
		calls++
		if calls == 1 {
			return []domain.Product{{ID: "p1"}, {ID: "p2"}}, nil
		}
		return []domain.Product{{ID: "p3"}}, nil
	}), status.set)

	f.Load(context.Background(), "all")
	require.Len(t, f.Products(), 2)

	f.Load(context.Background(), "silver")
	got := f.Products()
	require.Len(t, got, 1)
	assert.Equal(t, "p3", got[0].ID)
	assert.False(t, f.Loading())
}

func TestLoad_FailureKeepsPreviousListAndResetsFlag(t *testing.T) {
	status := &statusRecorder{}
	fail := false
	f := NewFetcher(sourceFunc(func(ctx context.Context, category string) ([]domain.Product, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return []domain.Product{{ID: "p1"}}, nil
	}), status.set)

	f.Load(context.Background(), "all")
	require.Len(t, f.Products(), 1)

	fail = true
	f.Load(context.Background(), "silver")

	assert.Len(t, f.Products(), 1, "failed load must not touch the held list")
	assert.False(t, f.Loading())
	assert.Equal(t, LoadFailedMessage, status.get())
}

func TestLoad_StaleResponseIsDiscarded(t *testing.T) {
	status := &statusRecorder{}

	slowStarted := make(chan struct{})
	release := make(chan struct{})
	f := NewFetcher(sourceFunc(func(ctx context.Context, category string) ([]domain.Product, error) {
		if category == "silver" {
			close(slowStarted)
			<-release // hold the first request until the second finished
			return []domain.Product{{ID: "stale"}}, nil
		}
		return []domain.Product{{ID: "fresh"}}, nil
	}), status.set)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.Load(context.Background(), "silver")
	}()

	<-slowStarted
	f.Load(context.Background(), "oxidised")
	close(release)
	wg.Wait()

	got := f.Products()
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].ID, "the later selection must win regardless of arrival order")
	assert.False(t, f.Loading())
}

func TestLoad_StaleFailureEmitsNoStatus(t *testing.T) {
	status := &statusRecorder{}

	slowStarted := make(chan struct{})
	release := make(chan struct{})
	f := NewFetcher(sourceFunc(func(ctx context.Context, category string) ([]domain.Product, error) {
		if category == "silver" {
			close(slowStarted)
			<-release
			return nil, errors.New("timeout")
		}
		return []domain.Product{{ID: "fresh"}}, nil
	}), status.set)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.Load(context.Background(), "silver")
	}()

	<-slowStarted
	f.Load(context.Background(), "oxidised")
	close(release)
	wg.Wait()

	assert.Empty(t, status.get(), "a superseded failure must stay silent")
	require.Len(t, f.Products(), 1)
}
