package products

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRefresherAppliesAfterDelay(t *testing.T) {
	applied := make(chan []Product, 1)
	r := NewRefresher(10*time.Millisecond,
		func(ctx context.Context) ([]Product, error) {
			return []Product{{ID: "p1"}}, nil
		},
		func(items []Product) { applied <- items },
		nil,
	)
	defer r.Close()

	r.Schedule()

	select {
	case items := <-applied:
		if len(items) != 1 || items[0].ID != "p1" {
			t.Fatalf("unexpected items: %+v", items)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("refresh never fired")
	}
}

func TestRefresherCloseCancelsPending(t *testing.T) {
	applied := make(chan struct{}, 1)
	r := NewRefresher(30*time.Millisecond,
		func(ctx context.Context) ([]Product, error) { return nil, nil },
		func([]Product) { applied <- struct{}{} },
		nil,
	)

	r.Schedule()
	r.Close()

	select {
	case <-applied:
		t.Fatalf("refresh fired after Close")
	case <-time.After(150 * time.Millisecond):
	}

	// Schedules after Close are ignored.
	r.Schedule()
	select {
	case <-applied:
		t.Fatalf("refresh fired after Close")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRefresherLoadFailureIsSwallowed(t *testing.T) {
	done := make(chan struct{}, 1)
	r := NewRefresher(5*time.Millisecond,
		func(ctx context.Context) ([]Product, error) {
			done <- struct{}{}
			return nil, errors.New("backend down")
		},
		func([]Product) { t.Error("apply must not run on load failure") },
		nil,
	)
	defer r.Close()

	r.Schedule()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("load never ran")
	}
	time.Sleep(20 * time.Millisecond)
}
