package shutdown

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})

	start := func() error {
		<-stopped
		return http.ErrServerClosed
	}
	stop := func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("stop must get a deadline")
		}
		close(stopped)
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, start, stop, time.Second) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestServeReturnsStartError(t *testing.T) {
	boom := errors.New("address in use")
	err := Serve(context.Background(), func() error { return boom }, func(context.Context) error {
		t.Error("stop must not run when start fails")
		return nil
	}, time.Second)
	if !errors.Is(err, boom) {
		t.Fatalf("Serve = %v", err)
	}
}
