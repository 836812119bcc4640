// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitStarted(t *testing.T, svc *mockService, times int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for i := 0; i < times; i++ {
		select {
		case <-svc.started:
		case <-deadline:
			t.Fatalf("%s started %d times, want %d", svc.name, svc.starts.Load(), times)
		}
	}
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree: %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("root supervisor is nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want %+v", tree.config, DefaultTreeConfig())
	}
}

func TestNewSupervisorTree_KeepsExplicitValues(t *testing.T) {
	cfg := TreeConfig{
		FailureThreshold: 3,
		FailureDecay:     10,
		FailureBackoff:   time.Second,
		ShutdownTimeout:  2 * time.Second,
	}
	tree, err := NewSupervisorTree(quietLogger(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if tree.config != cfg {
		t.Errorf("config = %+v, want %+v", tree.config, cfg)
	}
}

func TestSupervisorTree_StartsBothLayers(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}

	data := newMockService("catalog-stats", 0)
	api := newMockService("http-server", 0)
	tree.AddDataService(data)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	waitStarted(t, data, 1)
	waitStarted(t, api, 1)

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}

	if report, err := tree.UnstoppedServiceReport(); err != nil || len(report) != 0 {
		t.Errorf("unstopped services = %v, err = %v", report, err)
	}
}

func TestSupervisorTree_RestartsFailingService(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}

	flaky := newMockService("flaky-poller", 2)
	stable := newMockService("http-server", 0)
	tree.AddDataService(flaky)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	// Two failures then a run that lasts until cancel.
	waitStarted(t, flaky, 3)
	waitStarted(t, stable, 1)

	if got := stable.starts.Load(); got != 1 {
		t.Errorf("api service restarted: %d starts", got)
	}

	cancel()
	<-errCh
}

func TestSupervisorTree_WaitReturnsAfterCancel(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}

	svc := newMockService("http-server", 0)
	tree.AddAPIService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)
	waitStarted(t, svc, 1)

	cancel()

	done := make(chan error, 1)
	go func() { done <- tree.Wait(errCh) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Wait() = %v, want nil after cancel", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Wait() still blocked 3s after cancel")
	}

	// The single result has been consumed; nothing else arrives.
	select {
	case extra := <-errCh:
		t.Errorf("unexpected second value on errCh: %v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSupervisorTree_WaitPassesThroughErrors(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	errCh := make(chan error, 1)
	errCh <- boom
	if got := tree.Wait(errCh); !errors.Is(got, boom) {
		t.Errorf("Wait() = %v, want %v", got, boom)
	}

	wrapped := make(chan error, 1)
	wrapped <- fmt.Errorf("serve: %w", context.Canceled)
	if got := tree.Wait(wrapped); got != nil {
		t.Errorf("Wait() = %v, want nil for canceled", got)
	}
}
