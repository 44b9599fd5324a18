// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/mentormatch/internal/store"
)

type mockGC struct {
	calls atomic.Int32
	err   error
}

func (m *mockGC) RunGC() error {
	m.calls.Add(1)
	return m.err
}

var _ suture.Service = (*StoreGCService)(nil)

func TestNewStoreGCService_DefaultInterval(t *testing.T) {
	t.Parallel()

	svc := NewStoreGCService(&mockGC{}, 0, zerolog.Nop())
	if svc.interval != DefaultGCInterval {
		t.Errorf("interval = %v, want %v", svc.interval, DefaultGCInterval)
	}
	if svc.String() != "store-gc" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestStoreGCService_RunsOnTick(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{"successful runs", nil},
		{"failures are retried", errors.New("value log busy")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gc := &mockGC{err: tt.err}
			svc := NewStoreGCService(gc, 5*time.Millisecond, zerolog.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)
			go func() { errCh <- svc.Serve(ctx) }()

			deadline := time.After(2 * time.Second)
			for gc.calls.Load() < 3 {
				select {
				case <-deadline:
					cancel()
					t.Fatalf("expected at least 3 GC runs, got %d", gc.calls.Load())
				case <-time.After(5 * time.Millisecond):
				}
			}
			cancel()

			if err := <-errCh; !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	}
}

func TestStoreGCService_StopsWhenStoreClosed(t *testing.T) {
	t.Parallel()

	gc := &mockGC{err: fmt.Errorf("run GC: %w", store.ErrClosed)}
	svc := NewStoreGCService(gc, 5*time.Millisecond, zerolog.Nop())

	select {
	case err := <-serveAsync(svc):
		if !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("expected ErrDoNotRestart, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("service did not exit after store was closed")
	}
	if gc.calls.Load() != 1 {
		t.Errorf("expected exactly one GC attempt, got %d", gc.calls.Load())
	}
}

func serveAsync(svc suture.Service) <-chan error {
	ch := make(chan error, 1)
	go func() { ch <- svc.Serve(context.Background()) }()
	return ch
}
