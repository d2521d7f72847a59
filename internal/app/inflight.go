package app

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
)

// inflight admits requests until closed and lets shutdown wait for the
// admitted ones to finish
type inflight struct {
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
	active atomic.Int64

	// done is cancelled by close for components that watch for shutdown
	done   context.Context
	cancel context.CancelFunc
}

func newInflight() *inflight {
	done, cancel := context.WithCancel(context.Background())
	return &inflight{done: done, cancel: cancel}
}

// admit registers a request, false once closed
func (f *inflight) admit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.wg.Add(1)
	f.active.Add(1)
	return true
}

func (f *inflight) release() {
	f.active.Add(-1)
	f.wg.Done()
}

func (f *inflight) close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.cancel()
}

func (f *inflight) count() int64 {
	return f.active.Load()
}

// wait reports whether every admitted request finished before ctx ended
func (f *inflight) wait(ctx context.Context) bool {
	drained := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return true
	case <-ctx.Done():
		return false
	}
}

// middleware answers 503 after close and tracks everything else
func (f *inflight) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !f.admit() {
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}
		defer f.release()

		next.ServeHTTP(w, r)
	})
}
