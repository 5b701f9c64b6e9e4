// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"code.hybscloud.com/aseq"
)

// mustSlice drains s to a slice, failing the test on evaluation error.
func mustSlice[T any](t *testing.T, s aseq.Seq[T]) []T {
	t.Helper()
	out, err := aseq.ToSlice(context.Background(), s)
	if err != nil {
		t.Fatalf("ToSlice error: %v", err)
	}
	return out
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// countingSeq yields xs in order, counting element evaluations. Used to
// observe laziness, backpressure, and short-circuiting.
func countingSeq[T any](xs []T, n *atomic.Int64) aseq.Seq[T] {
	return aseq.UnfoldAsync(0, func(_ context.Context, i int) (T, int, bool, error) {
		if i >= len(xs) {
			var zero T
			return zero, i, false, nil
		}
		n.Add(1)
		return xs[i], i + 1, true, nil
	})
}

// eventually polls cond until true or the deadline passes.
func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}

// testSource is a manually driven push source for bridge tests.
type testSource[T any] struct {
	mu        sync.Mutex
	obs       aseq.Observer[T]
	cancelled bool
}

func (s *testSource[T]) Subscribe(obs aseq.Observer[T]) func() {
	s.mu.Lock()
	s.obs = obs
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.cancelled = true
		s.obs = nil
		s.mu.Unlock()
	}
}

func (s *testSource[T]) observer() aseq.Observer[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.obs
}

func (s *testSource[T]) subscribed() bool {
	return s.observer() != nil
}

func (s *testSource[T]) isCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

func (s *testSource[T]) push(v T) {
	if o := s.observer(); o != nil {
		o.OnNext(v)
	}
}

func (s *testSource[T]) complete() {
	if o := s.observer(); o != nil {
		o.OnCompleted()
	}
}

func (s *testSource[T]) fail(err error) {
	if o := s.observer(); o != nil {
		o.OnError(err)
	}
}

// recordingObserver collects push notifications for pull-to-push tests.
type recordingObserver[T any] struct {
	mu   sync.Mutex
	got  []T
	err  error
	done chan struct{}
}

func newRecordingObserver[T any]() *recordingObserver[T] {
	return &recordingObserver[T]{done: make(chan struct{})}
}

func (o *recordingObserver[T]) OnNext(v T) {
	o.mu.Lock()
	o.got = append(o.got, v)
	o.mu.Unlock()
}

func (o *recordingObserver[T]) OnError(err error) {
	o.mu.Lock()
	o.err = err
	o.mu.Unlock()
	close(o.done)
}

func (o *recordingObserver[T]) OnCompleted() {
	close(o.done)
}

func (o *recordingObserver[T]) values() []T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]T(nil), o.got...)
}
