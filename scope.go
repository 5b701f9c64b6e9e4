// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
	"errors"
	"io"
)

// Finally arranges for comp to run exactly once when s reaches End or fails
// (cancellation counts as the failure path). On an Element the obligation
// moves to the tail. A panic raised by comp is not caught.
func Finally[T any](s Seq[T], comp func()) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		step, err := s.Eval(ctx)
		if err != nil {
			comp()
			return End[T](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			comp()
			return End[T](), nil
		}
		return Element(head, Finally(tail, comp)), nil
	}
}

// OnError arranges for comp to run with the failure only on the failure
// path, before the failure continues propagating.
func OnError[T any](s Seq[T], comp func(error)) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		step, err := s.Eval(ctx)
		if err != nil {
			comp(err)
			return End[T](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			return End[T](), nil
		}
		return Element(head, OnError(tail, comp)), nil
	}
}

// Using binds r for the dynamic extent of body(r), closing it exactly once
// when the sub-sequence reaches End or fails. The Close error is discarded,
// as a finally-block's would be.
func Using[R io.Closer, T any](r R, body func(R) Seq[T]) Seq[T] {
	return Finally(Delay(func() Seq[T] { return body(r) }), func() {
		_ = r.Close()
	})
}

// Catch intercepts an evaluation failure of s, switching to the handler
// sequence keyed on the failure value. Elements already produced before the
// failure are unaffected. Cancellation is not intercepted: it must unwind.
func Catch[T any](s Seq[T], h func(error) Seq[T]) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		step, err := s.Eval(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return End[T](), err
			}
			return h(err).Eval(ctx)
		}
		head, tail, ok := step.Element()
		if !ok {
			return End[T](), nil
		}
		return Element(head, Catch(tail, h)), nil
	}
}

// abandon evaluates s once under an already-cancelled context so that
// compensations layered on the abandoned position run before the sequence
// is dropped. The resulting cancellation error is discarded.
func abandon[T any](ctx context.Context, s Seq[T]) {
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, _ = s.Eval(cctx)
}

// abandonRest ends the sequence at a truncation point, first poking the
// dropped remainder so compensations layered on it run. No ctx pre-check:
// the poke must happen even when this tail is itself being abandoned.
func abandonRest[T any](rest Seq[T]) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		abandon(ctx, rest)
		return End[T](), ctx.Err()
	}
}
