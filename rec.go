// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
	"iter"
)

// Unfold generates a sequence from seed. f returns the next element, the
// next state, and false to terminate. f runs once per produced step.
func Unfold[S, T any](seed S, f func(S) (T, S, bool)) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		if err := ctx.Err(); err != nil {
			return End[T](), err
		}
		v, next, ok := f(seed)
		if !ok {
			return End[T](), nil
		}
		return Element(v, Unfold(next, f)), nil
	}
}

// UnfoldAsync is Unfold with a suspending generator. The generator may
// block; it observes ctx for cancellation.
func UnfoldAsync[S, T any](seed S, f func(context.Context, S) (T, S, bool, error)) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		if err := ctx.Err(); err != nil {
			return End[T](), err
		}
		v, next, ok, err := f(ctx, seed)
		if err != nil {
			return End[T](), err
		}
		if !ok {
			return End[T](), nil
		}
		return Element(v, UnfoldAsync(next, f)), nil
	}
}

// Init returns the sequence f(0), f(1), …, f(n-1). n <= 0 yields Empty.
func Init[T any](n int, f func(int) T) Seq[T] {
	return Unfold(0, func(i int) (T, int, bool) {
		if i >= n {
			var zero T
			return zero, i, false
		}
		return f(i), i + 1, true
	})
}

// Replicate returns the sequence repeating v n times.
func Replicate[T any](n int, v T) Seq[T] {
	return Init(n, func(int) T { return v })
}

// OfSlice returns the sequence of the slice's elements in order.
// The slice is not copied; it must not be mutated while the sequence is live.
func OfSlice[T any](xs []T) Seq[T] {
	return ofSliceFrom(xs, 0)
}

func ofSliceFrom[T any](xs []T, i int) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		if err := ctx.Err(); err != nil {
			return End[T](), err
		}
		if i >= len(xs) {
			return End[T](), nil
		}
		return Element(xs[i], ofSliceFrom(xs, i+1)), nil
	}
}

// OfSeq adapts a Go range-over-func iterator into a lazy sequence. The
// iterator is started on first evaluation via iter.Pull and stopped when the
// sequence reaches End or an evaluation observes cancellation.
//
// The pull handle is shared along the chain: re-evaluating an already
// consumed position advances the underlying iterator rather than replaying
// it. Use [Cache] when the result must be re-readable.
func OfSeq[T any](it iter.Seq[T]) Seq[T] {
	return Delay(func() Seq[T] {
		next, stop := iter.Pull(it)
		return pullSeq(next, stop)
	})
}

func pullSeq[T any](next func() (T, bool), stop func()) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		if err := ctx.Err(); err != nil {
			stop()
			return End[T](), err
		}
		v, ok := next()
		if !ok {
			stop()
			return End[T](), nil
		}
		return Element(v, pullSeq(next, stop)), nil
	}
}

// OfChan returns the sequence of values received from ch, ending when ch is
// closed. Each evaluation suspends until a value, close, or cancellation.
func OfChan[T any](ch <-chan T) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		select {
		case <-ctx.Done():
			return End[T](), ctx.Err()
		case v, ok := <-ch:
			if !ok {
				return End[T](), nil
			}
			return Element(v, OfChan(ch)), nil
		}
	}
}
