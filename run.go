// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
	"iter"
)

// FoldAsync drives s to End, threading the aggregate through f, and returns
// the final aggregate. The seed is returned for an empty input.
func FoldAsync[T, S any](ctx context.Context, s Seq[T], seed S, f func(context.Context, S, T) (S, error)) (S, error) {
	acc := seed
	cur := s
	for {
		step, err := cur.Eval(ctx)
		if err != nil {
			return acc, err
		}
		head, tail, ok := step.Element()
		if !ok {
			return acc, nil
		}
		acc, err = f(ctx, acc, head)
		if err != nil {
			return acc, err
		}
		cur = tail
	}
}

// Fold drives s to End, threading the aggregate through f.
func Fold[T, S any](ctx context.Context, s Seq[T], seed S, f func(S, T) S) (S, error) {
	return FoldAsync(ctx, s, seed, func(_ context.Context, acc S, v T) (S, error) {
		return f(acc, v), nil
	})
}

// IterAsync drives s to End, applying f to each element in order.
func IterAsync[T any](ctx context.Context, s Seq[T], f func(context.Context, T) error) error {
	_, err := FoldAsync(ctx, s, struct{}{}, func(ctx context.Context, _ struct{}, v T) (struct{}, error) {
		return struct{}{}, f(ctx, v)
	})
	return err
}

// Iter drives s to End, applying f to each element in order.
func Iter[T any](ctx context.Context, s Seq[T], f func(T)) error {
	return IterAsync(ctx, s, func(_ context.Context, v T) error {
		f(v)
		return nil
	})
}

// ToSlice drives s to End and collects all elements in order.
func ToSlice[T any](ctx context.Context, s Seq[T]) ([]T, error) {
	return FoldAsync(ctx, s, []T(nil), func(_ context.Context, acc []T, v T) ([]T, error) {
		return append(acc, v), nil
	})
}

// Length drives s to End and returns the number of elements.
func Length[T any](ctx context.Context, s Seq[T]) (int, error) {
	return FoldAsync(ctx, s, 0, func(_ context.Context, n int, _ T) (int, error) {
		return n + 1, nil
	})
}

// Last drives s to End and returns the final element.
// ok is false for an empty input.
func Last[T any](ctx context.Context, s Seq[T]) (last T, ok bool, err error) {
	err = IterAsync(ctx, s, func(_ context.Context, v T) error {
		last, ok = v, true
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return last, ok, nil
}

// Range drives s, passing each element to yield, until yield returns false
// or s reaches End. Stopping early evaluates the remaining position once
// under a cancelled context so pending [Finally] compensations run.
func Range[T any](ctx context.Context, s Seq[T], yield func(T) bool) error {
	cur := s
	for {
		step, err := cur.Eval(ctx)
		if err != nil {
			return err
		}
		head, tail, ok := step.Element()
		if !ok {
			return nil
		}
		if !yield(head) {
			abandon(ctx, tail)
			return nil
		}
		cur = tail
	}
}

// Values adapts s to Go's range-over-func iteration. An evaluation failure
// stops the loop and is written to *errp (when errp is non-nil) after
// iteration finishes. Early break has [Range]'s scope-exit behavior.
func Values[T any](ctx context.Context, s Seq[T], errp *error) iter.Seq[T] {
	return func(yield func(T) bool) {
		err := Range(ctx, s, yield)
		if errp != nil {
			*errp = err
		}
	}
}
