// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
)

// Take truncates s to its first n elements. n <= 0 yields Empty. The
// remainder dropped at the truncation point is evaluated once under a
// cancelled context so pending [Finally] compensations on it run.
func Take[T any](s Seq[T], n int) Seq[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return func(ctx context.Context) (Step[T], error) {
		step, err := s.Eval(ctx)
		if err != nil {
			return End[T](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			return End[T](), nil
		}
		if n == 1 {
			return Element(head, abandonRest(tail)), nil
		}
		return Element(head, Take(tail, n-1)), nil
	}
}

// Skip drops the first n elements of s. n <= 0 is the identity.
// The skipped elements are consumed on the first evaluation.
func Skip[T any](s Seq[T], n int) Seq[T] {
	if n <= 0 {
		return s
	}
	return func(ctx context.Context) (Step[T], error) {
		cur := s
		for i := n; i > 0; i-- {
			step, err := cur.Eval(ctx)
			if err != nil {
				return End[T](), err
			}
			_, tail, ok := step.Element()
			if !ok {
				return End[T](), nil
			}
			cur = tail
		}
		return cur.Eval(ctx)
	}
}

// TakeWhileAsync emits elements while p holds. At most one element is
// evaluated past the boundary: the one whose predicate fails. The remainder
// dropped at the boundary gets [Take]'s truncation-cleanup treatment.
func TakeWhileAsync[T any](s Seq[T], p func(context.Context, T) (bool, error)) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		step, err := s.Eval(ctx)
		if err != nil {
			return End[T](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			return End[T](), nil
		}
		keep, err := p(ctx, head)
		if err != nil {
			return End[T](), err
		}
		if !keep {
			abandon(ctx, tail)
			return End[T](), nil
		}
		return Element(head, TakeWhileAsync(tail, p)), nil
	}
}

// TakeWhile emits elements while p holds.
func TakeWhile[T any](s Seq[T], p func(T) bool) Seq[T] {
	return TakeWhileAsync(s, func(_ context.Context, v T) (bool, error) {
		return p(v), nil
	})
}

// SkipWhileAsync drops elements while p holds; the first element whose
// predicate fails is emitted, then the rest passes through untouched.
func SkipWhileAsync[T any](s Seq[T], p func(context.Context, T) (bool, error)) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		cur := s
		for {
			step, err := cur.Eval(ctx)
			if err != nil {
				return End[T](), err
			}
			head, tail, ok := step.Element()
			if !ok {
				return End[T](), nil
			}
			skip, err := p(ctx, head)
			if err != nil {
				return End[T](), err
			}
			if !skip {
				return Element(head, tail), nil
			}
			cur = tail
		}
	}
}

// SkipWhile drops elements while p holds.
func SkipWhile[T any](s Seq[T], p func(T) bool) Seq[T] {
	return SkipWhileAsync(s, func(_ context.Context, v T) (bool, error) {
		return p(v), nil
	})
}

// BufferByCount groups elements into arrays of the given size in arrival
// order; the final group may be shorter. size <= 0 is a usage error and
// panics at call time.
func BufferByCount[T any](s Seq[T], size int) Seq[[]T] {
	if size <= 0 {
		panic("aseq: non-positive buffer size")
	}
	return bufferSeq(s, size)
}

func bufferSeq[T any](s Seq[T], size int) Seq[[]T] {
	return func(ctx context.Context) (Step[[]T], error) {
		group := make([]T, 0, size)
		cur := s
		for len(group) < size {
			step, err := cur.Eval(ctx)
			if err != nil {
				return End[[]T](), err
			}
			head, tail, ok := step.Element()
			if !ok {
				if len(group) == 0 {
					return End[[]T](), nil
				}
				return Element(group, Empty[[]T]()), nil
			}
			group = append(group, head)
			cur = tail
		}
		return Element(group, bufferSeq(cur, size)), nil
	}
}
