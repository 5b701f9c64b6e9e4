// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
)

// Append concatenates a and b. Associative; Empty is the identity.
func Append[T any](a, b Seq[T]) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		step, err := a.Eval(ctx)
		if err != nil {
			return End[T](), err
		}
		if head, tail, ok := step.Element(); ok {
			return Element(head, Append(tail, b)), nil
		}
		return b.Eval(ctx)
	}
}

// Collect is monadic bind: for each element of s, the elements of f(element)
// are spliced into the output in order, depth-first, before the next input
// element is pulled.
func Collect[T, U any](s Seq[T], f func(T) Seq[U]) Seq[U] {
	return func(ctx context.Context) (Step[U], error) {
		step, err := s.Eval(ctx)
		if err != nil {
			return End[U](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			return End[U](), nil
		}
		return Append(f(head), Collect(tail, f)).Eval(ctx)
	}
}

// Concat flattens a sequence of sequences, preserving order.
func Concat[T any](ss Seq[Seq[T]]) Seq[T] {
	return Collect(ss, func(s Seq[T]) Seq[T] { return s })
}

// MapAsync transforms each element with a suspending callback. The upstream
// is asked for its next element only after the callback for the current
// element completes; there is no read-ahead.
func MapAsync[T, U any](s Seq[T], f func(context.Context, T) (U, error)) Seq[U] {
	return func(ctx context.Context) (Step[U], error) {
		step, err := s.Eval(ctx)
		if err != nil {
			return End[U](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			return End[U](), nil
		}
		v, err := f(ctx, head)
		if err != nil {
			return End[U](), err
		}
		return Element(v, MapAsync(tail, f)), nil
	}
}

// Map transforms each element with a pure callback.
func Map[T, U any](s Seq[T], f func(T) U) Seq[U] {
	return MapAsync(s, func(_ context.Context, v T) (U, error) {
		return f(v), nil
	})
}

// FilterAsync keeps the elements for which p returns true. Rejected
// elements are consumed within the same evaluation.
func FilterAsync[T any](s Seq[T], p func(context.Context, T) (bool, error)) Seq[T] {
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
			keep, err := p(ctx, head)
			if err != nil {
				return End[T](), err
			}
			if keep {
				return Element(head, FilterAsync(tail, p)), nil
			}
			cur = tail
		}
	}
}

// Filter keeps the elements for which p returns true.
func Filter[T any](s Seq[T], p func(T) bool) Seq[T] {
	return FilterAsync(s, func(_ context.Context, v T) (bool, error) {
		return p(v), nil
	})
}

// ChooseAsync is filter and transform in one pass: elements for which f
// returns false are dropped, the rest are replaced by f's result.
func ChooseAsync[T, U any](s Seq[T], f func(context.Context, T) (U, bool, error)) Seq[U] {
	return func(ctx context.Context) (Step[U], error) {
		cur := s
		for {
			step, err := cur.Eval(ctx)
			if err != nil {
				return End[U](), err
			}
			head, tail, ok := step.Element()
			if !ok {
				return End[U](), nil
			}
			v, keep, err := f(ctx, head)
			if err != nil {
				return End[U](), err
			}
			if keep {
				return Element(v, ChooseAsync(tail, f)), nil
			}
			cur = tail
		}
	}
}

// Choose is filter and transform in one pass with a pure callback.
func Choose[T, U any](s Seq[T], f func(T) (U, bool)) Seq[U] {
	return ChooseAsync(s, func(_ context.Context, v T) (U, bool, error) {
		u, ok := f(v)
		return u, ok, nil
	})
}

// ScanAsync emits the running aggregate after each element: one output per
// input element, seed not emitted.
func ScanAsync[T, S any](s Seq[T], seed S, f func(context.Context, S, T) (S, error)) Seq[S] {
	return func(ctx context.Context) (Step[S], error) {
		step, err := s.Eval(ctx)
		if err != nil {
			return End[S](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			return End[S](), nil
		}
		next, err := f(ctx, seed, head)
		if err != nil {
			return End[S](), err
		}
		return Element(next, ScanAsync(tail, next, f)), nil
	}
}

// Scan emits the running aggregate after each element.
func Scan[T, S any](s Seq[T], seed S, f func(S, T) S) Seq[S] {
	return ScanAsync(s, seed, func(_ context.Context, acc S, v T) (S, error) {
		return f(acc, v), nil
	})
}

// Pairwise emits (previous, current) for each element from the second
// onward. Inputs of fewer than two elements yield Empty.
func Pairwise[T any](s Seq[T]) Seq[Pair[T, T]] {
	return func(ctx context.Context) (Step[Pair[T, T]], error) {
		step, err := s.Eval(ctx)
		if err != nil {
			return End[Pair[T, T]](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			return End[Pair[T, T]](), nil
		}
		return pairwiseFrom(head, tail).Eval(ctx)
	}
}

func pairwiseFrom[T any](prev T, s Seq[T]) Seq[Pair[T, T]] {
	return func(ctx context.Context) (Step[Pair[T, T]], error) {
		step, err := s.Eval(ctx)
		if err != nil {
			return End[Pair[T, T]](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			return End[Pair[T, T]](), nil
		}
		return Element(Pair[T, T]{Fst: prev, Snd: head}, pairwiseFrom(head, tail)), nil
	}
}
