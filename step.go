// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
)

// Step is the outcome of one evaluation of a sequence: either the terminal
// step (End) or one produced value plus the remaining sequence (Element).
// The tail is unevaluated until something asks for its step.
type Step[T any] struct {
	head T
	tail Seq[T]
	ok   bool
}

// End reports whether the step is terminal.
func (s Step[T]) End() bool { return !s.ok }

// Element returns the produced value and the remaining sequence.
// ok is false for the terminal step.
func (s Step[T]) Element() (head T, tail Seq[T], ok bool) {
	return s.head, s.tail, s.ok
}

// End returns the terminal step.
func End[T any]() Step[T] { return Step[T]{} }

// Element returns a step carrying head plus the remaining sequence.
// A nil tail is normalized to Empty.
func Element[T any](head T, tail Seq[T]) Step[T] {
	if tail == nil {
		tail = Empty[T]()
	}
	return Step[T]{head: head, tail: tail, ok: true}
}

// Seq is a cold suspended computation that, when evaluated, produces exactly
// one Step. Constructing a Seq performs no work; work (including side
// effects) happens on evaluation and happens again on re-evaluation unless
// the sequence is memoized with [Cache]. A Seq is not inherently shareable:
// concurrent evaluation of the same un-cached value duplicates side effects.
//
// Cancellation contract: leaf constructors observe ctx at the start of each
// evaluation, and every asynchronous wait selects on ctx.Done. Wrapper
// combinators never pre-check ctx; they evaluate upstream and propagate, so
// one evaluation under a cancelled context unwinds through every pending
// [Finally] compensation layered on the current position.
type Seq[T any] func(ctx context.Context) (Step[T], error)

// Eval drives the sequence to its next step. The evaluation may suspend an
// arbitrary number of times before completing; on failure no step is
// produced and the error is the evaluation's outcome.
func (s Seq[T]) Eval(ctx context.Context) (Step[T], error) {
	return s(ctx)
}

// Empty returns the sequence that evaluates immediately to End.
func Empty[T any]() Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		if err := ctx.Err(); err != nil {
			return End[T](), err
		}
		return End[T](), nil
	}
}

// Singleton returns the one-element sequence holding v.
func Singleton[T any](v T) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		if err := ctx.Err(); err != nil {
			return End[T](), err
		}
		return Element(v, Empty[T]()), nil
	}
}

// Fail returns the sequence whose every evaluation fails with err.
func Fail[T any](err error) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		if cerr := ctx.Err(); cerr != nil {
			return End[T](), cerr
		}
		return End[T](), err
	}
}

// Delay defers the construction of a sequence until evaluation time.
// f runs once per evaluation of the returned value.
func Delay[T any](f func() Seq[T]) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		if err := ctx.Err(); err != nil {
			return End[T](), err
		}
		return f().Eval(ctx)
	}
}
