// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"

	"code.hybscloud.com/kont"
)

// TraverseOption applies a suspending, possibly-absent projection to each
// element in order. On the first absence (f's ok false) the traversal stops
// pulling input and reports failure; later elements are never evaluated.
// On full success it returns the projected sequence with the input's order
// and count.
func TraverseOption[T, U any](ctx context.Context, s Seq[T], f func(context.Context, T) (U, bool, error)) (Seq[U], bool, error) {
	var out []U
	cur := s
	for {
		step, err := cur.Eval(ctx)
		if err != nil {
			return nil, false, err
		}
		head, tail, ok := step.Element()
		if !ok {
			return OfSlice(out), true, nil
		}
		v, some, err := f(ctx, head)
		if err != nil {
			return nil, false, err
		}
		if !some {
			return nil, false, nil
		}
		out = append(out, v)
		cur = tail
	}
}

// TraverseChoice applies a suspending projection returning Either to each
// element in order. The first Left short-circuits the traversal with that
// failure value; later elements are never evaluated. On full success it
// returns Right of the projected sequence.
func TraverseChoice[T, U, E any](ctx context.Context, s Seq[T], f func(context.Context, T) kont.Either[E, U]) (kont.Either[E, Seq[U]], error) {
	var out []U
	cur := s
	for {
		step, err := cur.Eval(ctx)
		if err != nil {
			var zero kont.Either[E, Seq[U]]
			return zero, err
		}
		head, tail, ok := step.Element()
		if !ok {
			return kont.Right[E, Seq[U]](OfSlice(out)), nil
		}
		r := f(ctx, head)
		if e, isLeft := r.GetLeft(); isLeft {
			return kont.Left[E, Seq[U]](e), nil
		}
		v, _ := r.GetRight()
		out = append(out, v)
		cur = tail
	}
}

// IterWhileAsync drives s, applying the suspending predicate to each
// element, and stops as soon as the predicate yields false. The abandoned
// remainder gets the scope-exit treatment of [Range].
func IterWhileAsync[T any](ctx context.Context, s Seq[T], p func(context.Context, T) (bool, error)) error {
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
		cont, err := p(ctx, head)
		if err != nil {
			return err
		}
		if !cont {
			abandon(ctx, tail)
			return nil
		}
		cur = tail
	}
}

// IterWhile drives s with a pure predicate, stopping on the first false.
func IterWhile[T any](ctx context.Context, s Seq[T], p func(T) bool) error {
	return IterWhileAsync(ctx, s, func(_ context.Context, v T) (bool, error) {
		return p(v), nil
	})
}
