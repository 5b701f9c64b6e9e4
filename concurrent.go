// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"

	"code.hybscloud.com/kont"
)

// Pair is Zip's output tuple.
type Pair[A, B any] struct {
	Fst A
	Snd B
}

// evalOut carries one finished child evaluation. The channel holding it has
// capacity 1 so a child goroutine never blocks on a consumer that left.
type evalOut[T any] struct {
	step Step[T]
	err  error
}

// startEval launches the evaluation of s without waiting. The child runs
// under ctx: cancelling the evaluation that started it cancels the child.
// The channel is bidirectional so a receiver can put the result back,
// making later receives replay it.
func startEval[T any](ctx context.Context, s Seq[T]) chan evalOut[T] {
	out := make(chan evalOut[T], 1)
	go func() {
		step, err := s.Eval(ctx)
		out <- evalOut[T]{step: step, err: err}
	}()
	return out
}

// ZipWithAsync pairs both sequences' next steps — a's evaluation is launched
// without waiting, b's runs inline, then a's result is awaited — and applies
// the suspending combiner f to the paired heads. The output ends as soon as
// either side ends; a failing side or combiner fails the sequence.
func ZipWithAsync[A, B, C any](f func(context.Context, A, B) (C, error), a Seq[A], b Seq[B]) Seq[C] {
	return func(ctx context.Context) (Step[C], error) {
		pending := startEval(ctx, a)
		stepB, errB := b.Eval(ctx)
		outA := <-pending
		if outA.err != nil {
			return End[C](), outA.err
		}
		if errB != nil {
			return End[C](), errB
		}
		headA, tailA, okA := outA.step.Element()
		headB, tailB, okB := stepB.Element()
		if !okA || !okB {
			return End[C](), nil
		}
		v, err := f(ctx, headA, headB)
		if err != nil {
			return End[C](), err
		}
		return Element(v, ZipWithAsync(f, tailA, tailB)), nil
	}
}

// ZipWith pairs both sequences with a pure combiner under Zip's concurrent
// evaluation discipline.
func ZipWith[A, B, C any](f func(A, B) C, a Seq[A], b Seq[B]) Seq[C] {
	return ZipWithAsync(func(_ context.Context, x A, y B) (C, error) {
		return f(x, y), nil
	}, a, b)
}

// Zip pairs elements of a and b positionally. The result has length
// min(len(a), len(b)); evaluation of both next steps is concurrent.
func Zip[A, B any](a Seq[A], b Seq[B]) Seq[Pair[A, B]] {
	return ZipWith(func(x A, y B) Pair[A, B] {
		return Pair[A, B]{Fst: x, Snd: y}
	}, a, b)
}

// Zapp applies a sequence of functions to a sequence of values pairwise,
// under Zip's concurrent evaluation discipline.
func Zapp[A, B any](fs Seq[func(A) B], xs Seq[A]) Seq[B] {
	return ZipWith(func(f func(A) B, x A) B { return f(x) }, fs, xs)
}

// mergeSide is one half of a merge round: either a sequence not yet started,
// or an evaluation already in flight. A pending result is retained and raced
// again, never re-evaluated; once received it is put back into the channel,
// so re-evaluating the holding position replays it instead of blocking.
type mergeSide[T any] struct {
	seq     Seq[T]
	pending chan evalOut[T]
}

func (m mergeSide[T]) start(ctx context.Context) chan evalOut[T] {
	if m.pending != nil {
		return m.pending
	}
	return startEval(ctx, m.seq)
}

// Merge non-deterministically races the next-step evaluation of both
// sequences: whichever produces a step first is emitted, and its tail is
// raced against the still-pending other side. Once one side ends, the other
// is drained in its own order. Order within each source is preserved; the
// tie-break when both resolve together is unspecified.
//
// A sequence value produced by Merge may hold the slower side's in-flight
// evaluation; its recorded result is replayed on re-evaluation rather than
// re-run, while plain tails stay cold. Apply [Cache] when multiple readers
// need the same interleaving.
func Merge[T any](a, b Seq[T]) Seq[T] {
	return mergeSeq(mergeSide[T]{seq: a}, mergeSide[T]{seq: b})
}

func mergeSeq[T any](l, r mergeSide[T]) Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		lp := l.start(ctx)
		rp := r.start(ctx)
		select {
		case out := <-lp:
			lp <- out
			return mergeNext(ctx, out, mergeSide[T]{pending: rp})
		case out := <-rp:
			rp <- out
			return mergeNext(ctx, out, mergeSide[T]{pending: lp})
		case <-ctx.Done():
			return End[T](), ctx.Err()
		}
	}
}

func mergeNext[T any](ctx context.Context, won evalOut[T], other mergeSide[T]) (Step[T], error) {
	if won.err != nil {
		return End[T](), won.err
	}
	head, tail, ok := won.step.Element()
	if !ok {
		return drainSide(other).Eval(ctx)
	}
	return Element(head, mergeSeq(mergeSide[T]{seq: tail}, other)), nil
}

// drainSide continues a side whose counterpart has ended: first the step
// already in flight, then the plain remainder. No further racing.
func drainSide[T any](side mergeSide[T]) Seq[T] {
	if side.pending == nil {
		return side.seq
	}
	return func(ctx context.Context) (Step[T], error) {
		select {
		case out := <-side.pending:
			side.pending <- out
			if out.err != nil {
				return End[T](), out.err
			}
			head, tail, ok := out.step.Element()
			if !ok {
				return End[T](), nil
			}
			return Element(head, tail), nil
		case <-ctx.Done():
			return End[T](), ctx.Err()
		}
	}
}

// MergeAll folds Merge across the given sequences, right-leaning.
func MergeAll[T any](ss ...Seq[T]) Seq[T] {
	if len(ss) == 0 {
		return Empty[T]()
	}
	acc := ss[len(ss)-1]
	for i := len(ss) - 2; i >= 0; i-- {
		acc = Merge(ss[i], acc)
	}
	return acc
}

// Interleave alternates strictly between a and b regardless of timing,
// starting with a, tagging each value with its origin: Left for a, Right
// for b. Once one side ends, the remainder of the other is drained, still
// tagged, with no further alternation.
func Interleave[A, B any](a Seq[A], b Seq[B]) Seq[kont.Either[A, B]] {
	return interleaveL(a, b)
}

func interleaveL[A, B any](a Seq[A], b Seq[B]) Seq[kont.Either[A, B]] {
	return func(ctx context.Context) (Step[kont.Either[A, B]], error) {
		step, err := a.Eval(ctx)
		if err != nil {
			return End[kont.Either[A, B]](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			return Map(b, func(v B) kont.Either[A, B] {
				return kont.Right[A, B](v)
			}).Eval(ctx)
		}
		return Element(kont.Left[A, B](head), interleaveR(tail, b)), nil
	}
}

func interleaveR[A, B any](a Seq[A], b Seq[B]) Seq[kont.Either[A, B]] {
	return func(ctx context.Context) (Step[kont.Either[A, B]], error) {
		step, err := b.Eval(ctx)
		if err != nil {
			return End[kont.Either[A, B]](), err
		}
		head, tail, ok := step.Element()
		if !ok {
			return Map(a, func(v A) kont.Either[A, B] {
				return kont.Left[A, B](v)
			}).Eval(ctx)
		}
		return Element(kont.Right[A, B](head), interleaveL(a, tail)), nil
	}
}
