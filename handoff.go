// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
	"io"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// handoffItem is one slot of the handoff buffer: an element, or the final
// end marker carrying the driver's terminal outcome.
type handoffItem[T any] struct {
	value T
	err   error
	done  bool
}

// Iterator hands the elements of an asynchronously driven sequence to a
// synchronous consumer. The handoff buffer is a bounded lock-free SPSC
// queue: the background driver cannot advance past capacity un-consumed
// elements. An Iterator is for a single consumer goroutine.
type Iterator[T any] struct {
	serial  Serial
	q       lfq.SPSC[handoffItem[T]]
	closed  atomix.Uint32
	cancel  context.CancelFunc
	err     error
	drained bool
}

// ToBlocking drives s in the background, writing each element and a final
// end marker through a handoff buffer of the given capacity (>= 1, else a
// call-time panic). The consumer retrieves elements with Next or TryNext.
func ToBlocking[T any](ctx context.Context, s Seq[T], capacity int) *Iterator[T] {
	if capacity < 1 {
		panic("aseq: non-positive handoff capacity")
	}
	cctx, cancel := context.WithCancel(ctx)
	it := &Iterator[T]{serial: nextSerial(), cancel: cancel}
	it.q.Init(capacity)
	go it.drive(cctx, s)
	return it
}

// Serial returns the serial number assigned to this iterator's driver.
func (it *Iterator[T]) Serial() Serial {
	return it.serial
}

func (it *Iterator[T]) drive(ctx context.Context, s Seq[T]) {
	cur := s
	for {
		step, err := cur.Eval(ctx)
		if err != nil {
			it.put(ctx, handoffItem[T]{err: err, done: true})
			return
		}
		head, tail, ok := step.Element()
		if !ok {
			it.put(ctx, handoffItem[T]{done: true})
			return
		}
		if !it.put(ctx, handoffItem[T]{value: head}) {
			// consumer gone: unwind compensations on the abandoned tail
			abandon(ctx, tail)
			return
		}
		cur = tail
	}
}

// put blocks with adaptive backoff until the item is enqueued, re-checking
// closure and cancellation on every retry so a vanished consumer is noticed
// promptly. Returns false when the iterator was closed or ctx cancelled.
func (it *Iterator[T]) put(ctx context.Context, item handoffItem[T]) bool {
	var bo iox.Backoff
	for {
		if err := it.q.Enqueue(&item); err == nil {
			return true
		}
		if it.closed.Load() != 0 || ctx.Err() != nil {
			return false
		}
		bo.Wait()
	}
}

// Next blocks until the next element is available. ok is false once the
// sequence has ended, failed (see Err), or the iterator was closed.
func (it *Iterator[T]) Next() (v T, ok bool) {
	var bo iox.Backoff
	for {
		item, err := it.q.Dequeue()
		if err == nil {
			if item.done {
				it.err = item.err
				it.drained = true
				var zero T
				return zero, false
			}
			return item.value, true
		}
		if it.drained || it.closed.Load() != 0 {
			var zero T
			return zero, false
		}
		bo.Wait()
	}
}

// TryNext is the non-blocking variant of Next. It returns iox.ErrWouldBlock
// when no element is ready yet, io.EOF once the sequence has ended, the
// recorded failure once the sequence has failed, and ErrClosed after Close.
func (it *Iterator[T]) TryNext() (v T, err error) {
	var zero T
	if it.drained {
		if it.err != nil {
			return zero, it.err
		}
		return zero, io.EOF
	}
	if it.closed.Load() != 0 {
		return zero, ErrClosed
	}
	item, qerr := it.q.Dequeue()
	if qerr != nil {
		return zero, qerr
	}
	if item.done {
		it.err = item.err
		it.drained = true
		if item.err != nil {
			return zero, item.err
		}
		return zero, io.EOF
	}
	return item.value, nil
}

// Err returns the sequence's failure, if any, once Next has returned false.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Close disposes the iterator: the background driver is cancelled and stops
// at its next suspension point. Close is idempotent.
func (it *Iterator[T]) Close() {
	if it.closed.Add(1) == 1 {
		it.cancel()
	}
}
