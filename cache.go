// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
	"sync"
)

// cacheNode owns exclusively one upstream sequence and one memoized step.
// The upstream is evaluated at most once; every reader past the first
// receives the recorded step. A recorded failure is replayed consistently
// to all current and future readers.
type cacheNode[T any] struct {
	upstream Seq[T]
	once     sync.Once
	done     chan struct{}
	step     Step[T]
	err      error
}

// Cache turns a cold, effectful, single-use sequence into a memoized one
// that is safe for many concurrent readers: repeated evaluation always
// converges on one canonical step, and upstream side effects fire at most
// once regardless of reader count. The recorded tail is itself cached, so
// memoization composes down the whole chain.
//
// The single upstream evaluation runs detached from any one reader's
// cancellation; each reader still observes its own ctx promptly while
// waiting. An abandoned cached chain therefore does not unwind upstream
// compensations — its lifetime is the lifetime of the last reference.
func Cache[T any](s Seq[T]) Seq[T] {
	node := &cacheNode[T]{
		upstream: s,
		done:     make(chan struct{}),
	}
	return node.eval
}

func (n *cacheNode[T]) eval(ctx context.Context) (Step[T], error) {
	if err := ctx.Err(); err != nil {
		return End[T](), err
	}
	n.once.Do(func() {
		go n.run(context.WithoutCancel(ctx))
	})
	select {
	case <-n.done:
		return n.step, n.err
	case <-ctx.Done():
		return End[T](), ctx.Err()
	}
}

func (n *cacheNode[T]) run(ctx context.Context) {
	step, err := n.upstream.Eval(ctx)
	if head, tail, ok := step.Element(); ok {
		step = Element(head, Cache(tail))
	}
	n.step, n.err = step, err
	close(n.done)
}
