// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"

	"code.hybscloud.com/atomix"
)

// Observer receives push-style notifications: any number of OnNext calls
// followed by exactly one OnError or OnCompleted.
type Observer[T any] interface {
	OnNext(v T)
	OnError(err error)
	OnCompleted()
}

// Observable is a push-based event source. Subscribe registers an observer
// and returns a handle that cancels the subscription.
type Observable[T any] interface {
	Subscribe(obs Observer[T]) (cancel func())
}

// pushMsg is a mailbox message from the subscription to the coordinator:
// one produced value, or the source's single terminal notification.
type pushMsg[T any] struct {
	value T
	err   error
	done  bool
}

// pullReply answers one pull request: a value, completion, or the source's
// error.
type pullReply[T any] struct {
	value T
	ok    bool
	err   error
}

// pushBridge coordinates one push source with one pull sequence. The
// coordinator goroutine is the exclusive owner of the value FIFO and the
// pending-request FIFO; all access is serialized through its select loop.
// Invariant: a buffered value and a pending request are never both retained
// after a message is processed.
type pushBridge[T any] struct {
	lossy      bool
	mailbox    chan pushMsg[T]
	requests   chan chan pullReply[T]
	disposed   chan struct{}
	subscribed chan func()
	closed     atomix.Uint32
}

func newPushBridge[T any](src Observable[T], lossy bool) *pushBridge[T] {
	b := &pushBridge[T]{
		lossy:      lossy,
		mailbox:    make(chan pushMsg[T], 1),
		requests:   make(chan chan pullReply[T]),
		disposed:   make(chan struct{}),
		subscribed: make(chan func(), 1),
	}
	go b.loop()
	b.subscribed <- src.Subscribe(bridgeObserver[T]{b: b})
	return b
}

// dispose tears the bridge down: at most once, from whichever side notices
// first that the bridge is finished or abandoned.
func (b *pushBridge[T]) dispose() {
	if b.closed.Add(1) == 1 {
		close(b.disposed)
	}
}

func (b *pushBridge[T]) loop() {
	var buf []T
	var pending []chan pullReply[T]
	var term pullReply[T]
	var terminated, unsubbed bool

	// The subscription handle arrives on the subscribed channel exactly once,
	// after Subscribe returns; waiting for it here cannot miss it.
	unsubscribe := func() {
		if unsubbed {
			return
		}
		unsubbed = true
		if cancel := <-b.subscribed; cancel != nil {
			cancel()
		}
	}

	for {
		select {
		case <-b.disposed:
			unsubscribe()
			return
		case msg := <-b.mailbox:
			if msg.done {
				terminated = true
				term = pullReply[T]{err: msg.err}
				unsubscribe()
				if len(buf) == 0 {
					for _, req := range pending {
						req <- term
					}
					pending = nil
				}
				continue
			}
			if len(pending) > 0 {
				pending[0] <- pullReply[T]{value: msg.value, ok: true}
				pending = pending[1:]
				continue
			}
			if b.lossy {
				continue
			}
			buf = append(buf, msg.value)
		case req := <-b.requests:
			if len(buf) > 0 {
				req <- pullReply[T]{value: buf[0], ok: true}
				buf = buf[1:]
				continue
			}
			if terminated {
				req <- term
				continue
			}
			pending = append(pending, req)
		}
	}
}

// post forwards a notification into the mailbox unless the bridge is gone.
func (b *pushBridge[T]) post(m pushMsg[T]) {
	select {
	case b.mailbox <- m:
	case <-b.disposed:
	}
}

type bridgeObserver[T any] struct {
	b *pushBridge[T]
}

func (o bridgeObserver[T]) OnNext(v T)        { o.b.post(pushMsg[T]{value: v}) }
func (o bridgeObserver[T]) OnError(err error) { o.b.post(pushMsg[T]{err: err, done: true}) }
func (o bridgeObserver[T]) OnCompleted()      { o.b.post(pushMsg[T]{done: true}) }

// seq is the pull side: each evaluation sends one request and waits for the
// coordinator's reply or its own cancellation. Cancelling or draining the
// pull side disposes the bridge and unsubscribes.
func (b *pushBridge[T]) seq() Seq[T] {
	return func(ctx context.Context) (Step[T], error) {
		reply := make(chan pullReply[T], 1)
		select {
		case b.requests <- reply:
		case <-b.disposed:
			return End[T](), ErrClosed
		case <-ctx.Done():
			b.dispose()
			return End[T](), ctx.Err()
		}
		select {
		case r := <-reply:
			if r.err != nil {
				b.dispose()
				return End[T](), r.err
			}
			if !r.ok {
				b.dispose()
				return End[T](), nil
			}
			return Element(r.value, b.seq()), nil
		case <-ctx.Done():
			b.dispose()
			return End[T](), ctx.Err()
		}
	}
}

// OfObservable bridges a push source to a pull sequence, buffering: every
// value produced between pulls is retained in an unbounded FIFO, so nothing
// is lost; memory grows without bound if the consumer is slower than the
// source. The subscription is created on first evaluation; re-evaluating the
// outermost value subscribes again.
func OfObservable[T any](src Observable[T]) Seq[T] {
	return Delay(func() Seq[T] {
		return newPushBridge(src, false).seq()
	})
}

// OfObservableLossy bridges a push source to a pull sequence, dropping any
// value produced while no pull request is outstanding. Use when staleness
// is acceptable and memory must stay bounded.
func OfObservableLossy[T any](src Observable[T]) Seq[T] {
	return Delay(func() Seq[T] {
		return newPushBridge(src, true).seq()
	})
}

// ToObservable drives s in the background, forwarding each element to obs,
// then OnCompleted on End or OnError on failure. The returned handle
// cancels the in-flight evaluation loop; a cancelled loop signals nothing.
func ToObservable[T any](ctx context.Context, s Seq[T], obs Observer[T]) (cancel func()) {
	cctx, stop := context.WithCancel(ctx)
	go func() {
		cur := s
		for {
			step, err := cur.Eval(cctx)
			if err != nil {
				if cctx.Err() == nil {
					obs.OnError(err)
				}
				return
			}
			head, tail, ok := step.Element()
			if !ok {
				obs.OnCompleted()
				return
			}
			obs.OnNext(head)
			cur = tail
		}
	}()
	return stop
}
