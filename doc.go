// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package aseq provides lazy, pull-based asynchronous sequences and their
// combinator algebra.
//
// A [Seq] is a cold suspended computation that, when evaluated, produces one
// [Step]: End, or one element plus the remaining sequence. All combinators
// are defined in terms of this single evaluation primitive with strict
// one-step lookahead, composing values that arrive over time the way one
// composes ordinary sequences, with suspension points instead of blocking.
//
// # Architecture
//
//   - Step protocol: [Seq.Eval] yields one [Step] per evaluation; evaluation
//     is cold, may suspend, and observes context cancellation.
//   - Monadic core: [Collect] (bind), [Singleton] (return), [Empty] (zero),
//     [Append] (combine), [Delay]; [Using]/[Finally]/[Catch] are the
//     resource-scoping and exception-translation hooks.
//   - Concurrency: [Zip]/[ZipWithAsync] evaluate both sides at once, [Merge]
//     races them, [Interleave] alternates in lock step tagging each value
//     with [code.hybscloud.com/kont.Either].
//   - Sharing: [Cache] memoizes through a spawn-once coordinator so one
//     upstream evaluation serves any number of readers.
//   - Bridges: [OfObservable]/[OfObservableLossy] (push to pull, buffered or
//     lossy), [ToObservable] (pull to push), [ToBlocking] (pull to a
//     synchronous [Iterator] over a bounded [code.hybscloud.com/lfq] handoff
//     with [code.hybscloud.com/iox.Backoff] waiting).
//
// # API Topologies
//
//   - Constructors: [Empty], [Singleton], [Fail], [Delay], [Unfold],
//     [UnfoldAsync], [Init], [Replicate], [OfSlice], [OfSeq], [OfChan].
//   - Transformers: [Map], [Filter], [Choose], [Scan], [Pairwise], [Take],
//     [Skip], [TakeWhile], [SkipWhile], [BufferByCount], and the Async
//     variants with suspending callbacks under strict backpressure.
//   - Drivers: [Fold], [Iter], [IterWhile], [Last], [Length], [ToSlice],
//     [Range], [Values], [TraverseOption], [TraverseChoice].
//
// # Evaluation Contract
//
// Constructing a sequence performs no work; side effects run on evaluation
// and run again on re-evaluation unless the value is wrapped with [Cache],
// which is also the only way to share one effectful sequence between
// concurrent readers. Failures propagate as the evaluation's outcome and are
// never swallowed except by an explicit [Catch].
//
// # Example
//
//	s := aseq.Filter(
//		aseq.Map(aseq.OfSlice([]int{1, 2, 3, 4, 5}), func(x int) int { return x * 2 }),
//		func(x int) bool { return x > 4 },
//	)
//	out, _ := aseq.ToSlice(context.Background(), s) // [6 8 10]
package aseq
