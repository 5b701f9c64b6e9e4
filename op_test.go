// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"code.hybscloud.com/aseq"
)

func TestMapFilterPipeline(t *testing.T) {
	s := aseq.Filter(
		aseq.Map(aseq.OfSlice([]int{1, 2, 3, 4, 5}), func(x int) int { return x * 2 }),
		func(x int) bool { return x > 4 },
	)
	if got := mustSlice(t, s); !equalSlices(got, []int{6, 8, 10}) {
		t.Fatalf("got %v, want [6 8 10]", got)
	}
}

func TestAppendOrder(t *testing.T) {
	s := aseq.Append(aseq.OfSlice([]int{1, 2}), aseq.OfSlice([]int{3}))
	if got := mustSlice(t, s); !equalSlices(got, []int{1, 2, 3}) {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
	// Empty is the identity on both sides
	if got := mustSlice(t, aseq.Append(aseq.Empty[int](), aseq.OfSlice([]int{9}))); !equalSlices(got, []int{9}) {
		t.Fatalf("left identity got %v", got)
	}
	if got := mustSlice(t, aseq.Append(aseq.OfSlice([]int{9}), aseq.Empty[int]())); !equalSlices(got, []int{9}) {
		t.Fatalf("right identity got %v", got)
	}
}

func TestCollectSplicesDepthFirst(t *testing.T) {
	s := aseq.Collect(aseq.OfSlice([]int{1, 2}), func(x int) aseq.Seq[int] {
		return aseq.OfSlice([]int{x, x * 10})
	})
	if got := mustSlice(t, s); !equalSlices(got, []int{1, 10, 2, 20}) {
		t.Fatalf("got %v, want [1 10 2 20]", got)
	}
}

func TestConcatFlattens(t *testing.T) {
	ss := aseq.OfSlice([]aseq.Seq[int]{
		aseq.OfSlice([]int{1, 2}),
		aseq.Empty[int](),
		aseq.Singleton(3),
	})
	if got := mustSlice(t, aseq.Concat(ss)); !equalSlices(got, []int{1, 2, 3}) {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestChooseFiltersAndTransforms(t *testing.T) {
	s := aseq.Choose(aseq.OfSlice([]int{1, 2, 3, 4}), func(x int) (int, bool) {
		return x * 100, x%2 == 0
	})
	if got := mustSlice(t, s); !equalSlices(got, []int{200, 400}) {
		t.Fatalf("got %v, want [200 400]", got)
	}
}

func TestScanEmitsPerElement(t *testing.T) {
	s := aseq.Scan(aseq.OfSlice([]int{1, 2, 3}), 0, func(acc, x int) int { return acc + x })
	if got := mustSlice(t, s); !equalSlices(got, []int{1, 3, 6}) {
		t.Fatalf("got %v, want [1 3 6]", got)
	}
	if got := mustSlice(t, aseq.Scan(aseq.Empty[int](), 0, func(acc, x int) int { return acc + x })); len(got) != 0 {
		t.Fatalf("scan of empty got %v, want empty", got)
	}
}

func TestFoldSeedOnEmpty(t *testing.T) {
	got, err := aseq.Fold(context.Background(), aseq.Empty[int](), 7, func(acc, x int) int { return acc + x })
	if err != nil {
		t.Fatalf("Fold error: %v", err)
	}
	if got != 7 {
		t.Fatalf("got %d, want seed 7", got)
	}
}

func TestFoldAggregates(t *testing.T) {
	got, err := aseq.Fold(context.Background(), aseq.OfSlice([]int{1, 2, 3}), 0, func(acc, x int) int { return acc + x })
	if err != nil {
		t.Fatalf("Fold error: %v", err)
	}
	if got != 6 {
		t.Fatalf("got %d, want 6", got)
	}
}

func TestPairwise(t *testing.T) {
	got := mustSlice(t, aseq.Pairwise(aseq.OfSlice([]int{1, 2, 3})))
	want := []aseq.Pair[int, int]{{Fst: 1, Snd: 2}, {Fst: 2, Snd: 3}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if got := mustSlice(t, aseq.Pairwise(aseq.Singleton(1))); len(got) != 0 {
		t.Fatalf("pairwise of singleton got %v, want empty", got)
	}
}

func TestMapAsyncErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	s := aseq.MapAsync(aseq.OfSlice([]int{1, 2, 3}), func(_ context.Context, x int) (int, error) {
		if x == 2 {
			return 0, boom
		}
		return x, nil
	})
	_, err := aseq.ToSlice(context.Background(), s)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
}

func TestMapAsyncNoReadAhead(t *testing.T) {
	var n atomic.Int64
	s := aseq.Take(aseq.MapAsync(countingSeq([]int{1, 2, 3, 4}, &n), func(_ context.Context, x int) (int, error) {
		return x, nil
	}), 1)
	if got := mustSlice(t, s); !equalSlices(got, []int{1}) {
		t.Fatalf("got %v, want [1]", got)
	}
	if n.Load() != 1 {
		t.Fatalf("upstream evaluated %d elements, want 1 (strict backpressure)", n.Load())
	}
}

func TestIterOrder(t *testing.T) {
	var got []int
	if err := aseq.Iter(context.Background(), aseq.OfSlice([]int{3, 1, 2}), func(x int) {
		got = append(got, x)
	}); err != nil {
		t.Fatalf("Iter error: %v", err)
	}
	if !equalSlices(got, []int{3, 1, 2}) {
		t.Fatalf("got %v, want [3 1 2]", got)
	}
}

func TestLengthLast(t *testing.T) {
	ctx := context.Background()
	n, err := aseq.Length(ctx, aseq.OfSlice([]int{1, 2, 3}))
	if err != nil || n != 3 {
		t.Fatalf("Length got (%d, %v), want (3, nil)", n, err)
	}
	last, ok, err := aseq.Last(ctx, aseq.OfSlice([]int{1, 2, 3}))
	if err != nil || !ok || last != 3 {
		t.Fatalf("Last got (%d, %v, %v), want (3, true, nil)", last, ok, err)
	}
	_, ok, err = aseq.Last(ctx, aseq.Empty[int]())
	if err != nil || ok {
		t.Fatalf("Last of empty got ok=%v, want false", ok)
	}
}

func TestValuesRangeOver(t *testing.T) {
	var got []int
	var rangeErr error
	for v := range aseq.Values(context.Background(), aseq.OfSlice([]int{1, 2, 3}), &rangeErr) {
		got = append(got, v)
	}
	if rangeErr != nil {
		t.Fatalf("range error: %v", rangeErr)
	}
	if !equalSlices(got, []int{1, 2, 3}) {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestValuesSurfacesError(t *testing.T) {
	boom := errors.New("boom")
	var rangeErr error
	var got []int
	for v := range aseq.Values(context.Background(), aseq.Append(aseq.Singleton(1), aseq.Fail[int](boom)), &rangeErr) {
		got = append(got, v)
	}
	if !errors.Is(rangeErr, boom) {
		t.Fatalf("range error got %v, want %v", rangeErr, boom)
	}
	if !equalSlices(got, []int{1}) {
		t.Fatalf("got %v, want [1]", got)
	}
}
