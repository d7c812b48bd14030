package pool

import (
	"sync/atomic"
	"testing"

	"github.com/tanager-gfx/rasterkit/linear"
)

func TestBinArrayAcquireOverflowsAtCapacity(t *testing.T) {
	var a BinArray
	for i := 0; i < BinCapacity; i++ {
		if _, ok := a.Acquire(); !ok {
			t.Fatalf("acquire %d should have succeeded", i)
		}
	}
	if _, ok := a.Acquire(); ok {
		t.Fatal("acquire beyond capacity should fail")
	}
	if got := a.Used(); got != BinCapacity {
		t.Errorf("Used() = %d, want %d", got, BinCapacity)
	}
}

func TestBinArrayResetClearsCounters(t *testing.T) {
	var a BinArray
	a.Acquire()
	a.Publish(0)
	a.Reset()
	if a.Used() != 0 || a.Ready() != 0 {
		t.Errorf("Reset left Used()=%d Ready()=%d, want 0,0", a.Used(), a.Ready())
	}
}

func TestQueuePushReportsFull(t *testing.T) {
	q := NewQueue(2)
	if full := q.Push(Fragment{}); full {
		t.Error("first push should not report full")
	}
	if full := q.Push(Fragment{}); !full {
		t.Error("second push should report full at capacity 2")
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
	q.Clear()
	if q.Len() != 0 {
		t.Error("Clear should empty the queue")
	}
}

func TestFillTriangleBinPartials(t *testing.T) {
	var b Bin
	v0 := Vertex{Pos: linear.Vec4{0, 0, 0, 1}}
	v1 := Vertex{Pos: linear.Vec4{4, 0, 0, 1}}
	v2 := Vertex{Pos: linear.Vec4{0, 4, 0, 1}}
	b.FillTriangleBin(7, v0, v1, v2)
	if b.PrimIndex != 7 || b.Kind != PrimTriangle || b.NumVerts != 3 {
		t.Fatalf("unexpected bin header: %+v", b)
	}
	if b.InvArea == 0 {
		t.Error("expected non-zero inverse area for a non-degenerate triangle")
	}
	sum := b.DBdx[0] + b.DBdx[1] + b.DBdx[2]
	if sum > 1e-4 || sum < -1e-4 {
		t.Errorf("barycentric x-partials should sum to 0, got %v", sum)
	}
}

func TestPoolRunVisitsEveryWorker(t *testing.T) {
	p := New(4, FragmentQueueCapacity)
	var seen [4]atomic.Bool
	p.Run(func(id int) {
		seen[id].Store(true)
	})
	for i, s := range seen {
		if !s.Load() {
			t.Errorf("worker %d was never run", i)
		}
	}
}

func TestPoolResizeClampsToOne(t *testing.T) {
	p := New(4, FragmentQueueCapacity)
	if got := p.Resize(0); got != 1 {
		t.Errorf("Resize(0) = %d, want 1", got)
	}
	if p.NumThreads() != 1 {
		t.Errorf("NumThreads() = %d, want 1", p.NumThreads())
	}
}

func TestPoolSemaphoreCounters(t *testing.T) {
	p := New(2, FragmentQueueCapacity)
	p.BeginShading()
	p.BeginShading()
	p.EndShading()
	if got := p.ShadingActive(); got != 1 {
		t.Errorf("ShadingActive() = %d, want 1", got)
	}
	p.BeginRasterizing()
	if got := p.RasterizingActive(); got != 1 {
		t.Errorf("RasterizingActive() = %d, want 1", got)
	}
	p.EndRasterizing()
	if got := p.RasterizingActive(); got != 0 {
		t.Errorf("RasterizingActive() = %d, want 0", got)
	}
}
