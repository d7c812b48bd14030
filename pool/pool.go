package pool

import (
	"sync"
	"sync/atomic"
)

// Pool is the fixed set of worker threads a draw call is partitioned
// across. Each worker owns one BinArray and one Queue; the two
// process-wide semaphores count how many workers currently hold a
// rasterizing role versus a shading role during a flush transition.
//
// The calling goroutine always participates as worker 0, so a
// single-threaded pool dispatches nothing and just runs the task
// inline; a flush is a sync.WaitGroup join, not a spin loop waiting on
// worker-ready flags.
type Pool struct {
	mu          sync.Mutex
	bins        []*BinArray
	queues      []*Queue
	queueCap    int
	fragActive  atomic.Int32
	shadeActive atomic.Int32
}

// New creates a pool of n worker threads (clamped to >= 1), each with
// a fragment queue of the given capacity.
func New(n, queueCapacity int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{queueCap: queueCapacity}
	p.resizeLocked(n)
	return p
}

// NumThreads returns the current worker count.
func (p *Pool) NumThreads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bins)
}

// Resize changes the worker count, clamped to >= 1, clearing all bins
// in the process (spec's num_threads semantics: resize reallocates
// every per-thread array).
func (p *Pool) Resize(n int) int {
	if n < 1 {
		n = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resizeLocked(n)
	return n
}

func (p *Pool) resizeLocked(n int) {
	p.bins = make([]*BinArray, n)
	p.queues = make([]*Queue, n)
	for i := 0; i < n; i++ {
		p.bins[i] = &BinArray{}
		p.queues[i] = NewQueue(p.queueCap)
	}
}

// SetQueueCapacity switches every thread's fragment queue to a new
// capacity (spec's Q=600 normal / Q=16 memory-conservative modes),
// discarding any queued fragments.
func (p *Pool) SetQueueCapacity(capacity int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queueCap = capacity
	for i := range p.queues {
		p.queues[i] = NewQueue(capacity)
	}
}

// Bins returns worker i's bin array.
func (p *Pool) Bins(i int) *BinArray { return p.bins[i] }

// Queue returns worker i's fragment queue.
func (p *Pool) Queue(i int) *Queue { return p.queues[i] }

// ResetAll clears every worker's bin array and fragment queue; the
// context's thread-count change uses it. The post-drain path resets
// each BinArray directly instead.
func (p *Pool) ResetAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.bins {
		b.Reset()
	}
	for _, q := range p.queues {
		q.Clear()
	}
}

// Run dispatches task(workerID) to every worker and blocks until all
// have returned. The calling goroutine executes worker 0's task
// inline rather than handing it to a spawned goroutine, so a
// single-threaded pool does no goroutine dispatch at all.
func (p *Pool) Run(task func(workerID int)) {
	n := p.NumThreads()
	if n <= 1 {
		task(0)
		return
	}
	var wg sync.WaitGroup
	wg.Add(n - 1)
	for id := 1; id < n; id++ {
		go func(id int) {
			defer wg.Done()
			task(id)
		}(id)
	}
	task(0)
	wg.Wait()
}

// BeginShading and EndShading bracket a worker's time spent invoking
// vertex/fragment shader callbacks, incrementing and decrementing the
// shade_active semaphore.
func (p *Pool) BeginShading() { p.shadeActive.Add(1) }
func (p *Pool) EndShading()   { p.shadeActive.Add(-1) }

// BeginRasterizing and EndRasterizing bracket a worker's time spent
// draining bins as a rasterizer, incrementing and decrementing the
// frag_active semaphore.
func (p *Pool) BeginRasterizing() { p.fragActive.Add(1) }
func (p *Pool) EndRasterizing()   { p.fragActive.Add(-1) }

// ShadingActive and RasterizingActive report the current semaphore
// values, mainly for tests and diagnostics.
func (p *Pool) ShadingActive() int32     { return p.shadeActive.Load() }
func (p *Pool) RasterizingActive() int32 { return p.fragActive.Load() }
