package pool

import "sync/atomic"

// BinCapacity is the fixed per-thread bin array capacity B.
const BinCapacity = 8192

// BinArray is one worker's bin storage: a fixed-capacity slice of bins
// plus the atomic counters that sequence pushes (bins_used) and
// publish completed pushes to other threads during a cross-thread
// drain (bins_ready). Only the owning worker ever writes bin entries;
// other workers only read them, and only after observing bins_ready
// with acquire ordering.
type BinArray struct {
	bins      [BinCapacity]Bin
	binsUsed  atomic.Int32
	binsReady atomic.Int32
}

// Acquire reserves the next bin slot for the caller to fill. It
// returns the reserved slot and ok=false when the array is full,
// signaling the caller to flush (drain) before retrying.
func (a *BinArray) Acquire() (slot int, ok bool) {
	n := a.binsUsed.Add(1)
	if n > BinCapacity {
		a.binsUsed.Add(-1)
		return 0, false
	}
	return int(n - 1), true
}

// Publish marks slot (and all slots below it) visible to other
// threads' drains by advancing bins_ready with release ordering.
// Slots must be published in acquisition order since Acquire hands out
// strictly increasing indices one at a time.
func (a *BinArray) Publish(slot int) {
	a.binsReady.Store(int32(slot + 1))
}

// Ready returns how many of this array's bins are currently safe for
// another thread to read, observed with acquire ordering.
func (a *BinArray) Ready() int {
	return int(a.binsReady.Load())
}

// Used returns how many bin slots have been reserved so far, including
// any not yet published.
func (a *BinArray) Used() int {
	return int(a.binsUsed.Load())
}

// Bin returns a pointer to the bin at the given slot for in-place
// fill or read.
func (a *BinArray) Bin(slot int) *Bin {
	return &a.bins[slot]
}

// Reset atomically clears both counters, returning the array to empty.
// Called by a rasterizer after it finishes draining its own bins.
func (a *BinArray) Reset() {
	a.binsReady.Store(0)
	a.binsUsed.Store(0)
}

// Full reports whether the array has no remaining free slots.
func (a *BinArray) Full() bool {
	return a.Used() >= BinCapacity
}
