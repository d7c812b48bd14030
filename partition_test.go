package rasterkit

import "testing"

func TestPartitionRangeCoversWithoutOverlap(t *testing.T) {
	for _, tc := range []struct{ total, n, vpp int }{
		{300, 4, 3}, {301, 4, 3}, {10, 1, 1}, {7, 8, 1}, {100, 3, 2},
	} {
		ranges := partitionRange(tc.total, tc.n, tc.vpp)
		if len(ranges) != tc.n {
			t.Fatalf("total=%d n=%d: got %d ranges, want %d", tc.total, tc.n, len(ranges), tc.n)
		}
		pos := 0
		for i, r := range ranges {
			if r[0] != pos {
				t.Fatalf("total=%d n=%d: range %d begins at %d, want %d", tc.total, tc.n, i, r[0], pos)
			}
			if r[1] < r[0] {
				t.Fatalf("total=%d n=%d: range %d is inverted: %v", tc.total, tc.n, i, r)
			}
			pos = r[1]
		}
		if pos != tc.total {
			t.Fatalf("total=%d n=%d: ranges end at %d, want %d", tc.total, tc.n, pos, tc.total)
		}
	}
}

// TestPartitionRangeDeterministicAcrossThreadCount verifies the
// property finalize's ordering argument depends on: whatever N
// is, re-walking every worker's range in order (workerID ascending,
// then position within the range ascending) reconstructs the same
// 0..total-1 sequence.
func TestPartitionRangeDeterministicAcrossThreadCount(t *testing.T) {
	total := 305 // not a multiple of vpp, so the tail absorbs a remainder
	vpp := 3
	for _, n := range []int{1, 2, 3, 4, 5, 7, 16} {
		ranges := partitionRange(total, n, vpp)
		var reconstructed []int
		for _, r := range ranges {
			for i := r[0]; i < r[1]; i++ {
				reconstructed = append(reconstructed, i)
			}
		}
		if len(reconstructed) != total {
			t.Fatalf("n=%d: reconstructed %d elements, want %d", n, len(reconstructed), total)
		}
		for i, v := range reconstructed {
			if v != i {
				t.Fatalf("n=%d: reconstructed[%d] = %d, want %d", n, i, v, i)
			}
		}
	}
}
