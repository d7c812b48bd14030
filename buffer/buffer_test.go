package buffer

import "testing"

func TestVertexUpdateAndBounds(t *testing.T) {
	v, err := NewVertex(32)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Destroy()
	if err := v.Update(4, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if v.Bytes()[4] != 1 || v.Bytes()[6] != 3 {
		t.Errorf("update did not land at the right offset: %v", v.Bytes()[:8])
	}
	if err := v.Update(30, []byte{1, 2, 3}); err == nil {
		t.Error("expected out-of-range update to fail")
	}
}

func TestIndexAtWidthsAndPadding(t *testing.T) {
	ib, err := NewIndex(IndexU16, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer ib.Destroy()
	if err := ib.Update(0, []byte{1, 0, 2, 0, 3, 0, 4, 0}); err != nil {
		t.Fatal(err)
	}
	for i, want := range []uint32{1, 2, 3, 4} {
		if got := ib.At(i); got != want {
			t.Errorf("At(%d) = %d, want %d", i, got, want)
		}
	}
	if len(ib.Bytes()) < 4*2+16 {
		t.Errorf("index buffer missing 16-byte batched-load tail: got %d bytes", len(ib.Bytes()))
	}
}

func TestIndexRejectsInvalidCount(t *testing.T) {
	if _, err := NewIndex(IndexU32, 0); err == nil {
		t.Error("expected error for zero count")
	}
}

func TestNewArrayValidation(t *testing.T) {
	attrs := []Attribute{
		{Offset: 0, Stride: 12, Components: 3, Type: AttribF32},
	}
	va, err := NewArray(Handle(1), NoHandle, attrs)
	if err != nil {
		t.Fatal(err)
	}
	if va.HasIndex() {
		t.Error("array with NoHandle ibo should report HasIndex() == false")
	}
	if _, err := NewArray(NoHandle, NoHandle, attrs); err == nil {
		t.Error("expected error when vbo handle is missing")
	}
	if _, err := NewArray(Handle(1), NoHandle, nil); err == nil {
		t.Error("expected error when there are no attributes")
	}
	bad := []Attribute{{Offset: 0, Stride: 4, Components: 5, Type: AttribF32}}
	if _, err := NewArray(Handle(1), NoHandle, bad); err == nil {
		t.Error("expected error for out-of-range component count")
	}
}
