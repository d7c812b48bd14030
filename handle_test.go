package rasterkit

import "testing"

func TestSlotArenaFirstHandleIsNotInvalid(t *testing.T) {
	a := newSlotArena[int]()
	h := a.insert(42)
	if h == invalidHandle {
		t.Fatalf("first inserted handle must not equal invalidHandle")
	}
	v, ok := a.get(h)
	if !ok || v != 42 {
		t.Fatalf("get(%v) = %v, %v, want 42, true", h, v, ok)
	}
}

func TestSlotArenaRemoveInvalidatesStaleHandle(t *testing.T) {
	a := newSlotArena[int]()
	h := a.insert(1)
	if _, ok := a.remove(h); !ok {
		t.Fatalf("remove should succeed for a live handle")
	}
	if _, ok := a.get(h); ok {
		t.Fatalf("get should fail for a removed handle")
	}
	if _, ok := a.remove(h); ok {
		t.Fatalf("double remove should fail")
	}
}

func TestSlotArenaReusedSlotGetsFreshGeneration(t *testing.T) {
	a := newSlotArena[int]()
	h1 := a.insert(1)
	a.remove(h1)
	h2 := a.insert(2)
	if h1 == h2 {
		t.Fatalf("reused slot must mint a different handle: h1=%v h2=%v", h1, h2)
	}
	if _, ok := a.get(h1); ok {
		t.Fatalf("stale handle h1 must not resolve after slot reuse")
	}
	v, ok := a.get(h2)
	if !ok || v != 2 {
		t.Fatalf("get(h2) = %v, %v, want 2, true", v, ok)
	}
}
