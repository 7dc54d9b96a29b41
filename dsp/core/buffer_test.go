package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]complex128, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestEnsureLenGrows(t *testing.T) {
	out := EnsureLen([]float64{1}, 3)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
}

func TestEnsureLenKeepsReusedValues(t *testing.T) {
	buf := []float64{1, 2, 3, 4}
	out := EnsureLen(buf[:1], 3)
	if out[1] != 2 || out[2] != 3 {
		t.Fatalf("EnsureLen = %v, want [1 2 3]", out)
	}
	if len(EnsureLen(buf, 0)) != 0 {
		t.Fatal("EnsureLen(buf, 0) not empty")
	}
}
