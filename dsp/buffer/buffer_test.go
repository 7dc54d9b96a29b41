package buffer

import "testing"

func TestNewNegativeLength(t *testing.T) {
	b := New[complex128](-3)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
}

func TestResizeZeroesExposedTail(t *testing.T) {
	b := New[complex128](4)
	copy(b.Samples(), []complex128{1, 2, 3, 4})

	b.Resize(2)
	b.Resize(4)

	got := b.Samples()
	if got[0] != 1 || got[1] != 2 || got[2] != 0 || got[3] != 0 {
		t.Fatalf("Samples() = %v, want [1 2 0 0]", got)
	}
}

func TestGatherScatterStrided(t *testing.T) {
	// 3x4 row-major; column 1 has stride 4.
	src := []float64{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
	}

	b := New[float64](3)
	b.Gather(src, 1, 4)
	want := []float64{1, 5, 9}
	for i, v := range b.Samples() {
		if v != want[i] {
			t.Fatalf("Gather()[%d] = %v, want %v", i, v, want[i])
		}
	}

	dst := make([]float64, len(src))
	b.Scatter(dst, 2, 4)
	if dst[2] != 1 || dst[6] != 5 || dst[10] != 9 || dst[1] != 0 {
		t.Fatalf("Scatter() = %v", dst)
	}
}

func TestGatherScatterContiguous(t *testing.T) {
	src := []complex128{1, 2i, 3, 4i, 5}

	b := New[complex128](2)
	b.Gather(src, 3, 1)
	if b.Samples()[0] != 4i || b.Samples()[1] != 5 {
		t.Fatalf("Gather() = %v, want [4i 5]", b.Samples())
	}

	dst := make([]complex128, 4)
	b.Scatter(dst, 1, 1)
	if dst[1] != 4i || dst[2] != 5 || dst[3] != 0 {
		t.Fatalf("Scatter() = %v", dst)
	}
}
