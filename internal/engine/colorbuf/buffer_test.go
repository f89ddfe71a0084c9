package colorbuf

import "testing"

func TestNewFillsBaseline(t *testing.T) {
	b := New(121, Baseline)

	if b.Len() != 121 {
		t.Fatalf("Len() = %d, want 121", b.Len())
	}
	if len(b.Floats()) != 121*3 {
		t.Errorf("len(Floats()) = %d, want %d", len(b.Floats()), 121*3)
	}
	if !b.IsUniform(Baseline) {
		t.Error("new buffer should be uniform baseline")
	}
	if !b.Dirty() {
		t.Error("new buffer should be dirty so it gets uploaded")
	}
}

func TestSetAndAt(t *testing.T) {
	b := New(4, Baseline)
	b.MarkClean()

	hot := Color{0.1, 0.5, 0.5}
	b.Set(2, hot)

	if got := b.At(2); got != hot {
		t.Errorf("At(2) = %v, want %v", got, hot)
	}
	if got := b.At(1); got != Baseline {
		t.Errorf("At(1) = %v, want untouched baseline", got)
	}
	if !b.Dirty() {
		t.Error("Set should mark the buffer dirty")
	}
}

func TestSetClampsChannels(t *testing.T) {
	b := New(1, Baseline)
	b.Set(0, Color{0.2, 1.2, 1.6})

	want := Color{0.2, 1, 1}
	if got := b.At(0); got != want {
		t.Errorf("At(0) = %v, want %v", got, want)
	}

	b.Set(0, Color{-0.5, 0.5, 0})
	if got := b.At(0); got.R != 0 {
		t.Errorf("negative channel not clamped: %v", got)
	}
}

func TestSetOutOfRangeIgnored(t *testing.T) {
	b := New(3, Baseline)
	b.MarkClean()

	b.Set(-1, Color{1, 1, 1})
	b.Set(3, Color{1, 1, 1})
	b.Set(1000, Color{1, 1, 1})

	if b.Dirty() {
		t.Error("out-of-range writes should not mark the buffer dirty")
	}
	if !b.IsUniform(Baseline) {
		t.Error("out-of-range writes changed the buffer")
	}
	if got := b.At(99); got != (Color{}) {
		t.Errorf("At(99) = %v, want zero color", got)
	}
}

func TestSetFace(t *testing.T) {
	b := New(6, Baseline)
	hot := Color{0.1, 0.5, 0.5}
	b.SetFace(0, 3, 5, hot)

	for _, i := range []int{0, 3, 5} {
		if got := b.At(i); got != hot {
			t.Errorf("At(%d) = %v, want %v", i, got, hot)
		}
	}
	for _, i := range []int{1, 2, 4} {
		if got := b.At(i); got != Baseline {
			t.Errorf("At(%d) = %v, want baseline", i, got)
		}
	}
}

func TestReset(t *testing.T) {
	b := New(5, Baseline)
	b.Set(0, Color{1, 1, 1})
	b.Set(4, Color{1, 0, 0})
	b.MarkClean()

	b.Reset()

	if !b.IsUniform(Baseline) {
		t.Error("Reset should restore the baseline everywhere")
	}
	if !b.Dirty() {
		t.Error("Reset should mark the buffer dirty")
	}
}

func TestNewNegativeCount(t *testing.T) {
	b := New(-3, Baseline)
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}
