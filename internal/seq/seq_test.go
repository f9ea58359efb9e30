package seq

import "testing"

func TestRequiredCap(t *testing.T) {
	cases := []struct {
		n, want int
	}{
		{0, 4},
		{1, 4},
		{4, 4},
		{5, 8},
		{8, 8},
		{9, 16},
		{33, 64},
		{100, 128},
		{128, 128},
		{129, 256},
		{256, 256},
		{257, 384},
		{384, 384},
		{385, 512},
	}
	for _, c := range cases {
		if got := RequiredCap(c.n); got != c.want {
			t.Errorf("RequiredCap(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestAppendGrowth(t *testing.T) {
	var a Array[int]
	for i := 0; i < 200; i++ {
		a.Append(i)
		if got, want := a.Cap(), RequiredCap(i+1); got != want {
			t.Fatalf("after %d appends: cap = %d, want %d", i+1, got, want)
		}
	}
	if a.Len() != 200 {
		t.Fatalf("len = %d, want 200", a.Len())
	}
	for i := 0; i < 200; i++ {
		if a.At(i) != i {
			t.Fatalf("At(%d) = %d", i, a.At(i))
		}
	}
}

func TestInsertAt(t *testing.T) {
	a := FromSlice([]string{"a", "c"})
	a.InsertAt("b", 1)
	a.InsertAt("z", 3)
	a.InsertAt("_", 0)
	want := []string{"_", "a", "b", "c", "z"}
	if got := a.Slice(); len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if a.At(i) != w {
			t.Errorf("At(%d) = %q, want %q", i, a.At(i), w)
		}
	}
}

func TestInsertAtOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range insert")
		}
	}()
	var a Array[int]
	a.InsertAt(1, 1)
}

func TestRemoveAtPreserveOrder(t *testing.T) {
	a := FromSlice([]int{10, 20, 30, 40})
	a.RemoveAt(1, true)
	want := []int{10, 30, 40}
	for i, w := range want {
		if a.At(i) != w {
			t.Fatalf("At(%d) = %d, want %d", i, a.At(i), w)
		}
	}
}

func TestRemoveAtSwapLast(t *testing.T) {
	a := FromSlice([]int{10, 20, 30, 40})
	a.RemoveAt(1, false)
	want := []int{10, 40, 30}
	for i, w := range want {
		if a.At(i) != w {
			t.Fatalf("At(%d) = %d, want %d", i, a.At(i), w)
		}
	}
	// Removing the final element never moves anything.
	a.RemoveAt(2, false)
	if a.Len() != 2 || a.At(0) != 10 || a.At(1) != 40 {
		t.Fatalf("unexpected contents %v", a.Slice())
	}
}

func TestRemoveValueAndIndex(t *testing.T) {
	a := FromSlice([]string{"x", "y", "z"})
	if i := a.Index("y"); i != 1 {
		t.Fatalf("Index(y) = %d, want 1", i)
	}
	if i := a.Index("missing"); i != -1 {
		t.Fatalf("Index(missing) = %d, want -1", i)
	}
	if !a.RemoveValue("y", true) {
		t.Fatal("RemoveValue(y) = false, want true")
	}
	if a.RemoveValue("y", true) {
		t.Fatal("second RemoveValue(y) = true, want false")
	}
	if a.Contains("y") {
		t.Fatal("y still present after removal")
	}
	if a.Len() != 2 || a.At(0) != "x" || a.At(1) != "z" {
		t.Fatalf("unexpected contents %v", a.Slice())
	}
}
