package cycle

import "testing"

func TestPushWithinCapacity(t *testing.T) {
	c := New[int](3)
	c.Push(1)
	c.Push(2)
	if c.Len() != 2 {
		t.Fatalf("expecting length 2, got %d", c.Len())
	}
	got := c.Items()
	want := []int{1, 2}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("expecting %v, got %v", want, got)
		}
	}
}

func TestPushEvictsOldest(t *testing.T) {
	c := New[int](3)
	for i := 1; i <= 5; i++ {
		c.Push(i)
	}
	if c.Len() != 3 {
		t.Fatalf("expecting length 3, got %d", c.Len())
	}
	got := c.Items()
	want := []int{3, 4, 5}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("expecting %v, got %v", want, got)
		}
	}
}

func TestLast(t *testing.T) {
	c := New[string](2)
	if _, ok := c.Last(); ok {
		t.Fatalf("expecting no last item on empty cycle")
	}
	c.Push("a")
	c.Push("b")
	c.Push("c")
	last, ok := c.Last()
	if !ok || last != "c" {
		t.Fatalf("expecting last item %q, got %q (ok=%v)", "c", last, ok)
	}
}

func TestReset(t *testing.T) {
	c := New[int](3)
	c.Push(1)
	c.Push(2)
	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("expecting empty cycle after reset, got length %d", c.Len())
	}
	c.Push(9)
	got := c.Items()
	if len(got) != 1 || got[0] != 9 {
		t.Fatalf("expecting [9] after reset+push, got %v", got)
	}
}
