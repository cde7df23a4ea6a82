package strloin

import "testing"

func TestRangeBufferTake(t *testing.T) {
	s := New(hello)
	buf := NewRangeBuffer(4)

	buf.Push(0, 5)
	buf.Push(5, 11)
	if buf.Len() != 2 {
		t.Fatalf("Len = %d, want 2", buf.Len())
	}
	c, err := buf.Take(s)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if !c.IsBorrowed() || !c.EqualString(hello) {
		t.Fatalf("Take = %q (borrowed=%v)", c, c.IsBorrowed())
	}
	if buf.Len() != 0 {
		t.Fatalf("Take did not reset the buffer, Len = %d", buf.Len())
	}

	buf.PushRange(NewRange(6, 11))
	buf.PushRange(NewRange(0, 5))
	c, err = buf.Take(s)
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if !c.IsOwned() || !c.EqualString("worldhello") {
		t.Fatalf("Take = %q (owned=%v)", c, c.IsOwned())
	}
}

func TestRangeBufferReuse(t *testing.T) {
	s := New(hello)
	buf := NewRangeBuffer(2)
	allocs := testing.AllocsPerRun(100, func() {
		buf.Push(0, 2)
		buf.Push(2, 5)
		if _, err := buf.Take(s); err != nil {
			t.Fatal(err)
		}
	})
	if allocs != 0 {
		t.Fatalf("reused buffer allocated %.1f times", allocs)
	}
}

func TestRangeBufferRanges(t *testing.T) {
	buf := NewRangeBuffer(0)
	buf.Push(1, 2)
	rs := buf.Ranges()
	if len(rs) != 1 || rs[0] != NewRange(1, 2) {
		t.Fatalf("Ranges = %v", rs)
	}
	buf.Reset()
	if buf.Len() != 0 {
		t.Fatal("Reset left ranges behind")
	}
}
