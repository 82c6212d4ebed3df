package ast

import "testing"

func TestIDSourceNeverMintsNoNode(t *testing.T) {
	s := NewIDSource(0)
	if got := s.Next(); got != 1 {
		t.Fatalf("first id = %v, want 1", got)
	}
}

func TestIDSourceSequential(t *testing.T) {
	s := NewIDSource(10)
	for want := NodeID(10); want < 15; want++ {
		if got := s.Next(); got != want {
			t.Fatalf("Next() = %v, want %v", got, want)
		}
	}
	if got := s.Peek(); got != 15 {
		t.Fatalf("Peek() = %v, want 15", got)
	}
}

func TestReservedIDSingleUse(t *testing.T) {
	s := NewIDSource(1)
	r := s.Reserve()
	first := r.Use()
	if !first.IsValid() {
		t.Fatalf("reserved id is invalid")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("second Use() did not panic")
		}
	}()
	r.Use()
}

func TestReserveDoesNotSkipIDs(t *testing.T) {
	s := NewIDSource(1)
	r := s.Reserve()
	if got := r.Use(); got != 1 {
		t.Fatalf("reserved id = %v, want 1", got)
	}
	if got := s.Next(); got != 2 {
		t.Fatalf("id after reservation = %v, want 2", got)
	}
}
