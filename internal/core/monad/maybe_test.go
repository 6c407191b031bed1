package monad

import "testing"

func TestSomeHoldsValue(t *testing.T) {
	m := Some("hello")

	if !m.IsSome() {
		t.Fatal("expected Some")
	}
	if m.IsNone() {
		t.Fatal("Some reported None")
	}
	if got := m.MustGet(); got != "hello" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestNoneIsAbsent(t *testing.T) {
	m := None[int]()

	if m.IsSome() {
		t.Fatal("None reported Some")
	}
	if got := m.GetOr(99); got != 99 {
		t.Fatalf("expected fallback 99, got %d", got)
	}
}

func TestMustGetOnNonePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from MustGet on None")
		}
	}()

	None[string]().MustGet()
}

func TestGetOrPrefersPresentValue(t *testing.T) {
	if got := Some(5).GetOr(10); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestFromPtr(t *testing.T) {
	v := 3
	if m := FromPtr(&v); !m.IsSome() || m.MustGet() != 3 {
		t.Fatalf("expected Some(3), got %v", m)
	}
	if m := FromPtr[int](nil); !m.IsNone() {
		t.Fatalf("expected None, got %v", m)
	}
}

func TestPtrRoundTrip(t *testing.T) {
	m := Some(7)
	p := m.Ptr()
	if p == nil || *p != 7 {
		t.Fatal("expected pointer to 7")
	}

	// Mutating through the pointer must not reach the container.
	*p = 8
	if m.MustGet() != 7 {
		t.Fatal("Ptr leaked a reference to the stored value")
	}

	if None[int]().Ptr() != nil {
		t.Fatal("expected nil pointer for None")
	}
}

func TestMaybeString(t *testing.T) {
	if got := Some(1).String(); got != "Some(1)" {
		t.Fatalf("unexpected Some rendering: %q", got)
	}
	if got := None[int]().String(); got != "None" {
		t.Fatalf("unexpected None rendering: %q", got)
	}
}

func TestMapMaybe(t *testing.T) {
	doubled := MapMaybe(Some(4), func(v int) int { return v * 2 })
	if doubled.MustGet() != 8 {
		t.Fatalf("expected 8, got %d", doubled.MustGet())
	}

	if m := MapMaybe(None[int](), func(v int) int { return v * 2 }); !m.IsNone() {
		t.Fatal("expected None to map to None")
	}
}
