package datatable

import "testing"

func TestRequired(t *testing.T) {
	for _, v := range []any{nil, "", "   "} {
		if Required(v, 0, 0) == nil {
			t.Errorf("Required should reject %v", v)
		}
	}
	for _, v := range []any{0, false, "x", "Active"} {
		if err := Required(v, 0, 0); err != nil {
			t.Errorf("Required(%v) = %v", v, err)
		}
	}
}

func TestIntBounds(t *testing.T) {
	min0 := MinInt(0)
	if min0(-1, 0, 0) == nil {
		t.Error("MinInt(0) should reject -1")
	}
	if err := min0(0, 0, 0); err != nil {
		t.Errorf("MinInt(0) should accept 0, got %v", err)
	}
	if err := min0(nil, 0, 0); err != nil {
		t.Errorf("MinInt should let nil through, got %v", err)
	}

	max5 := MaxInt(5)
	if max5(6, 0, 0) == nil {
		t.Error("MaxInt(5) should reject 6")
	}

	r := IntRange(1, 3)
	for v, ok := range map[int]bool{0: false, 1: true, 3: true, 4: false} {
		if (r(v, 0, 0) == nil) != ok {
			t.Errorf("IntRange(1, 3)(%d) ok = %v", v, !ok)
		}
	}
}

func TestStringChecks(t *testing.T) {
	if MaxLen(3)("abcd", 0, 0) == nil {
		t.Error("MaxLen(3) should reject abcd")
	}
	if err := MaxLen(3)("äöü", 0, 0); err != nil {
		t.Errorf("MaxLen counts characters, got %v", err)
	}

	code := Match(`^[A-Z]{3}$`)
	if code("abc", 0, 0) == nil {
		t.Error("Match should reject abc")
	}
	if err := code("", 0, 0); err != nil {
		t.Errorf("Match should skip empty strings, got %v", err)
	}

	status := OneOf("Active", "Inactive")
	if status("Paused", 0, 0) == nil {
		t.Error("OneOf should reject Paused")
	}
}

func TestAllStopsAtFirstFailure(t *testing.T) {
	check := All(Required, MinInt(10), MaxInt(20))
	if err := check(nil, 0, 0); err == nil || err.Error() != "required" {
		t.Errorf("expected required, got %v", err)
	}
	if err := check(5, 0, 0); err == nil || err.Error() != "min 10" {
		t.Errorf("expected min 10, got %v", err)
	}
	if err := check(15, 0, 0); err != nil {
		t.Errorf("15 should pass, got %v", err)
	}
}
