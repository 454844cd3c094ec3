package arbiter

import "testing"

func TestStabilityFilterIdenticalSequence(t *testing.T) {
	f := NewStabilityFilter(2)

	if _, ok := f.Observe("STOP"); ok {
		t.Error("window not yet full, should not be stable")
	}
	stable, ok := f.Observe("STOP")
	if !ok {
		t.Fatal("expected stable text after 2 identical observations")
	}
	if stable != "STOP" {
		t.Errorf("expected %q, got %q", "STOP", stable)
	}
}

func TestStabilityFilterDifferingObservations(t *testing.T) {
	f := NewStabilityFilter(2)

	f.Observe("STOP")
	if _, ok := f.Observe("SLOW"); ok {
		t.Error("differing window should not be stable")
	}
	if _, ok := f.Observe(""); ok {
		t.Error("window with empty entry should not be stable")
	}
}

func TestStabilityFilterAllEmptyWindow(t *testing.T) {
	f := NewStabilityFilter(2)

	f.Observe("")
	if stable, ok := f.Observe(""); ok || stable != "" {
		t.Errorf("all-empty window must be not-stable, got (%q, %v)", stable, ok)
	}
}

func TestStabilityFilterWindowBound(t *testing.T) {
	f := NewStabilityFilter(2)

	for i := 0; i < 7; i++ {
		f.Observe("x1")
	}
	if f.Len() != 2 {
		t.Errorf("window must never exceed capacity: len=%d", f.Len())
	}
}

func TestStabilityFilterRecoversAfterNoise(t *testing.T) {
	f := NewStabilityFilter(2)

	f.Observe("EXIT")
	f.Observe("EX1T")
	f.Observe("EXIT")
	stable, ok := f.Observe("EXIT")
	if !ok || stable != "EXIT" {
		t.Errorf("expected recovery to stable %q, got (%q, %v)", "EXIT", stable, ok)
	}
}

func TestStabilityFilterLargerWindow(t *testing.T) {
	f := NewStabilityFilter(3)

	f.Observe("abc")
	f.Observe("abc")
	if _, ok := f.Observe(""); ok {
		t.Error("empty final observation should break stability")
	}
	f.Observe("abc")
	f.Observe("abc")
	if stable, ok := f.Observe("abc"); !ok || stable != "abc" {
		t.Errorf("expected stable after 3 identical, got (%q, %v)", stable, ok)
	}
}
