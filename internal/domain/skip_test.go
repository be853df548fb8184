package domain

import "testing"

func TestSkipWindowContains(t *testing.T) {
	intro := SkipWindow{Start: 10, End: 95}
	if !intro.Contains(10) || !intro.Contains(94.9) {
		t.Fatalf("window must include start and interior")
	}
	if intro.Contains(95) || intro.Contains(9.9) {
		t.Fatalf("window must exclude end and earlier positions")
	}
	if (SkipWindow{}).Contains(0) {
		t.Fatalf("zero window must contain nothing")
	}
	if (SkipWindow{Start: 50, End: 50}).Contains(50) {
		t.Fatalf("degenerate window must contain nothing")
	}
}

func TestNextSkipTarget(t *testing.T) {
	intro := SkipWindow{Start: 10, End: 95}
	outro := SkipWindow{Start: 1300, End: 1380}

	if target, ok := NextSkipTarget(intro, outro, 20); !ok || target != 95 {
		t.Fatalf("expected intro skip to 95, got %v %v", target, ok)
	}
	if target, ok := NextSkipTarget(intro, outro, 1320); !ok || target != 1380 {
		t.Fatalf("expected outro skip to 1380, got %v %v", target, ok)
	}
	if _, ok := NextSkipTarget(intro, outro, 500); ok {
		t.Fatalf("expected no skip outside windows")
	}
}
