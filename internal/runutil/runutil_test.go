package runutil

import "testing"

func TestEffectiveThreads(t *testing.T) {
	old := numCPU
	defer func() { numCPU = old }()

	numCPU = func() int { return 12 }
	if got := EffectiveThreads(3); got != 3 {
		t.Fatalf("explicit request: want 3, got %d", got)
	}
	if got := EffectiveThreads(0); got != 12 {
		t.Fatalf("0 = all CPUs → want 12, got %d", got)
	}
	if got := EffectiveThreads(-4); got != 12 {
		t.Fatalf("negative = all CPUs → want 12, got %d", got)
	}

	numCPU = func() int { return 0 }
	if got := EffectiveThreads(0); got != FallbackThreads {
		t.Fatalf("no CPUs reported → want fallback %d, got %d", FallbackThreads, got)
	}
}

func TestValidateListMode(t *testing.T) {
	for _, m := range []string{ListAuto, ListAlways, ListNever} {
		if err := ValidateListMode(m); err != nil {
			t.Fatalf("%q: unexpected error %v", m, err)
		}
	}
	if err := ValidateListMode("sometimes"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestShouldList(t *testing.T) {
	yes := func() bool { return true }
	no := func() bool { return false }
	asked := false
	spy := func() bool { asked = true; return true }

	cases := []struct {
		name      string
		mode      string
		count     int
		threshold int
		ask       func() bool
		want      bool
	}{
		{"never", ListNever, 3, 32, yes, false},
		{"always", ListAlways, 10000, 32, no, true},
		{"auto small", ListAuto, 31, 32, no, true},
		{"auto large asks yes", ListAuto, 32, 32, yes, true},
		{"auto large asks no", ListAuto, 168, 32, no, false},
		{"auto large no prompt", ListAuto, 168, 32, nil, false},
		{"auto default threshold", ListAuto, 25, 0, nil, true},
	}
	for _, c := range cases {
		if got := ShouldList(c.mode, c.count, c.threshold, c.ask); got != c.want {
			t.Errorf("%s: want %v, got %v", c.name, c.want, got)
		}
	}

	ShouldList(ListAuto, 5, 32, spy)
	if asked {
		t.Fatalf("small lists must not prompt")
	}
}
