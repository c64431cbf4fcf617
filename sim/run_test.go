package sim

import (
	"math"
	"testing"
)

func eventsEqual(a, b Event) bool {
	if a.Source != b.Source || a.Correlated != b.Correlated {
		return false
	}
	switch {
	case (a.Hit1 == nil) != (b.Hit1 == nil), (a.Hit2 == nil) != (b.Hit2 == nil):
		return false
	case a.Hit1 != nil && *a.Hit1 != *b.Hit1:
		return false
	case a.Hit2 != nil && *a.Hit2 != *b.Hit2:
		return false
	}
	return true
}

func TestRunProducesConfiguredEventCount(t *testing.T) {
	cfg := testConfig()
	cfg.NumEvents = 321
	res := NewRunner(cfg, nil).Run()
	if len(res.Raw) != cfg.NumEvents {
		t.Fatalf("raw events = %d, want %d", len(res.Raw), cfg.NumEvents)
	}
	if len(res.Filtered) > len(res.Raw) {
		t.Fatalf("filter grew the set: %d > %d", len(res.Filtered), len(res.Raw))
	}
}

func TestRunSequentialIsDeterministic(t *testing.T) {
	cfg := testConfig()
	a := NewRunner(cfg, nil).Run()
	b := NewRunner(cfg, nil).Run()
	if len(a.Raw) != len(b.Raw) || len(a.Filtered) != len(b.Filtered) {
		t.Fatalf("run sizes diverged: %d/%d vs %d/%d",
			len(a.Raw), len(a.Filtered), len(b.Raw), len(b.Filtered))
	}
	for i := range a.Raw {
		if !eventsEqual(a.Raw[i], b.Raw[i]) {
			t.Fatalf("raw event %d diverged between identically seeded runs", i)
		}
	}
	for i := range a.Filtered {
		if a.Filtered[i] != b.Filtered[i] {
			t.Fatalf("filtered event %d diverged between identically seeded runs", i)
		}
	}
}

func TestRunAllUncorrelatedFiltersToNothing(t *testing.T) {
	cfg := testConfig()
	cfg.CorrelatedProb = 0.0
	for seed := int64(1); seed <= 5; seed++ {
		cfg.Seed = seed
		res := NewRunner(cfg, nil).Run()
		if len(res.Filtered) != 0 {
			t.Fatalf("seed %d: default filter kept %d uncorrelated events, want 0",
				seed, len(res.Filtered))
		}
	}
}

func TestRunParallelIsDeterministicPerWorkerCount(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 4
	a := NewRunner(cfg, nil).Run()
	b := NewRunner(cfg, nil).Run()
	if len(a.Raw) != cfg.NumEvents || len(b.Raw) != cfg.NumEvents {
		t.Fatalf("parallel run sizes = %d/%d, want %d", len(a.Raw), len(b.Raw), cfg.NumEvents)
	}
	for i := range a.Raw {
		if !eventsEqual(a.Raw[i], b.Raw[i]) {
			t.Fatalf("raw event %d diverged between identical parallel runs", i)
		}
	}
}

func TestRunParallelMoreWorkersThanEvents(t *testing.T) {
	cfg := testConfig()
	cfg.NumEvents = 3
	cfg.Workers = 8
	res := NewRunner(cfg, nil).Run()
	if len(res.Raw) != cfg.NumEvents {
		t.Fatalf("raw events = %d, want %d", len(res.Raw), cfg.NumEvents)
	}
}

func TestRunInvariantsHold(t *testing.T) {
	cfg := testConfig()
	res := NewRunner(cfg, nil).Run()
	for i, ev := range res.Raw {
		if ev.Hit1 != nil && math.Abs(ev.Hit1.Norm()-cfg.DetectorRadius) > eps {
			t.Fatalf("event %d: hit1 off the ring", i)
		}
		if ev.Hit2 != nil && math.Abs(ev.Hit2.Norm()-cfg.DetectorRadius) > eps {
			t.Fatalf("event %d: hit2 off the ring", i)
		}
		if math.Abs(ev.Source.Norm()-cfg.SourceRadius) > eps {
			t.Fatalf("event %d: source off the phantom boundary", i)
		}
	}
}
