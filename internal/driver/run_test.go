package driver

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"sable/internal/corpus"
	"sable/internal/diag"
)

func TestRunAllFixtures(t *testing.T) {
	results, err := Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := corpus.All()
	if len(results) != len(want) {
		t.Fatalf("Run returned %d results, want %d", len(results), len(want))
	}
	for i, res := range results {
		if res.Name != want[i].Name {
			t.Fatalf("result %d is %q, want %q", i, res.Name, want[i].Name)
		}
		if res.Unit == nil {
			t.Fatalf("%s: no lowered unit", res.Name)
		}
		if res.Bag.HasErrors() {
			t.Fatalf("%s: unexpected errors: %v", res.Name, res.Bag.Items())
		}
		if res.Timing == nil || len(res.Timing.Phases) == 0 {
			t.Fatalf("%s: no timing report", res.Name)
		}
	}
}

func TestRunSelectsByName(t *testing.T) {
	results, err := Run(context.Background(), Options{
		Fixtures: []string{"ranges", "iterate"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 2 || results[0].Name != "ranges" || results[1].Name != "iterate" {
		t.Fatalf("selection order not kept: %v", resultNames(results))
	}
}

func TestRunUnknownFixture(t *testing.T) {
	if _, err := Run(context.Background(), Options{Fixtures: []string{"nope"}}); err == nil {
		t.Fatalf("expected an error for an unknown fixture")
	}
}

func TestRunTimingsDiagnostic(t *testing.T) {
	results, err := Run(context.Background(), Options{
		Fixtures: []string{"fallible"},
		Timings:  true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var entry *diag.Diagnostic
	for _, d := range results[0].Bag.Items() {
		if d.Code == diag.ObsTimings {
			entry = &d
			break
		}
	}
	if entry == nil {
		t.Fatalf("timings diagnostic missing from the bag")
	}
	if entry.Severity != diag.SevInfo {
		t.Fatalf("timings diagnostic has severity %s, want INFO", entry.Severity)
	}
	if len(entry.Notes) != 1 {
		t.Fatalf("timings diagnostic has %d notes, want 1", len(entry.Notes))
	}
	var payload timingPayload
	if err := json.Unmarshal([]byte(entry.Notes[0].Msg), &payload); err != nil {
		t.Fatalf("timings note is not valid JSON: %v", err)
	}
	if payload.Kind != "lower" || payload.Unit != "fallible" {
		t.Fatalf("payload = %q/%q, want lower/fallible", payload.Kind, payload.Unit)
	}
	if len(payload.Phases) == 0 {
		t.Fatalf("payload lists no phases")
	}
}

func TestRunEmitsPhaseEvents(t *testing.T) {
	var mu sync.Mutex
	var events []PhaseEvent
	_, err := Run(context.Background(), Options{
		Jobs: 1,
		Observer: func(ev PhaseEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := 2 * len(corpus.All())
	if len(events) != want {
		t.Fatalf("observer saw %d events, want %d", len(events), want)
	}
	for i := 0; i < len(events); i += 2 {
		start, end := events[i], events[i+1]
		if start.Status != PhaseStart || end.Status != PhaseEnd {
			t.Fatalf("event pair %d is %v/%v, want start/end", i/2, start.Status, end.Status)
		}
		if start.Name != end.Name {
			t.Fatalf("event pair %d spans units %q and %q", i/2, start.Name, end.Name)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, Options{}); err == nil {
		t.Fatalf("expected a context error from a cancelled run")
	}
}

func TestRunCacheHit(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenCache("sable-test")
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}

	opts := Options{Fixtures: []string{"machinery"}, Cache: cache}
	first, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if first[0].Cached {
		t.Fatalf("first run hit a cold cache")
	}
	if first[0].Unit == nil {
		t.Fatalf("first run carried no lowered unit")
	}

	second, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if !second[0].Cached {
		t.Fatalf("second run missed the cache")
	}
	if second[0].Unit != nil {
		t.Fatalf("cache hits carry no lowered tree")
	}
	if got, want := second[0].Bag.Len(), first[0].Bag.Len(); got != want {
		t.Fatalf("cached bag has %d diagnostics, want %d", got, want)
	}
}

func resultNames(results []Result) []string {
	names := make([]string, len(results))
	for i := range results {
		names[i] = results[i].Name
	}
	return names
}
