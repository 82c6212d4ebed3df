package main

import (
	"testing"
	"time"

	"sable/internal/driver"
)

// A run that outlives the progress view keeps sending phase events; the
// collector must drain them so the sender can reach its outcome write.
func TestCollectOutcomeDrainsPendingEvents(t *testing.T) {
	events := make(chan driver.PhaseEvent, 4)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		for i := 0; i < 64; i++ {
			events <- driver.PhaseEvent{Name: "unit", Status: driver.PhaseStart}
		}
		outcomeCh <- runOutcome{results: []driver.Result{{Name: "unit"}}}
		close(events)
	}()

	done := make(chan runOutcome, 1)
	go func() { done <- collectOutcome(events, outcomeCh) }()

	select {
	case outcome := <-done:
		if len(outcome.results) != 1 || outcome.results[0].Name != "unit" {
			t.Fatalf("outcome lost in the drain: %+v", outcome.results)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("collector deadlocked on pending events")
	}
}
