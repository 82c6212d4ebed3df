package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sable/internal/driver"
	"sable/internal/ui"
)

type runOutcome struct {
	results []driver.Result
	err     error
}

// runWithUI drives a lowering run behind the progress view. The run's
// phase events feed the model; the channel closes when the run ends.
func runWithUI(ctx context.Context, title string, units []string, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.PhaseEvent, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Observer = func(ev driver.PhaseEvent) { events <- ev }
		results, err := driver.Run(ctx, optsCopy)
		outcomeCh <- runOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, units, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := collectOutcome(events, outcomeCh)
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// collectOutcome drains whatever phase events the view never consumed,
// so a run stuck sending on a full channel can finish, then returns the
// run's outcome.
func collectOutcome(events <-chan driver.PhaseEvent, outcomeCh <-chan runOutcome) runOutcome {
	for range events {
	}
	return <-outcomeCh
}
