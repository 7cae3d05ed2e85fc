package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rlint/internal/driver"
	"rlint/internal/source"
	"rlint/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

type fixBatchOutcome struct {
	outcomes []driver.FixOutcome
	err      error
}

// progressSink adapts driver progress callbacks to the UI event channel.
func progressSink(events chan<- ui.Event) func(driver.ProgressEvent) {
	return func(ev driver.ProgressEvent) {
		status := ui.StatusWorking
		switch ev.State {
		case driver.ProgressDone:
			status = ui.StatusDone
		case driver.ProgressFailed:
			status = ui.StatusError
		}
		events <- ui.Event{File: ev.Path, Status: status, Note: ev.Note}
	}
}

func runCheckWithUI(ctx context.Context, session *driver.Session, paths []string) (*source.FileSet, []driver.FileResult, error) {
	files, err := session.ListFiles(paths)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan ui.Event, 256)
	session.SetProgress(progressSink(events))
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		fs, results, err := session.CheckPaths(ctx, paths)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("rlint check", "checking", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

func runFixWithUI(ctx context.Context, session *driver.Session, paths []string, unsafeFixes, dryRun bool) ([]driver.FixOutcome, error) {
	files, err := session.ListFiles(paths)
	if err != nil {
		return nil, err
	}

	events := make(chan ui.Event, 256)
	session.SetProgress(progressSink(events))
	outcomeCh := make(chan fixBatchOutcome, 1)

	go func() {
		outcomes, err := session.FixPaths(ctx, paths, unsafeFixes, dryRun)
		outcomeCh <- fixBatchOutcome{outcomes: outcomes, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("rlint fix", "fixing", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.outcomes, uiErr
	}
	return outcome.outcomes, outcome.err
}
