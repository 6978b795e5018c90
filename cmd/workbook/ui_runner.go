package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"workbook/internal/batch"
	"workbook/internal/ui"
)

type batchOutcome struct {
	results []batch.FileResult
	err     error
}

func runBatchWithUI(ctx context.Context, title string, files []string, req batch.Request) ([]batch.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		req.Progress = batch.ChannelSink{Ch: events}
		res, err := batch.RunFiles(ctx, files, req)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	final, uiErr := program.Run()
	if pm, ok := final.(interface{ Finished() bool }); uiErr != nil || (ok && !pm.Finished()) {
		// окно закрыто до конца прогона
		cancel()
	}
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
