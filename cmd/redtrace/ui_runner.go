package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"redtrace/internal/pipeline"
	"redtrace/internal/ui"
)

type exportOutcome struct {
	result pipeline.ExportResult
	err    error
}

func runExportWithUI(ctx context.Context, title string, req *pipeline.ExportRequest) (pipeline.ExportResult, error) {
	if req == nil {
		return pipeline.ExportResult{}, fmt.Errorf("missing export request")
	}
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan exportOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Export(ctx, &reqCopy)
		outcomeCh <- exportOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
