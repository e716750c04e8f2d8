package forecast

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"tempcast/pkg/llm"
)

type State string

const (
	StateIdle       State = "idle"
	StateNoData     State = "no_data"
	StateDataLoaded State = "data_loaded"
	StateResponded  State = "responded"
)

const (
	NoDataMessage = "ERROR: no readings found in the data source."
	ResultHeader  = "  PREDICTION FOR THE NEXT 24 HOURS"
)

// SeriesLoader yields the rendered reading history; "" means no history.
type SeriesLoader interface {
	LoadHistoricalSeries(ctx context.Context) (string, error)
}

type Orchestrator struct {
	loader    SeriesLoader
	predictor llm.Predictor
	out       io.Writer
}

func NewOrchestrator(loader SeriesLoader, predictor llm.Predictor, out io.Writer) *Orchestrator {
	return &Orchestrator{loader: loader, predictor: predictor, out: out}
}

// Outcome reports where a run ended. Result is zero unless State is StateResponded.
type Outcome struct {
	State  State
	Result llm.Result
}

// Run executes one pipeline pass. Only a data-source failure is returned as
// an error; inference failures are printed as the result.
func (o *Orchestrator) Run(ctx context.Context) (Outcome, error) {
	outcome := Outcome{State: StateIdle}

	series, err := o.loader.LoadHistoricalSeries(ctx)
	if err != nil {
		return outcome, fmt.Errorf("load readings: %w", err)
	}

	if series == "" {
		outcome.State = StateNoData
		fmt.Fprintln(o.out, NoDataMessage)
		return outcome, nil
	}

	outcome.State = StateDataLoaded

	prompt := llm.BuildPredictionPrompt(series)
	result := o.predictor.Predict(ctx, prompt)
	if result.Failed() {
		slog.Warn("prediction failed", "kind", result.Kind, "message", result.Text)
	}

	outcome.State = StateResponded
	outcome.Result = result

	fmt.Fprintln(o.out, ResultHeader)
	fmt.Fprintln(o.out, result.Text)

	return outcome, nil
}
