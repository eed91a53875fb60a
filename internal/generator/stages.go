package generator

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/optionbook/internal/logfields"
	"git.home.luguber.info/inful/optionbook/internal/metrics"
)

// StageName identifies a pipeline stage.
type StageName string

const (
	StageResolve    StageName = "resolve"
	StageEvaluate   StageName = "evaluate"
	StageBuildTree  StageName = "build_tree"
	StageRender     StageName = "render"
	StageAssemble   StageName = "assemble"
	StageRunBuilder StageName = "run_builder"
	StageFinalize   StageName = "finalize"
)

// Stage executes one step against the shared build state.
type Stage func(ctx context.Context, bs *buildState) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// runStages executes stages in order, recording timing and stopping on the first error.
func runStages(ctx context.Context, bs *buildState, stages []StageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			bs.recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return classify(st.Name, err)
		}
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.report.StageDurations[st.Name] = dur
		bs.recorder.ObserveStageDuration(string(st.Name), dur)
		if err != nil {
			result := metrics.ResultFatal
			if ctx.Err() != nil {
				result = metrics.ResultCanceled
			}
			bs.recorder.IncStageResult(string(st.Name), result)
			return classify(st.Name, err)
		}
		bs.recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
		bs.logger.Debug("Stage complete", logfields.Stage(string(st.Name)), logfields.DurationMS(float64(dur.Microseconds())/1000))
		if bs.skip {
			bs.logger.Info("Nothing to build; skipping remaining stages", slog.String("reason", bs.report.SkipReason))
			return nil
		}
	}
	return nil
}
