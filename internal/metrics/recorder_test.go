package metrics

import (
	"testing"
	"time"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("evaluate", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("evaluate", ResultSuccess)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	r.SetModules(3)
	r.SetOptions(10)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.ObserveStageDuration("render", time.Millisecond)
	p.IncStageResult("render", ResultFatal)
	p.IncBuildOutcome(BuildOutcomeFailed)
	p.SetModules(1)
}
