package scheduler

import "time"

// Recorder observes optimizer progress. internal/metrics provides the
// Prometheus implementation.
type Recorder interface {
	ObserveAttempt(score int, failed bool, elapsed time.Duration)
	ObserveResult(result *Result)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAttempt(int, bool, time.Duration) {}
func (nopRecorder) ObserveResult(*Result)                   {}
