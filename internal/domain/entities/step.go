package entities

import "time"

// StepStatus represents the lifecycle state of a provisioning step.
type StepStatus string

const (
	StatusNotStarted StepStatus = "NOT_STARTED"
	StatusRunning    StepStatus = "RUNNING"
	StatusFailed     StepStatus = "FAILED"
	StatusCompleted  StepStatus = "COMPLETED"
)

// FailurePolicy decides what a step failure means for the rest of the
// pipeline.
type FailurePolicy string

const (
	// PolicyWarn logs the failure and lets the pipeline continue.
	PolicyWarn FailurePolicy = "WARN"

	// PolicyFatal aborts the pipeline immediately.
	PolicyFatal FailurePolicy = "FATAL"
)

// StepResult records the outcome of a single step execution.
type StepResult struct {
	Name     string
	Status   StepStatus
	Policy   FailurePolicy
	Duration time.Duration
	Err      error
}

// Report aggregates the results of one pipeline run.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []StepResult
}

// Completed reports whether every executed step finished successfully or
// was allowed to fail under a warn policy.
func (r *Report) Completed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFailed && res.Policy == PolicyFatal {
			return false
		}
	}
	return true
}

// Warnings returns the results of steps that failed but were allowed to
// continue.
func (r *Report) Warnings() []StepResult {
	var warned []StepResult
	for _, res := range r.Results {
		if res.Status == StatusFailed && res.Policy == PolicyWarn {
			warned = append(warned, res)
		}
	}
	return warned
}
