package pipeline

import (
	"context"
	"fmt"
	"time"

	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"
	"bsdsetup/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

const logDurationPrecision = time.Millisecond

// Runner executes provisioning steps strictly in declared order. There is
// no dependency graph: step order encodes all ordering invariants. No step
// is retried and nothing is rolled back; the recovery path for a failed
// run is re-running the whole pipeline, which every step must tolerate.
type Runner struct {
	logger *logrus.Logger
	clock  interfaces.Clock
}

// NewRunner creates a new Runner.
func NewRunner(logger *logrus.Logger, clock interfaces.Clock) *Runner {
	return &Runner{
		logger: logger,
		clock:  clock,
	}
}

// Run executes the steps. A failure in a PolicyFatal step stops the
// pipeline immediately and is returned; PolicyWarn failures are logged and
// the pipeline continues. The report covers every step that was reached.
func (r *Runner) Run(ctx context.Context, steps []interfaces.Step) (*entities.Report, error) {
	report := &entities.Report{StartedAt: r.clock.Now()}
	defer func() { report.FinishedAt = r.clock.Now() }()

	r.logger.WithField("steps", len(steps)).Info("Provisioning started")

	for i, step := range steps {
		select {
		case <-ctx.Done():
			return report, errors.NewSystemError("provisioning interrupted", ctx.Err())
		default:
		}

		result := entities.StepResult{
			Name:   step.Name(),
			Status: entities.StatusRunning,
			Policy: step.Policy(),
		}

		r.logger.WithFields(logrus.Fields{
			"step":     step.Name(),
			"position": fmt.Sprintf("%d/%d", i+1, len(steps)),
		}).Info("Step starting")

		started := r.clock.Now()
		err := step.Run(ctx)
		result.Duration = r.clock.Now().Sub(started)

		if err != nil {
			result.Status = entities.StatusFailed
			result.Err = err
			report.Results = append(report.Results, result)
			metrics.RecordStep(step.Name(), "failed", result.Duration.Seconds())
			metrics.RecordError(string(errors.TypeOf(err)))

			if step.Policy() == entities.PolicyFatal {
				r.logger.WithError(err).WithField("step", step.Name()).
					Error("Fatal step failure, aborting pipeline")
				return report, fmt.Errorf("step %s failed: %w", step.Name(), err)
			}

			r.logger.WithError(err).WithField("step", step.Name()).
				Warn("Step failed, continuing")
			continue
		}

		result.Status = entities.StatusCompleted
		report.Results = append(report.Results, result)
		metrics.RecordStep(step.Name(), "completed", result.Duration.Seconds())

		r.logger.WithFields(logrus.Fields{
			"step":     step.Name(),
			"duration": result.Duration.Round(logDurationPrecision).String(),
		}).Info("Step completed")
	}

	r.logger.Info("Provisioning completed")
	return report, nil
}
