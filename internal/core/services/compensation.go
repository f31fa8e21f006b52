package services

import (
	"context"
	"log/slog"

	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// compensationStep is one committed workflow step together with the action
// that undoes it.
type compensationStep struct {
	name string
	undo func(ctx context.Context) error
}

// compensationStack collects undo actions as a multi-step workflow commits
// its parts. When a later step fails, unwind runs the undos in reverse
// order. An undo that itself fails is logged and skipped so the remaining
// steps still get rolled back; the failure leaves a trace for manual repair
// rather than masking the original error.
type compensationStack struct {
	steps []compensationStep
}

func (cs *compensationStack) push(name string, undo func(ctx context.Context) error) {
	cs.steps = append(cs.steps, compensationStep{name: name, undo: undo})
}

func (cs *compensationStack) unwind(ctx context.Context) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for i := len(cs.steps) - 1; i >= 0; i-- {
		step := cs.steps[i]
		if err := step.undo(ctx); err != nil {
			logger.Error("Compensation step failed",
				slog.String("step", step.name),
				slog.String("error", err.Error()),
			)
			continue
		}
		logger.Info("Compensation step applied", slog.String("step", step.name))
	}
	cs.steps = nil
}
