package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/pkg/logger"
)

// sagaStep is one action of a multi-step effect sequence together with the
// compensation that undoes it
type sagaStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// saga executes steps in order and compensates applied steps in reverse
// order when a later step fails. There is no central transaction manager;
// this is the unit that keeps list/buy/cancel from straddling.
type saga struct {
	name  string
	steps []sagaStep
}

func newSaga(name string) *saga {
	return &saga{name: name}
}

func (s *saga) add(name string, run, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, sagaStep{name: name, run: run, compensate: compensate})
}

// execute runs every step. On step failure the already-applied steps are
// compensated newest-first and the step error is returned. If a compensation
// itself fails the error is ErrInconsistentState so a reconciliation path
// can act on it.
func (s *saga) execute(ctx context.Context) error {
	applied := make([]sagaStep, 0, len(s.steps))
	for _, step := range s.steps {
		if err := step.run(ctx); err != nil {
			if compErr := s.rollback(ctx, applied); compErr != nil {
				return fmt.Errorf("%s failed at %s (%v): %w", s.name, step.name, err, compErr)
			}
			return fmt.Errorf("%s failed at %s: %w", s.name, step.name, err)
		}
		applied = append(applied, step)
	}
	return nil
}

func (s *saga) rollback(ctx context.Context, applied []sagaStep) error {
	for i := len(applied) - 1; i >= 0; i-- {
		step := applied[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(ctx); err != nil {
			logger.Error(ctx, "saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", step.name),
				zap.Error(err),
			)
			return fmt.Errorf("compensating %s: %v: %w", step.name, err, domainerrors.ErrInconsistentState)
		}
		logger.Debug(ctx, "saga step compensated",
			zap.String("saga", s.name),
			zap.String("step", step.name),
		)
	}
	return nil
}
