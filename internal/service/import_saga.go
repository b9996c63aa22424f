package service

import (
	"context"
	"errors"
	"fmt"
)

type compensacion struct {
	paso     string
	deshacer func(ctx context.Context) error
}

// sagaFila records the writes made for one row so they can be undone when
// the row is interrupted before it finishes.
type sagaFila struct {
	pasos []compensacion
}

func (s *sagaFila) registrar(paso string, deshacer func(ctx context.Context) error) {
	s.pasos = append(s.pasos, compensacion{paso: paso, deshacer: deshacer})
}

// compensar undoes the recorded steps newest first. It keeps going after a
// failed step and runs even when ctx is already cancelled.
func (s *sagaFila) compensar(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for i := len(s.pasos) - 1; i >= 0; i-- {
		p := s.pasos[i]
		if err := p.deshacer(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.paso, err))
		}
	}
	s.pasos = nil
	return errors.Join(errs...)
}
