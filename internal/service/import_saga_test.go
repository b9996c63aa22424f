package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSagaFila_CompensatesInReverse(t *testing.T) {
	var orden []string
	saga := &sagaFila{}
	for _, paso := range []string{"grupo", "ana", "juan"} {
		saga.registrar(paso, func(ctx context.Context) error {
			require.NoError(t, ctx.Err())
			orden = append(orden, paso)
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, saga.compensar(ctx))
	assert.Equal(t, []string{"juan", "ana", "grupo"}, orden)

	// steps are consumed
	require.NoError(t, saga.compensar(ctx))
	assert.Len(t, orden, 3)
}

func TestSagaFila_JoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	saga := &sagaFila{}
	saga.registrar("a", func(context.Context) error { return errA })
	saga.registrar("ok", func(context.Context) error { return nil })
	saga.registrar("b", func(context.Context) error { return errB })

	err := saga.compensar(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, err.Error(), "b: b failed")
}
