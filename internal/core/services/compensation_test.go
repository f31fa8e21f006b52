package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompensationStack_UnwindsInReverseOrder(t *testing.T) {
	var cs compensationStack
	var order []string

	cs.push("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	cs.push("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})
	cs.push("third", func(ctx context.Context) error {
		order = append(order, "third")
		return nil
	})

	cs.unwind(context.Background())

	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestCompensationStack_FailedUndoDoesNotStopUnwind(t *testing.T) {
	var cs compensationStack
	var order []string

	cs.push("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	cs.push("second", func(ctx context.Context) error {
		order = append(order, "second")
		return errors.New("undo failed")
	})
	cs.push("third", func(ctx context.Context) error {
		order = append(order, "third")
		return nil
	})

	cs.unwind(context.Background())

	// The failing step is attempted, logged and skipped; the steps beneath
	// it still roll back.
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestCompensationStack_UnwindClearsSteps(t *testing.T) {
	var cs compensationStack
	calls := 0

	cs.push("only", func(ctx context.Context) error {
		calls++
		return nil
	})

	cs.unwind(context.Background())
	cs.unwind(context.Background())

	assert.Equal(t, 1, calls)
}

func TestCompensationStack_EmptyUnwindIsNoop(t *testing.T) {
	var cs compensationStack
	cs.unwind(context.Background())
	assert.Empty(t, cs.steps)
}
