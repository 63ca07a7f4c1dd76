package optimization

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  NewError("tolerance must be positive"),
			want: "tolerance must be positive",
		},
		{
			name: "with operation",
			err:  NewError("empty initial point").WithOperation("validate"),
			want: "validate: empty initial point",
		},
		{
			name: "with component and operation",
			err:  NewError("unknown method").WithOperation("run").WithComponent("engine"),
			want: "engine: run: unknown method",
		},
		{
			name: "wrapped",
			err:  WrapError(errors.New("boom"), "run cancelled").WithComponent("descent"),
			want: "descent: run cancelled: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := NewErrorf("tolerance must be positive, got %v", -1.5)
	assert.Equal(t, "tolerance must be positive, got -1.5", err.Message)

	wrapped := WrapErrorf(errors.New("singular"), "solving step %d", 3)
	assert.Equal(t, "solving step 3", wrapped.Message)
}

func TestWrapNilError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "ignored"))
	assert.Nil(t, WrapErrorf(nil, "ignored %d", 1))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := WrapError(cause, "run failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsOptimizationError(t *testing.T) {
	e, ok := IsOptimizationError(NewError("bad input"))
	require.True(t, ok)
	assert.Equal(t, "bad input", e.Message)

	_, ok = IsOptimizationError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = IsOptimizationError(nil)
	assert.False(t, ok)

	// Wrapping an engine error in a plain fmt wrapper hides it from the
	// direct type check.
	_, ok = IsOptimizationError(fmt.Errorf("outer: %w", NewError("inner")))
	assert.False(t, ok)
}
