package notifier

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := NewError(ErrCodeValidation, "name is required")
	assert.Equal(t, "VALIDATION_ERROR: name is required", err.Error())

	wrapped := NewErrorWithCause(ErrCodeDatabase, "insert failed", errors.New("disk full"))
	assert.Equal(t, "DATABASE_ERROR: insert failed: disk full", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "disk full")
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		want      bool
	}{
		{"no data sentinel", ErrNoData, IsNoData, true},
		{"no data wrapped", fmt.Errorf("lookup: %w", ErrNoData), IsNoData, true},
		{"token conflict sentinel", ErrTokenConflict, IsTokenConflict, true},
		{"already exists", NewError(ErrCodeAlreadyExists, "dup"), IsAlreadyExists, true},
		{"token exhausted", NewError(ErrCodeTokenExhausted, "gave up"), IsTokenExhausted, true},
		{"delivery", NewError(ErrCodeDelivery, "telegram down"), IsDelivery, true},
		{"delivery wrapped", fmt.Errorf("relay: %w", NewError(ErrCodeDelivery, "timeout")), IsDelivery, true},
		{"plain error is nothing", errors.New("boom"), IsNoData, false},
		{"code mismatch", NewError(ErrCodeDatabase, "db"), IsAlreadyExists, false},
		{"nil error", nil, IsDelivery, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.predicate(tt.err))
		})
	}
}
