package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinicbook/internal/domains/appointment/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusPending, false},
		{model.StatusCompleted, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusPending, false},
		{model.StatusPending, model.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+" to "+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, model.IsTerminal(model.StatusPending))
	assert.False(t, model.IsTerminal(model.StatusConfirmed))
	assert.True(t, model.IsTerminal(model.StatusCompleted))
	assert.True(t, model.IsTerminal(model.StatusCancelled))
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		model.StatusPending, model.StatusConfirmed, model.StatusCompleted, model.StatusCancelled,
	} {
		assert.True(t, model.ValidStatus(status))
	}

	assert.False(t, model.ValidStatus("scheduled"))
	assert.False(t, model.ValidStatus(""))
	assert.False(t, model.ValidStatus("PENDING"))
}
