package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinicbook/internal/domains/schedule/model"
)

func TestTimeSlot_Covers(t *testing.T) {
	slot := model.TimeSlot{StartTime: "09:00", EndTime: "12:00"}

	tests := []struct {
		clock string
		want  bool
	}{
		{"08:59", false},
		{"09:00", true},
		{"10:30", true},
		{"11:59", true},
		{"12:00", false},
		{"15:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			assert.Equal(t, tt.want, slot.Covers(tt.clock))
		})
	}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	slot := model.TimeSlot{StartTime: "09:00", EndTime: "12:00"}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical window", "09:00", "12:00", true},
		{"partial overlap at start", "08:00", "10:00", true},
		{"partial overlap at end", "11:00", "13:00", true},
		{"containing window", "08:00", "13:00", true},
		{"contained window", "10:00", "11:00", true},
		{"back-to-back before", "07:00", "09:00", false},
		{"back-to-back after", "12:00", "14:00", false},
		{"disjoint", "14:00", "16:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slot.Overlaps(tt.start, tt.end))
		})
	}
}
