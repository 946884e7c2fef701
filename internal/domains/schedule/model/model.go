package model

import "clinicbook/shared/model"

const (
	TableName  = "time_slots"
	EntityName = "time_slot"

	FieldID        = "id"
	FieldDoctorID  = "doctor_id"
	FieldWeekday   = "weekday"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
)

// TimeSlot is a recurring weekly availability window for a doctor.
// Weekday follows time.Weekday numbering (0 = Sunday .. 6 = Saturday).
// StartTime and EndTime are zero-padded "HH:MM" wall-clock strings; the
// window is half-open, a slot ending at 12:00 does not cover 12:00.
type TimeSlot struct {
	ID        string `db:"id"`
	DoctorID  string `db:"doctor_id"`
	Weekday   int    `db:"weekday"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	model.Metadata
}

// Covers reports whether the wall-clock time t falls inside the slot.
// Zero-padded "HH:MM" strings compare correctly as strings.
func (s TimeSlot) Covers(t string) bool {
	return s.StartTime <= t && t < s.EndTime
}

// Overlaps reports whether two half-open windows intersect. Back-to-back
// slots (one ending exactly when the other starts) do not overlap.
func (s TimeSlot) Overlaps(start, end string) bool {
	return s.StartTime < end && s.EndTime > start
}
