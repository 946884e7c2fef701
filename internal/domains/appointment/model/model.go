package model

import (
	"time"

	"clinicbook/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	StatusLogTableName  = "appointment_status_logs"
	StatusLogEntityName = "appointment_status_log"

	ReminderTableName  = "appointment_reminders"
	ReminderEntityName = "appointment_reminder"

	ReportTableName  = "monthly_reports"
	ReportEntityName = "monthly_report"

	FieldID              = "id"
	FieldPatientID       = "patient_id"
	FieldDoctorID        = "doctor_id"
	FieldAppointmentDate = "appointment_date"
	FieldAppointmentTime = "appointment_time"
	FieldStatus          = "status"
	FieldAppointmentID   = "appointment_id"
	FieldReminderType    = "reminder_type"
	FieldYear            = "year"
	FieldMonth           = "month"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const ReminderType24Hours = "24_hours"

// transitions is the appointment lifecycle: pending is the entry state,
// completed and cancelled are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether moving from one status to another is a
// legal lifecycle step.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

// IsTerminal reports whether a status permits no further changes.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// ValidStatus reports whether the value is a known appointment status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// Appointment is a patient's booking with a doctor on a calendar date at a
// wall-clock time. ConsultationFee is copied from the doctor profile at
// booking time, so fee changes never affect existing appointments.
type Appointment struct {
	ID              string    `db:"id"`
	PatientID       string    `db:"patient_id"`
	DoctorID        string    `db:"doctor_id"`
	AppointmentDate time.Time `db:"appointment_date"`
	AppointmentTime string    `db:"appointment_time"`
	Status          string    `db:"status"`
	ConsultationFee float64   `db:"consultation_fee"`
	Notes           *string   `db:"notes"`
	model.Metadata
}

// StatusLog records one lifecycle transition of an appointment. The
// metadata's created_at/created_by double as the transition timestamp and
// actor.
type StatusLog struct {
	ID            string  `db:"id"`
	AppointmentID string  `db:"appointment_id"`
	FromStatus    *string `db:"from_status"`
	ToStatus      string  `db:"to_status"`
	Reason        *string `db:"reason"`
	model.Metadata
}

// Reminder marks that a notification of the given type was already sent
// for an appointment, making the reminder job idempotent.
type Reminder struct {
	ID            string    `db:"id"`
	AppointmentID string    `db:"appointment_id"`
	ReminderType  string    `db:"reminder_type"`
	SentAt        time.Time `db:"sent_at"`
	model.Metadata
}

// MonthlyReport is a per-doctor aggregate for one calendar month.
type MonthlyReport struct {
	ID               string  `db:"id"`
	DoctorID         string  `db:"doctor_id"`
	Year             int     `db:"year"`
	Month            int     `db:"month"`
	TotalCount       int     `db:"total_count"`
	CompletedCount   int     `db:"completed_count"`
	CancelledCount   int     `db:"cancelled_count"`
	CompletedEarning float64 `db:"completed_earning"`
	model.Metadata
}

// MonthlySummaryRow is one row of the aggregation query feeding monthly
// report generation.
type MonthlySummaryRow struct {
	DoctorID         string  `db:"doctor_id"`
	TotalCount       int     `db:"total_count"`
	CompletedCount   int     `db:"completed_count"`
	CancelledCount   int     `db:"cancelled_count"`
	CompletedEarning float64 `db:"completed_earning"`
}
