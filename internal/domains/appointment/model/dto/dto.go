package dto

import (
	"time"

	"clinicbook/internal/domains/appointment/model"
	"clinicbook/shared"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	gModel "clinicbook/shared/model"
	"clinicbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	DoctorID        string  `json:"doctor_id"        validate:"required"`
	AppointmentDate string  `json:"appointment_date" validate:"required"`
	AppointmentTime string  `json:"appointment_time" validate:"required,len=5"`
	Notes           *string `json:"notes,omitempty"  validate:"omitempty,max=1000"`
}

// ToModel builds a pending appointment for the given patient with the fee
// snapshotted from the doctor profile.
func (c *CreateAppointmentRequest) ToModel(patientID string, fee float64) (model.Appointment, error) {
	appointmentDate, err := time.Parse(constant.CalendarFormat, c.AppointmentDate)
	if err != nil {
		return model.Appointment{}, err
	}

	if _, err := time.Parse(constant.ClockFormat, c.AppointmentTime); err != nil {
		return model.Appointment{}, err
	}

	return model.Appointment{
		ID:              uuid.NewString(),
		PatientID:       patientID,
		DoctorID:        c.DoctorID,
		AppointmentDate: appointmentDate,
		AppointmentTime: c.AppointmentTime,
		Status:          model.StatusPending,
		ConsultationFee: fee,
		Notes:           c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  patientID,
			ModifiedBy: patientID,
		},
	}, nil
}

type UpdateAppointmentRequest struct {
	DoctorID        *string `json:"doctor_id,omitempty"`
	AppointmentDate *string `json:"appointment_date,omitempty"`
	AppointmentTime *string `json:"appointment_time,omitempty" validate:"omitempty,len=5"`
	Notes           *string `db:"notes" json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type TransitionRequest struct {
	Status string  `json:"status"           validate:"required,oneof=pending confirmed completed cancelled"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type AppointmentResponse struct {
	ID              string  `json:"id"`
	PatientID       string  `json:"patient_id"`
	DoctorID        string  `json:"doctor_id"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	Status          string  `json:"status"`
	ConsultationFee float64 `json:"consultation_fee"`
	Notes           *string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(mod model.Appointment) {
	r.ID = mod.ID
	r.PatientID = mod.PatientID
	r.DoctorID = mod.DoctorID
	r.AppointmentDate = mod.AppointmentDate.Format(constant.CalendarFormat)
	r.AppointmentTime = mod.AppointmentTime
	r.Status = mod.Status
	r.ConsultationFee = mod.ConsultationFee
	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

type StatusLogResponse struct {
	ID            string  `json:"id"`
	AppointmentID string  `json:"appointment_id"`
	FromStatus    *string `json:"from_status,omitempty"`
	ToStatus      string  `json:"to_status"`
	Reason        *string `json:"reason,omitempty"`
	gDto.Metadata
}

func (r *StatusLogResponse) FromModel(mod model.StatusLog) {
	r.ID = mod.ID
	r.AppointmentID = mod.AppointmentID
	r.FromStatus = mod.FromStatus
	r.ToStatus = mod.ToStatus
	r.Reason = mod.Reason
	r.Metadata.FromModel(mod.Metadata)
}

type GetStatusLogsResponse struct {
	Logs []StatusLogResponse `json:"logs"`
}

func (r *GetStatusLogsResponse) FromModels(models []model.StatusLog) {
	r.Logs = make([]StatusLogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}

type MonthlyReportResponse struct {
	ID               string  `json:"id"`
	DoctorID         string  `json:"doctor_id"`
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	TotalCount       int     `json:"total_count"`
	CompletedCount   int     `json:"completed_count"`
	CancelledCount   int     `json:"cancelled_count"`
	CompletedEarning float64 `json:"completed_earning"`
	gDto.Metadata
}

func (r *MonthlyReportResponse) FromModel(mod model.MonthlyReport) {
	r.ID = mod.ID
	r.DoctorID = mod.DoctorID
	r.Year = mod.Year
	r.Month = mod.Month
	r.TotalCount = mod.TotalCount
	r.CompletedCount = mod.CompletedCount
	r.CancelledCount = mod.CancelledCount
	r.CompletedEarning = mod.CompletedEarning
	r.Metadata.FromModel(mod.Metadata)
}

type GetMonthlyReportsResponse struct {
	Reports   []MonthlyReportResponse `json:"reports"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetMonthlyReportsResponse) FromModels(models []model.MonthlyReport, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reports = make([]MonthlyReportResponse, len(models))
	for i, mod := range models {
		r.Reports[i].FromModel(mod)
	}
}

type ReminderResponse struct {
	ID            string `json:"id"`
	AppointmentID string `json:"appointment_id"`
	ReminderType  string `json:"reminder_type"`
	SentAt        string `json:"sent_at"`
	gDto.Metadata
}

func (r *ReminderResponse) FromModel(mod model.Reminder) {
	r.ID = mod.ID
	r.AppointmentID = mod.AppointmentID
	r.ReminderType = mod.ReminderType
	r.SentAt = mod.SentAt.Format(time.RFC3339)
	r.Metadata.FromModel(mod.Metadata)
}

type GetRemindersResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
}

func (r *GetRemindersResponse) FromModels(models []model.Reminder) {
	r.Reminders = make([]ReminderResponse, len(models))
	for i, mod := range models {
		r.Reminders[i].FromModel(mod)
	}
}

// ReminderMessage is the payload published to the notification topic when
// an appointment reminder is due.
type ReminderMessage struct {
	AppointmentID   string  `json:"appointment_id"`
	PatientID       string  `json:"patient_id"`
	DoctorID        string  `json:"doctor_id"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	ReminderType    string  `json:"reminder_type"`
	ConsultationFee float64 `json:"consultation_fee"`
}

func (m *ReminderMessage) FromModel(mod model.Appointment) {
	m.AppointmentID = mod.ID
	m.PatientID = mod.PatientID
	m.DoctorID = mod.DoctorID
	m.AppointmentDate = mod.AppointmentDate.Format(constant.CalendarFormat)
	m.AppointmentTime = mod.AppointmentTime
	m.ReminderType = model.ReminderType24Hours
	m.ConsultationFee = mod.ConsultationFee
}
