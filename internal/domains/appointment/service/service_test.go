package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"clinicbook/config"
	kafkaMocks "clinicbook/infras/kafka/mocks"
	"clinicbook/infras/otel/mocks"
	appointmentMocks "clinicbook/internal/domains/appointment/mocks"
	"clinicbook/internal/domains/appointment/model"
	"clinicbook/internal/domains/appointment/model/dto"
	"clinicbook/internal/domains/appointment/service"
	doctorMocks "clinicbook/internal/domains/doctor/mocks"
	doctorModel "clinicbook/internal/domains/doctor/model"
	scheduleMocks "clinicbook/internal/domains/schedule/mocks"
	cacheMocks "clinicbook/shared/cache/mocks"
	"clinicbook/shared/constant"
	gModel "clinicbook/shared/model"
	"clinicbook/shared/timezone"
)

const (
	patientID     = "patient-id-1"
	doctorID      = "doctor-id-1"
	appointmentID = "appointment-id-1"
)

type fixture struct {
	svc          service.Appointment
	repo         *appointmentMocks.MockAppointment
	logRepo      *appointmentMocks.MockStatusLog
	reminderRepo *appointmentMocks.MockReminder
	reportRepo   *appointmentMocks.MockReport
	doctorRepo   *doctorMocks.MockProfile
	schedule     *scheduleMocks.MockSchedule
	broker       *kafkaMocks.MockClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:         appointmentMocks.NewMockAppointment(ctrl),
		logRepo:      appointmentMocks.NewMockStatusLog(ctrl),
		reminderRepo: appointmentMocks.NewMockReminder(ctrl),
		reportRepo:   appointmentMocks.NewMockReport(ctrl),
		doctorRepo:   doctorMocks.NewMockProfile(ctrl),
		schedule:     scheduleMocks.NewMockSchedule(ctrl),
		broker:       kafkaMocks.NewMockClient(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	// Cache-aside reads miss and async invalidation may run after the test body.
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Booking.BusinessHoursStart = "09:00"
	cfg.Booking.BusinessHoursEnd = "17:00"
	cfg.Jobs.NotificationTopic = "clinicbook.notifications"

	f.svc = service.New(
		f.repo, f.logRepo, f.reminderRepo, f.reportRepo,
		f.doctorRepo, f.schedule, cfg, mockCache, mocks.NewOtel(), f.broker,
	)

	return f
}

func patientCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, patientID)
}

func futureDate(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format(constant.CalendarFormat)
}

func validProfile() doctorModel.Profile {
	return doctorModel.Profile{
		ID:              doctorID,
		UserID:          "doctor-user-1",
		ConsultationFee: 500,
	}
}

func storedAppointment(status string) model.Appointment {
	date, _ := time.Parse(constant.CalendarFormat, futureDate(7))

	return model.Appointment{
		ID:              appointmentID,
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "10:00",
		Status:          status,
		ConsultationFee: 500,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  patientID,
			ModifiedBy: patientID,
		},
	}
}

// beginTx hands out a real transaction so the commit/rollback boundary is
// observable; the statements inside it run against gomock repositories.
func beginTx(t *testing.T) (*sqlx.Tx, sqlmock.Sqlmock) {
	t.Helper()

	db, smock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	smock.ExpectBegin()

	tx, err := sqlx.NewDb(db, "sqlmock").Beginx()
	assert.NoError(t, err)

	return tx, smock
}

func TestAppointmentService_Create(t *testing.T) {
	t.Run("successful booking", func(t *testing.T) {
		f := newFixture(t)
		tx, smock := beginTx(t)
		smock.ExpectCommit()

		f.doctorRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validProfile(), nil)
		f.schedule.EXPECT().IsAvailable(gomock.Any(), doctorID, gomock.Any(), "10:00").Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)

		var createdID string

		f.repo.EXPECT().InsertTx(gomock.Any(), tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, appointment model.Appointment) error {
				createdID = appointment.ID

				assert.Equal(t, model.StatusPending, appointment.Status)
				assert.Equal(t, float64(500), appointment.ConsultationFee)
				assert.Equal(t, patientID, appointment.PatientID)
				assert.Equal(t, doctorID, appointment.DoctorID)

				return nil
			})
		f.logRepo.EXPECT().InsertTx(gomock.Any(), tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, entry model.StatusLog) error {
				assert.Equal(t, createdID, entry.AppointmentID)
				assert.Nil(t, entry.FromStatus)
				assert.Equal(t, model.StatusPending, entry.ToStatus)
				assert.Equal(t, patientID, entry.Metadata.CreatedBy)

				return nil
			})

		err := f.svc.Create(patientCtx(), dto.CreateAppointmentRequest{
			DoctorID:        doctorID,
			AppointmentDate: futureDate(7),
			AppointmentTime: "10:00",
		})
		assert.NoError(t, err)
		assert.NoError(t, smock.ExpectationsWereMet())
	})

	t.Run("unique violation on insert rolls back as a conflict", func(t *testing.T) {
		f := newFixture(t)
		tx, smock := beginTx(t)
		smock.ExpectRollback()

		f.doctorRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validProfile(), nil)
		f.schedule.EXPECT().IsAvailable(gomock.Any(), doctorID, gomock.Any(), "10:00").Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), tx, gomock.Any()).Return(&pq.Error{Code: "23505"})

		err := f.svc.Create(patientCtx(), dto.CreateAppointmentRequest{
			DoctorID:        doctorID,
			AppointmentDate: futureDate(7),
			AppointmentTime: "10:00",
		})
		assert.ErrorIs(t, err, service.ErrSlotAlreadyBooked)
		assert.NoError(t, smock.ExpectationsWereMet())
	})

	t.Run("anonymous caller rejected", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Create(context.Background(), dto.CreateAppointmentRequest{
			DoctorID:        doctorID,
			AppointmentDate: futureDate(7),
			AppointmentTime: "10:00",
		})
		assert.Error(t, err)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		f := newFixture(t)

		f.doctorRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(doctorModel.Profile{}, nil)

		err := f.svc.Create(patientCtx(), dto.CreateAppointmentRequest{
			DoctorID:        "missing-doctor",
			AppointmentDate: futureDate(7),
			AppointmentTime: "10:00",
		})
		assert.Error(t, err)
	})

	t.Run("past date rejected", func(t *testing.T) {
		f := newFixture(t)

		f.doctorRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validProfile(), nil)

		err := f.svc.Create(patientCtx(), dto.CreateAppointmentRequest{
			DoctorID:        doctorID,
			AppointmentDate: futureDate(-1),
			AppointmentTime: "10:00",
		})
		assert.ErrorIs(t, err, service.ErrPastDate)
	})

	t.Run("before opening rejected", func(t *testing.T) {
		f := newFixture(t)

		f.doctorRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validProfile(), nil)

		err := f.svc.Create(patientCtx(), dto.CreateAppointmentRequest{
			DoctorID:        doctorID,
			AppointmentDate: futureDate(7),
			AppointmentTime: "08:59",
		})
		assert.ErrorIs(t, err, service.ErrOutsideBusinessHours)
	})

	t.Run("after closing rejected", func(t *testing.T) {
		f := newFixture(t)

		f.doctorRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validProfile(), nil)

		err := f.svc.Create(patientCtx(), dto.CreateAppointmentRequest{
			DoctorID:        doctorID,
			AppointmentDate: futureDate(7),
			AppointmentTime: "17:01",
		})
		assert.ErrorIs(t, err, service.ErrOutsideBusinessHours)
	})

	t.Run("doctor unavailable", func(t *testing.T) {
		f := newFixture(t)

		f.doctorRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validProfile(), nil)
		f.schedule.EXPECT().IsAvailable(gomock.Any(), doctorID, gomock.Any(), "10:00").Return(false, nil)

		err := f.svc.Create(patientCtx(), dto.CreateAppointmentRequest{
			DoctorID:        doctorID,
			AppointmentDate: futureDate(7),
			AppointmentTime: "10:00",
		})
		assert.ErrorIs(t, err, service.ErrDoctorUnavailable)
	})

	t.Run("slot already booked", func(t *testing.T) {
		f := newFixture(t)

		f.doctorRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validProfile(), nil)
		f.schedule.EXPECT().IsAvailable(gomock.Any(), doctorID, gomock.Any(), "10:00").Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Create(patientCtx(), dto.CreateAppointmentRequest{
			DoctorID:        doctorID,
			AppointmentDate: futureDate(7),
			AppointmentTime: "10:00",
		})
		assert.ErrorIs(t, err, service.ErrSlotAlreadyBooked)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		f := newFixture(t)

		f.doctorRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validProfile(), nil)

		err := f.svc.Create(patientCtx(), dto.CreateAppointmentRequest{
			DoctorID:        doctorID,
			AppointmentDate: "23-08-2026",
			AppointmentTime: "10:00",
		})
		assert.Error(t, err)
	})
}

func TestAppointmentService_Create_PastTimeToday(t *testing.T) {
	f := newFixture(t)

	f.doctorRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validProfile(), nil)

	now := timezone.Now()
	err := f.svc.Create(patientCtx(), dto.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: now.Format(constant.CalendarFormat),
		AppointmentTime: now.Format(constant.ClockFormat),
	})

	// Booking the current minute always fails: either it is outside
	// business hours or it is no longer in the future.
	assert.Error(t, err)
}

func TestAppointmentService_Update(t *testing.T) {
	t.Run("reschedule to a free slot", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(model.StatusPending), nil)
		f.schedule.EXPECT().IsAvailable(gomock.Any(), doctorID, gomock.Any(), "11:00").Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		newTime := "11:00"
		err := f.svc.Update(patientCtx(), dto.UpdateAppointmentRequest{AppointmentTime: &newTime}, appointmentID)
		assert.NoError(t, err)
	})

	t.Run("closing time itself is bookable", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(model.StatusPending), nil)
		f.schedule.EXPECT().IsAvailable(gomock.Any(), doctorID, gomock.Any(), "17:00").Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		newTime := "17:00"
		err := f.svc.Update(patientCtx(), dto.UpdateAppointmentRequest{AppointmentTime: &newTime}, appointmentID)
		assert.NoError(t, err)
	})

	t.Run("notes-only update skips slot validation", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(model.StatusConfirmed), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		notes := "bring previous prescriptions"
		err := f.svc.Update(patientCtx(), dto.UpdateAppointmentRequest{Notes: &notes}, appointmentID)
		assert.NoError(t, err)
	})

	t.Run("reschedule into a taken slot", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(model.StatusPending), nil)
		f.schedule.EXPECT().IsAvailable(gomock.Any(), doctorID, gomock.Any(), "11:00").Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		newTime := "11:00"
		err := f.svc.Update(patientCtx(), dto.UpdateAppointmentRequest{AppointmentTime: &newTime}, appointmentID)
		assert.ErrorIs(t, err, service.ErrSlotAlreadyBooked)
	})

	t.Run("completed appointment is immutable", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(model.StatusCompleted), nil)

		notes := "late note"
		err := f.svc.Update(patientCtx(), dto.UpdateAppointmentRequest{Notes: &notes}, appointmentID)
		assert.ErrorIs(t, err, service.ErrTerminalState)
	})

	t.Run("cancelled appointment is immutable", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(model.StatusCancelled), nil)

		newTime := "11:00"
		err := f.svc.Update(patientCtx(), dto.UpdateAppointmentRequest{AppointmentTime: &newTime}, appointmentID)
		assert.ErrorIs(t, err, service.ErrTerminalState)
	})

	t.Run("moving to another doctor rejected", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(model.StatusPending), nil)

		otherDoctor := "doctor-id-2"
		err := f.svc.Update(patientCtx(), dto.UpdateAppointmentRequest{DoctorID: &otherDoctor}, appointmentID)
		assert.ErrorIs(t, err, service.ErrDoctorReassignment)
	})

	t.Run("same doctor id passes the reassignment guard", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(model.StatusPending), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		sameDoctor := doctorID
		err := f.svc.Update(patientCtx(), dto.UpdateAppointmentRequest{DoctorID: &sameDoctor}, appointmentID)
		assert.NoError(t, err)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(patientCtx(), dto.UpdateAppointmentRequest{}, appointmentID)
		assert.Error(t, err)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil)

		notes := "note"
		err := f.svc.Update(patientCtx(), dto.UpdateAppointmentRequest{Notes: &notes}, "missing")
		assert.Error(t, err)
	})
}

func TestAppointmentService_Transition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		wantErr error
	}{
		{name: "pending to completed skips confirmation", current: model.StatusPending, target: model.StatusCompleted, wantErr: service.ErrInvalidTransition},
		{name: "confirmed back to pending", current: model.StatusConfirmed, target: model.StatusPending, wantErr: service.ErrInvalidTransition},
		{name: "completed is terminal", current: model.StatusCompleted, target: model.StatusCancelled, wantErr: service.ErrTerminalState},
		{name: "cancelled is terminal", current: model.StatusCancelled, target: model.StatusConfirmed, wantErr: service.ErrTerminalState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(tt.current), nil)

			err := f.svc.Transition(patientCtx(), dto.TransitionRequest{Status: tt.target}, appointmentID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("confirmed to completed writes status and log together", func(t *testing.T) {
		f := newFixture(t)
		tx, smock := beginTx(t)
		smock.ExpectCommit()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(model.StatusConfirmed), nil)
		f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
		f.repo.EXPECT().UpdateStatusTx(gomock.Any(), tx, appointmentID, model.StatusConfirmed, model.StatusCompleted, patientID).
			Return(int64(1), nil)
		f.logRepo.EXPECT().InsertTx(gomock.Any(), tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, entry model.StatusLog) error {
				assert.Equal(t, appointmentID, entry.AppointmentID)
				if assert.NotNil(t, entry.FromStatus) {
					assert.Equal(t, model.StatusConfirmed, *entry.FromStatus)
				}
				assert.Equal(t, model.StatusCompleted, entry.ToStatus)

				return nil
			})

		err := f.svc.Transition(patientCtx(), dto.TransitionRequest{Status: model.StatusCompleted}, appointmentID)
		assert.NoError(t, err)
		assert.NoError(t, smock.ExpectationsWereMet())
	})

	t.Run("concurrent transition loses and rolls back", func(t *testing.T) {
		f := newFixture(t)
		tx, smock := beginTx(t)
		smock.ExpectRollback()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedAppointment(model.StatusPending), nil)
		f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)

		// Another caller moved the appointment off pending after the read;
		// the status-matched update touches nothing.
		f.repo.EXPECT().UpdateStatusTx(gomock.Any(), tx, appointmentID, model.StatusPending, model.StatusConfirmed, patientID).
			Return(int64(0), nil)

		err := f.svc.Transition(patientCtx(), dto.TransitionRequest{Status: model.StatusConfirmed}, appointmentID)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
		assert.NoError(t, smock.ExpectationsWereMet())
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil)

		err := f.svc.Transition(patientCtx(), dto.TransitionRequest{Status: model.StatusConfirmed}, "missing")
		assert.Error(t, err)
	})
}

func TestAppointmentService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(patientCtx(), appointmentID))
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Error(t, f.svc.Delete(patientCtx(), "missing"))
	})
}

func TestAppointmentService_GetStatusLogs(t *testing.T) {
	t.Run("returns the transition history", func(t *testing.T) {
		f := newFixture(t)

		from := model.StatusPending
		logs := []model.StatusLog{
			{ID: "log-1", AppointmentID: appointmentID, ToStatus: model.StatusPending},
			{ID: "log-2", AppointmentID: appointmentID, FromStatus: &from, ToStatus: model.StatusConfirmed},
		}

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.logRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(logs, nil)

		res, err := f.svc.GetStatusLogs(patientCtx(), appointmentID)
		assert.NoError(t, err)
		assert.Len(t, res.Logs, 2)
		assert.Nil(t, res.Logs[0].FromStatus)
		assert.Equal(t, model.StatusConfirmed, res.Logs[1].ToStatus)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.GetStatusLogs(patientCtx(), "missing")
		assert.Error(t, err)
	})
}

func TestAppointmentService_SendUpcomingReminders(t *testing.T) {
	t.Run("publishes and records one reminder per due appointment", func(t *testing.T) {
		f := newFixture(t)

		first := storedAppointment(model.StatusConfirmed)
		second := storedAppointment(model.StatusConfirmed)
		second.ID = "appointment-id-2"

		f.repo.EXPECT().GetDueForReminder(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Appointment{first, second}, nil)
		f.broker.EXPECT().SendMessages(gomock.Any(), "clinicbook.notifications", gomock.Any()).Return(nil).Times(2)
		f.reminderRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, reminder model.Reminder) error {
				assert.Equal(t, model.ReminderType24Hours, reminder.ReminderType)

				return nil
			}).Times(2)

		sent, err := f.svc.SendUpcomingReminders(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
	})

	t.Run("publish failure skips the reminder row", func(t *testing.T) {
		f := newFixture(t)

		due := []model.Appointment{storedAppointment(model.StatusConfirmed)}

		f.repo.EXPECT().GetDueForReminder(gomock.Any(), gomock.Any(), gomock.Any()).Return(due, nil)
		f.broker.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		sent, err := f.svc.SendUpcomingReminders(context.Background())
		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("nothing due", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetDueForReminder(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		sent, err := f.svc.SendUpcomingReminders(context.Background())
		assert.NoError(t, err)
		assert.Zero(t, sent)
	})
}

func TestAppointmentService_GenerateMonthlyReports(t *testing.T) {
	t.Run("upserts one report per doctor", func(t *testing.T) {
		f := newFixture(t)

		rows := []model.MonthlySummaryRow{
			{DoctorID: doctorID, TotalCount: 10, CompletedCount: 7, CancelledCount: 2, CompletedEarning: 3500},
			{DoctorID: "doctor-id-2", TotalCount: 4, CompletedCount: 4, CompletedEarning: 2000},
		}

		f.repo.EXPECT().MonthlySummaries(gomock.Any(), 2026, 7).Return(rows, nil)
		f.reportRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, report model.MonthlyReport) error {
				assert.Equal(t, 2026, report.Year)
				assert.Equal(t, 7, report.Month)

				return nil
			}).Times(2)

		generated, err := f.svc.GenerateMonthlyReports(context.Background(), 2026, time.July)
		assert.NoError(t, err)
		assert.Equal(t, 2, generated)
	})

	t.Run("upsert failure skips the doctor", func(t *testing.T) {
		f := newFixture(t)

		rows := []model.MonthlySummaryRow{
			{DoctorID: doctorID, TotalCount: 10},
			{DoctorID: "doctor-id-2", TotalCount: 4},
		}

		f.repo.EXPECT().MonthlySummaries(gomock.Any(), 2026, 7).Return(rows, nil)

		gomock.InOrder(
			f.reportRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("db down")),
			f.reportRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil),
		)

		generated, err := f.svc.GenerateMonthlyReports(context.Background(), 2026, time.July)
		assert.NoError(t, err)
		assert.Equal(t, 1, generated)
	})

	t.Run("month out of range rejected when year is set", func(t *testing.T) {
		for _, month := range []time.Month{0, 13} {
			f := newFixture(t)

			_, err := f.svc.GenerateMonthlyReports(context.Background(), 2026, month)
			assert.Error(t, err)
		}
	})

	t.Run("zero year defaults to the previous month", func(t *testing.T) {
		f := newFixture(t)

		prev := timezone.Now().AddDate(0, -1, 0)

		f.repo.EXPECT().MonthlySummaries(gomock.Any(), prev.Year(), int(prev.Month())).Return(nil, nil)

		generated, err := f.svc.GenerateMonthlyReports(context.Background(), 0, 0)
		assert.NoError(t, err)
		assert.Zero(t, generated)
	})
}
