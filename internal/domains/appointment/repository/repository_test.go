package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"clinicbook/infras/otel/mocks"
	"clinicbook/infras/postgres"
	"clinicbook/internal/domains/appointment/model"
	"clinicbook/internal/domains/appointment/repository"
)

func newRepo(t *testing.T) (repository.Appointment, sqlmock.Sqlmock) {
	t.Helper()

	db, smock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sdb := sqlx.NewDb(db, "sqlmock")
	conn := &postgres.Connection{Read: sdb, Write: sdb}

	return repository.New(conn, mocks.NewOtel()), smock
}

// The reminder query must select exactly the columns the model scans into;
// appointments rows carry created_at/modified_at, which have no destination
// field.
func TestAppointmentRepository_GetDueForReminder(t *testing.T) {
	t.Run("due rows scan into the model", func(t *testing.T) {
		repo, smock := newRepo(t)

		date := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{
			"id", "patient_id", "doctor_id", "appointment_date", "appointment_time",
			"status", "consultation_fee", "notes", "created_by", "modified_by",
		}).AddRow(
			"appointment-id-1", "patient-id-1", "doctor-id-1", date, "10:00",
			model.StatusConfirmed, 500.0, nil, "patient-id-1", "patient-id-1",
		)

		smock.ExpectPrepare(regexp.QuoteMeta(
			"SELECT a.id, a.patient_id, a.doctor_id, a.appointment_date, a.appointment_time,")).
			ExpectQuery().
			WillReturnRows(rows)

		now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

		due, err := repo.GetDueForReminder(context.Background(), now, now.Add(24*time.Hour))
		assert.NoError(t, err)
		if assert.Len(t, due, 1) {
			assert.Equal(t, "appointment-id-1", due[0].ID)
			assert.Equal(t, model.StatusConfirmed, due[0].Status)
			assert.Equal(t, "10:00", due[0].AppointmentTime)
		}
		assert.NoError(t, smock.ExpectationsWereMet())
	})

	t.Run("nothing due", func(t *testing.T) {
		repo, smock := newRepo(t)

		smock.ExpectPrepare("SELECT").
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

		due, err := repo.GetDueForReminder(context.Background(), now, now.Add(24*time.Hour))
		assert.NoError(t, err)
		assert.Empty(t, due)
	})
}

func TestAppointmentRepository_UpdateStatusTx(t *testing.T) {
	t.Run("reports the updated row", func(t *testing.T) {
		repo, smock := newRepo(t)

		smock.ExpectBegin()
		smock.ExpectExec(regexp.QuoteMeta("UPDATE appointments")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		tx, err := repo.BeginTx(context.Background())
		assert.NoError(t, err)

		rows, err := repo.UpdateStatusTx(context.Background(), tx, "appointment-id-1", model.StatusPending, model.StatusConfirmed, "patient-id-1")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("stale expected status touches nothing", func(t *testing.T) {
		repo, smock := newRepo(t)

		smock.ExpectBegin()
		smock.ExpectExec(regexp.QuoteMeta("UPDATE appointments")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		tx, err := repo.BeginTx(context.Background())
		assert.NoError(t, err)

		rows, err := repo.UpdateStatusTx(context.Background(), tx, "appointment-id-1", model.StatusPending, model.StatusConfirmed, "patient-id-1")
		assert.NoError(t, err)
		assert.Zero(t, rows)
	})
}
