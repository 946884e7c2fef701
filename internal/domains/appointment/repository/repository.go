package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"clinicbook/infras/otel"
	"clinicbook/infras/postgres"
	"clinicbook/internal/domains/appointment/model"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/logger"
	gRepo "clinicbook/shared/repository"
	"clinicbook/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Appointment interface {
	Insert(ctx context.Context, model model.Appointment) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Appointment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	UpdateStatusTx(ctx context.Context, sqltx *sqlx.Tx, id, fromStatus, toStatus, actor string) (int64, error)
	GetDueForReminder(ctx context.Context, from, to time.Time) ([]model.Appointment, error)
	MonthlySummaries(ctx context.Context, year, month int) ([]model.MonthlySummaryRow, error)
}

type appointmentImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &appointmentImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *appointmentImpl) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	return tx, nil
}

// UpdateStatusTx moves an appointment from one status to another, matching
// on the expected current status so a concurrent transition loses instead of
// overwriting. Returns the number of rows updated.
func (repo *appointmentImpl) UpdateStatusTx(ctx context.Context, sqltx *sqlx.Tx, id, fromStatus, toStatus, actor string) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UpdateStatusTx")
	defer scope.End()

	query := `UPDATE appointments
		SET status = :status, modified_at = :modified_at, modified_by = :modified_by
		WHERE id = :id AND status = :from_status`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"id":          id,
		"from_status": fromStatus,
		"status":      toStatus,
		"modified_at": timezone.Now(),
		"modified_by": actor,
	}

	result, err := sqltx.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return rows, nil
}

// GetDueForReminder returns confirmed appointments whose combined
// date+time falls inside [from, to] and that have no 24-hour reminder row
// yet.
func (repo *appointmentImpl) GetDueForReminder(ctx context.Context, from, to time.Time) ([]model.Appointment, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetDueForReminder")
	defer scope.End()

	query := `SELECT a.id, a.patient_id, a.doctor_id, a.appointment_date, a.appointment_time,
			a.status, a.consultation_fee, a.notes, a.created_by, a.modified_by
		FROM appointments a
		WHERE a.status = :status
		AND a.appointment_date + a.appointment_time::time >= :from
		AND a.appointment_date + a.appointment_time::time <= :to
		AND NOT EXISTS (
			SELECT 1 FROM appointment_reminders r
			WHERE r.appointment_id = a.id AND r.reminder_type = :reminder_type
		)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"status":        model.StatusConfirmed,
		"from":          from,
		"to":            to,
		"reminder_type": model.ReminderType24Hours,
	}

	var appointments []model.Appointment

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err := prepare.SelectContext(ctx, &appointments, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get appointments due for reminder: %w", err)
	}

	return appointments, nil
}

// MonthlySummaries aggregates appointment counts and completed earnings
// per doctor for one calendar month.
func (repo *appointmentImpl) MonthlySummaries(ctx context.Context, year, month int) ([]model.MonthlySummaryRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".MonthlySummaries")
	defer scope.End()

	query := `SELECT
			doctor_id,
			COUNT(*) AS total_count,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_count,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled_count,
			COALESCE(SUM(consultation_fee) FILTER (WHERE status = 'completed'), 0) AS completed_earning
		FROM appointments
		WHERE EXTRACT(YEAR FROM appointment_date) = :year
		AND EXTRACT(MONTH FROM appointment_date) = :month
		GROUP BY doctor_id`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"year":  year,
		"month": month,
	}

	var rows []model.MonthlySummaryRow

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err := prepare.SelectContext(ctx, &rows, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get monthly summaries: %w", err)
	}

	return rows, nil
}

type StatusLog interface {
	Insert(ctx context.Context, model model.StatusLog) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.StatusLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.StatusLog, error)
}

type statusLogImpl struct {
	gRepo.Repository[model.StatusLog]
}

func NewStatusLog(db *postgres.Connection, otel otel.Otel) StatusLog {
	return &statusLogImpl{
		Repository: gRepo.NewRepository[model.StatusLog](model.StatusLogEntityName, model.StatusLogTableName, model.FieldID, db, otel),
	}
}

type Reminder interface {
	Insert(ctx context.Context, model model.Reminder) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reminder, error)
}

type reminderImpl struct {
	gRepo.Repository[model.Reminder]
}

func NewReminder(db *postgres.Connection, otel otel.Otel) Reminder {
	return &reminderImpl{
		Repository: gRepo.NewRepository[model.Reminder](model.ReminderEntityName, model.ReminderTableName, model.FieldID, db, otel),
	}
}

type Report interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.MonthlyReport, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MonthlyReport, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Upsert(ctx context.Context, report model.MonthlyReport) error
}

type reportImpl struct {
	gRepo.Repository[model.MonthlyReport]
	db   *postgres.Connection
	otel otel.Otel
}

func NewReport(db *postgres.Connection, otel otel.Otel) Report {
	return &reportImpl{
		Repository: gRepo.NewRepository[model.MonthlyReport](model.ReportEntityName, model.ReportTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert inserts the report or, when one already exists for the doctor and
// month, refreshes its aggregates. Report generation can rerun safely.
func (repo *reportImpl) Upsert(ctx context.Context, report model.MonthlyReport) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.ReportEntityName+".Upsert")
	defer scope.End()

	query := `INSERT INTO monthly_reports
			(id, doctor_id, year, month, total_count, completed_count, cancelled_count, completed_earning, created_by, modified_by)
		VALUES
			(:id, :doctor_id, :year, :month, :total_count, :completed_count, :cancelled_count, :completed_earning, :created_by, :modified_by)
		ON CONFLICT (doctor_id, year, month) DO UPDATE SET
			total_count = EXCLUDED.total_count,
			completed_count = EXCLUDED.completed_count,
			cancelled_count = EXCLUDED.cancelled_count,
			completed_earning = EXCLUDED.completed_earning,
			modified_at = now(),
			modified_by = EXCLUDED.modified_by`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, report); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert monthly report: %w", err)
	}

	return nil
}
