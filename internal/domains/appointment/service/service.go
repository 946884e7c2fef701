package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clinicbook/config"
	"clinicbook/infras/kafka"
	"clinicbook/infras/otel"
	"clinicbook/internal/domains/appointment/model"
	"clinicbook/internal/domains/appointment/model/dto"
	"clinicbook/internal/domains/appointment/repository"
	doctorModel "clinicbook/internal/domains/doctor/model"
	doctorRepo "clinicbook/internal/domains/doctor/repository"
	scheduleService "clinicbook/internal/domains/schedule/service"
	"clinicbook/shared"
	"clinicbook/shared/cache"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/failure"
	gModel "clinicbook/shared/model"
	"clinicbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"
	cacheGetAllReports     = "report:gets"

	systemActor = "system"
)

// Booking validation failures, in the order the checks run.
var (
	ErrPastDate             = &failure.Failure{Code: http.StatusBadRequest, Message: "appointment date is in the past"}
	ErrOutsideBusinessHours = &failure.Failure{Code: http.StatusBadRequest, Message: "appointment time is outside business hours"}
	ErrPastDateTime         = &failure.Failure{Code: http.StatusBadRequest, Message: "appointment time is in the past"}
	ErrDoctorUnavailable    = &failure.Failure{Code: http.StatusConflict, Message: "doctor is not available at the requested time"}
	ErrSlotAlreadyBooked    = &failure.Failure{Code: http.StatusConflict, Message: "slot is already booked"}

	ErrTerminalState      = &failure.Failure{Code: http.StatusConflict, Message: "appointment is in a terminal state and cannot be changed"}
	ErrInvalidTransition  = &failure.Failure{Code: http.StatusConflict, Message: "invalid appointment status transition"}
	ErrDoctorReassignment = &failure.Failure{Code: http.StatusBadRequest, Message: "appointment cannot be moved to a different doctor"}
)

// Appointment is the booking workflow: slot validation, lifecycle
// transitions with an audit log, reminders and monthly reports.
type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) error
	Transition(ctx context.Context, req dto.TransitionRequest, id string) error
	Delete(ctx context.Context, id string) error
	GetStatusLogs(ctx context.Context, appointmentID string) (dto.GetStatusLogsResponse, error)
	GetReminders(ctx context.Context, appointmentID string) (dto.GetRemindersResponse, error)
	GetReports(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMonthlyReportsResponse, error)
	SendUpcomingReminders(ctx context.Context) (int, error)
	GenerateMonthlyReports(ctx context.Context, year int, month time.Month) (int, error)
}

type serviceImpl struct {
	repo         repository.Appointment
	logRepo      repository.StatusLog
	reminderRepo repository.Reminder
	reportRepo   repository.Report
	doctorRepo   doctorRepo.Profile
	schedule     scheduleService.Schedule
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	broker       kafka.Client
}

func New(
	repo repository.Appointment,
	logRepo repository.StatusLog,
	reminderRepo repository.Reminder,
	reportRepo repository.Report,
	doctorRepo doctorRepo.Profile,
	schedule scheduleService.Schedule,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	broker kafka.Client,
) Appointment {
	return &serviceImpl{
		repo:         repo,
		logRepo:      logRepo,
		reminderRepo: reminderRepo,
		reportRepo:   reportRepo,
		doctorRepo:   doctorRepo,
		schedule:     schedule,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		broker:       broker,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	patientID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || patientID == constant.Empty {
		return failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	profile, err := s.doctorRepo.Get(ctx, shared.FilterByID(req.DoctorID, doctorModel.FieldID, doctorModel.ProfileTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor profile")

		return fmt.Errorf("failed to get doctor profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return failure.NotFound("doctor profile not found") // nolint:wrapcheck
	}

	appointment, err := req.ToModel(patientID, profile.ConsultationFee)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse appointment request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if err := s.validateSlot(ctx, appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime, constant.Empty); err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	if err = s.repo.InsertTx(ctx, tx, appointment); err != nil {
		// The partial unique index closes the race between the conflict
		// check and the insert.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return ErrSlotAlreadyBooked
		}

		log.Error().Err(err).Msg("failed to create appointment")

		return fmt.Errorf("failed to create appointment: %w", err)
	}

	initialLog := newStatusLog(appointment.ID, nil, model.StatusPending, nil, patientID)
	if err := s.logRepo.InsertTx(ctx, tx, initialLog); err != nil {
		log.Error().Err(err).Msg("failed to record initial status")

		return fmt.Errorf("failed to record initial status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit appointment")

		return fmt.Errorf("failed to commit appointment: %w", err)
	}

	s.invalidateLists(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateAppointmentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if model.IsTerminal(current.Status) {
		return ErrTerminalState
	}

	if req.DoctorID != nil && *req.DoctorID != current.DoctorID {
		return ErrDoctorReassignment
	}

	updatedFields := shared.TransformFields(req, user)

	// Rescheduling re-runs the full slot validation against the
	// effective date and time, skipping the appointment itself in the
	// conflict check.
	if req.AppointmentDate != nil || req.AppointmentTime != nil {
		date := current.AppointmentDate
		if req.AppointmentDate != nil {
			date, err = time.Parse(constant.CalendarFormat, *req.AppointmentDate)
			if err != nil {
				return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
			}

			updatedFields[model.FieldAppointmentDate] = date
		}

		clock := current.AppointmentTime
		if req.AppointmentTime != nil {
			if _, err := time.Parse(constant.ClockFormat, *req.AppointmentTime); err != nil {
				return failure.BadRequestFromString(fmt.Sprintf("invalid time format: %v", err)) // nolint:wrapcheck
			}

			clock = *req.AppointmentTime
			updatedFields[model.FieldAppointmentTime] = clock
		}

		if err := s.validateSlot(ctx, current.DoctorID, date, clock, current.ID); err != nil {
			return err
		}
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return ErrSlotAlreadyBooked
		}

		log.Error().Err(err).Msg("failed to update appointment")

		return fmt.Errorf("failed to update appointment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Transition moves the appointment one step through its lifecycle and
// appends a status log entry in the same transaction.
func (s *serviceImpl) Transition(ctx context.Context, req dto.TransitionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if model.IsTerminal(current.Status) {
		return ErrTerminalState
	}

	if !model.CanTransition(current.Status, req.Status) {
		return ErrInvalidTransition
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	rows, err := s.repo.UpdateStatusTx(ctx, tx, id, current.Status, req.Status, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to update appointment status")

		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	// Zero rows means a concurrent transition moved the appointment off the
	// status we validated against.
	if rows == 0 {
		return ErrInvalidTransition
	}

	from := current.Status
	entry := newStatusLog(id, &from, req.Status, req.Reason, user)

	if err := s.logRepo.InsertTx(ctx, tx, entry); err != nil {
		log.Error().Err(err).Msg("failed to record status transition")

		return fmt.Errorf("failed to record status transition: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit status transition")

		return fmt.Errorf("failed to commit status transition: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if appointment exists")

		return fmt.Errorf("failed to check if appointment exists: %w", err)
	}

	if !exist {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete appointment")

		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) GetStatusLogs(ctx context.Context, appointmentID string) (res dto.GetStatusLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetStatusLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(appointmentID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if appointment exists")

		return res, fmt.Errorf("failed to check if appointment exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldAppointmentID,
				Operator: gDto.FilterOperatorEq,
				Value:    appointmentID,
				Table:    model.StatusLogTableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	logs, err := s.logRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get status logs")

		return res, fmt.Errorf("failed to get status logs: %w", err)
	}

	res.FromModels(logs)

	return res, nil
}

func (s *serviceImpl) GetReminders(ctx context.Context, appointmentID string) (res dto.GetRemindersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReminders")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(appointmentID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if appointment exists")

		return res, fmt.Errorf("failed to check if appointment exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldAppointmentID,
				Operator: gDto.FilterOperatorEq,
				Value:    appointmentID,
				Table:    model.ReminderTableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	reminders, err := s.reminderRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reminders")

		return res, fmt.Errorf("failed to get reminders: %w", err)
	}

	res.FromModels(reminders)

	return res, nil
}

func (s *serviceImpl) GetReports(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMonthlyReportsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReports")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReports, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.reportRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count monthly reports")

		return res, fmt.Errorf("failed to count monthly reports: %w", err)
	}

	models, err := s.reportRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get monthly reports")

		return res, fmt.Errorf("failed to get monthly reports: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save monthly reports to cache")
		}
	}()

	return res, nil
}

// SendUpcomingReminders publishes a notification for every confirmed
// appointment starting within the next 24 hours that has not been
// reminded yet. A reminder row per appointment keeps the job idempotent
// across runs.
func (s *serviceImpl) SendUpcomingReminders(ctx context.Context) (sent int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendUpcomingReminders")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()

	due, err := s.repo.GetDueForReminder(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		return 0, fmt.Errorf("failed to get appointments due for reminder: %w", err)
	}

	for _, appointment := range due {
		message := dto.ReminderMessage{}
		message.FromModel(appointment)

		err := s.broker.SendMessages(ctx, s.cfg.Jobs.NotificationTopic, kafka.Message{
			Key:   appointment.ID,
			Value: message,
		})
		if err != nil {
			log.Error().Err(err).Str("appointment_id", appointment.ID).Msg("failed to publish reminder")

			continue
		}

		reminder := model.Reminder{
			ID:            uuid.NewString(),
			AppointmentID: appointment.ID,
			ReminderType:  model.ReminderType24Hours,
			SentAt:        timezone.Now(),
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  systemActor,
				ModifiedBy: systemActor,
			},
		}

		if err := s.reminderRepo.Insert(ctx, reminder); err != nil {
			log.Error().Err(err).Str("appointment_id", appointment.ID).Msg("failed to record reminder")

			continue
		}

		sent++
	}

	log.Info().Int("sent", sent).Int("due", len(due)).Msg("reminder run finished")

	return sent, nil
}

// GenerateMonthlyReports aggregates the given month per doctor and upserts
// one report row each, so reruns refresh rather than duplicate.
func (s *serviceImpl) GenerateMonthlyReports(ctx context.Context, year int, month time.Month) (generated int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GenerateMonthlyReports")
	defer scope.End()
	defer scope.TraceIfError(err)

	if year == 0 {
		prev := timezone.Now().AddDate(0, -1, 0)
		year, month = prev.Year(), prev.Month()
	} else if month < time.January || month > time.December {
		return 0, failure.BadRequestFromString("month must be between 1 and 12") // nolint:wrapcheck
	}

	rows, err := s.repo.MonthlySummaries(ctx, year, int(month))
	if err != nil {
		return 0, fmt.Errorf("failed to get monthly summaries: %w", err)
	}

	for _, row := range rows {
		report := model.MonthlyReport{
			ID:               uuid.NewString(),
			DoctorID:         row.DoctorID,
			Year:             year,
			Month:            int(month),
			TotalCount:       row.TotalCount,
			CompletedCount:   row.CompletedCount,
			CancelledCount:   row.CancelledCount,
			CompletedEarning: row.CompletedEarning,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  systemActor,
				ModifiedBy: systemActor,
			},
		}

		if err := s.reportRepo.Upsert(ctx, report); err != nil {
			log.Error().Err(err).Str("doctor_id", row.DoctorID).Msg("failed to upsert monthly report")

			continue
		}

		generated++
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReports)
	}()

	log.Info().Int("year", year).Int("month", int(month)).Int("generated", generated).Msg("monthly report run finished")

	return generated, nil
}

// validateSlot runs the booking checks in a fixed order: past date,
// business hours, past time today, doctor weekly availability, then the
// exact-slot conflict. excludeID skips the appointment being rescheduled.
func (s *serviceImpl) validateSlot(ctx context.Context, doctorID string, date time.Time, clock, excludeID string) error {
	now := timezone.Now()

	today := now.Format(constant.CalendarFormat)
	day := date.Format(constant.CalendarFormat)

	if day < today {
		return ErrPastDate
	}

	if clock < s.cfg.Booking.BusinessHoursStart || clock > s.cfg.Booking.BusinessHoursEnd {
		return ErrOutsideBusinessHours
	}

	if day == today && clock <= now.Format(constant.ClockFormat) {
		return ErrPastDateTime
	}

	available, err := s.schedule.IsAvailable(ctx, doctorID, date.Weekday(), clock)
	if err != nil {
		return err
	}

	if !available {
		return ErrDoctorUnavailable
	}

	conflictFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDoctorID,
				Operator: gDto.FilterOperatorEq,
				Value:    doctorID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldAppointmentDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldAppointmentTime,
				Operator: gDto.FilterOperatorEq,
				Value:    clock,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{model.StatusPending, model.StatusConfirmed},
				Table:    model.TableName,
			},
		},
	}

	if excludeID != constant.Empty {
		conflictFilter.Filters = append(conflictFilter.Filters, gDto.Filter{
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    model.TableName,
		})
	}

	booked, err := s.repo.Exist(ctx, conflictFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot conflict")

		return fmt.Errorf("failed to check slot conflict: %w", err)
	}

	if booked {
		return ErrSlotAlreadyBooked
	}

	return nil
}

func newStatusLog(appointmentID string, from *string, to string, reason *string, actor string) model.StatusLog {
	return model.StatusLog{
		ID:            uuid.NewString(),
		AppointmentID: appointmentID,
		FromStatus:    from,
		ToStatus:      to,
		Reason:        reason,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()
}
