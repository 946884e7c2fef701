package appointment

import (
	"net/http"
	"strconv"
	"time"

	"clinicbook/infras/otel"
	"clinicbook/internal/domains/appointment/model"
	"clinicbook/internal/domains/appointment/model/dto"
	"clinicbook/internal/domains/appointment/service"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/failure"
	"clinicbook/shared/validator"
	"clinicbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAppointment)
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/myappointments", handler.GetMyAppointments)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Patch("/{id}", handler.UpdateAppointment)
		routerGroup.Patch("/{id}/status", handler.TransitionAppointment)
		routerGroup.Delete("/{id}", handler.DeleteAppointment)
		routerGroup.Get("/{id}/logs", handler.GetStatusLogs)
		routerGroup.Get("/{id}/reminders", handler.GetReminders)
	})

	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMonthlyReports)
		routerGroup.Post("/generate", handler.GenerateMonthlyReports)
	})
}

// CreateAppointment books an appointment for the authenticated patient.
// @Summary Book an appointment
// @Description Book an appointment with a doctor. The consultation fee is snapshotted from the doctor profile.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Message "Appointment booked successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment booked successfully")

	response.WithMessage(w, http.StatusCreated, "Appointment booked successfully")
}

// GetAppointments retrieves all appointments based on query parameters.
// @Summary Get all appointments
// @Description Retrieve all appointments with optional filtering and pagination.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param doctor_id query string false "Filter by doctor profile ID"
// @Param patient_id query string false "Filter by patient ID"
// @Param status query string false "Filter by status (pending, confirmed, completed, cancelled)"
// @Param appointment_date query string false "Filter by calendar date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldDoctorID, model.FieldPatientID, model.FieldStatus} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if date := r.URL.Query().Get(model.FieldAppointmentDate); date != "" {
		if parsed, err := time.Parse(constant.CalendarFormat, date); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    model.FieldAppointmentDate,
				Operator: gDto.FilterOperatorEq,
				Value:    parsed,
				Table:    model.TableName,
			})
		}
	}

	appointments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetMyAppointments retrieves the authenticated patient's appointments.
// @Summary Get my appointments
// @Description Retrieve the appointments of the authenticated patient with optional status filtering and pagination.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, confirmed, completed, cancelled)"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/myappointments [get]
// @Security BearerAuth
func (handler *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyAppointments")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPatientID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	appointments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetAppointmentByID retrieves an appointment by its ID.
// @Summary Get an appointment by ID
// @Description Retrieve an appointment by its unique identifier.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	appointment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointment)
}

// UpdateAppointment reschedules or annotates an existing appointment.
// @Summary Update an appointment by ID
// @Description Reschedule an appointment or update its notes. Rescheduling re-runs the full slot validation.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Update Appointment Request"
// @Success 200 {object} response.Message "Appointment updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAppointmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment updated successfully")

	response.WithMessage(w, http.StatusOK, "Appointment updated successfully")
}

// TransitionAppointment moves an appointment to a new lifecycle status.
// @Summary Change appointment status
// @Description Move an appointment through its lifecycle (pending, confirmed, completed, cancelled). Every change is recorded in the status log.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.TransitionRequest true "Transition Request"
// @Success 200 {object} response.Message "Appointment status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) TransitionAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.TransitionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Transition(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change appointment status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment status updated successfully")

	response.WithMessage(w, http.StatusOK, "Appointment status updated successfully")
}

// DeleteAppointment deletes an appointment by its ID.
// @Summary Delete an appointment by ID
// @Description Delete an appointment using its unique identifier.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment deleted successfully")

	response.WithMessage(w, http.StatusOK, "Appointment deleted successfully")
}

// GetStatusLogs retrieves the status history of an appointment.
// @Summary Get appointment status logs
// @Description Retrieve the full lifecycle history of an appointment in chronological order.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.GetStatusLogsResponse] "Status log entries"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/logs [get]
// @Security BearerAuth
func (handler *Handler) GetStatusLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatusLogs")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	logs, err := handler.service.GetStatusLogs(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get status logs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Status logs retrieved successfully")

	response.WithJSON(w, http.StatusOK, logs)
}

// GetReminders retrieves the reminders sent for an appointment.
// @Summary Get appointment reminders
// @Description Retrieve the reminder notifications already sent for an appointment.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.GetRemindersResponse] "Reminder entries"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/reminders [get]
// @Security BearerAuth
func (handler *Handler) GetReminders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReminders")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reminders, err := handler.service.GetReminders(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reminders")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reminders retrieved successfully")

	response.WithJSON(w, http.StatusOK, reminders)
}

// GetMonthlyReports retrieves generated monthly reports.
// @Summary Get monthly reports
// @Description Retrieve per-doctor monthly appointment reports with optional filtering and pagination.
// @Tags Report
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param doctor_id query string false "Filter by doctor profile ID"
// @Param year query int false "Filter by year"
// @Param month query int false "Filter by month (1-12)"
// @Success 200 {object} response.Data[dto.GetMonthlyReportsResponse] "List of monthly reports"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports [get]
// @Security BearerAuth
func (handler *Handler) GetMonthlyReports(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthlyReports")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if doctorID := r.URL.Query().Get(model.FieldDoctorID); doctorID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDoctorID,
			Operator: gDto.FilterOperatorEq,
			Value:    doctorID,
			Table:    model.ReportTableName,
		})
	}

	for _, field := range []string{model.FieldYear, model.FieldMonth} {
		if value := r.URL.Query().Get(field); value != "" {
			if valueInt, err := strconv.Atoi(value); err == nil {
				filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
					Field:    field,
					Operator: gDto.FilterOperatorEq,
					Value:    valueInt,
					Table:    model.ReportTableName,
				})
			}
		}
	}

	reports, err := handler.service.GetReports(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get monthly reports")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Monthly reports retrieved successfully")

	response.WithJSON(w, http.StatusOK, reports)
}

// GenerateMonthlyReports triggers report generation for a month.
// @Summary Generate monthly reports
// @Description Aggregate appointments per doctor for the given month and upsert report rows. Defaults to the previous month.
// @Tags Report
// @Accept json
// @Produce json
// @Param year query int false "Year to aggregate (defaults to previous month's year)"
// @Param month query int false "Month to aggregate (1-12)"
// @Success 200 {object} response.Message "Monthly reports generated successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/generate [post]
// @Security BearerAuth
func (handler *Handler) GenerateMonthlyReports(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GenerateMonthlyReports")
	defer scope.End()

	year, _ := strconv.Atoi(r.URL.Query().Get(model.FieldYear))
	month, _ := strconv.Atoi(r.URL.Query().Get(model.FieldMonth))

	if _, err := handler.service.GenerateMonthlyReports(ctx, year, time.Month(month)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate monthly reports")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Monthly reports generated successfully")

	response.WithMessage(w, http.StatusOK, "Monthly reports generated successfully")
}
