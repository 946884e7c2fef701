package schedule

import (
	"net/http"
	"strconv"

	"clinicbook/infras/otel"
	"clinicbook/internal/domains/schedule/model"
	"clinicbook/internal/domains/schedule/model/dto"
	"clinicbook/internal/domains/schedule/service"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/validator"
	"clinicbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/timeslots", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTimeSlot)
		routerGroup.Get("/", handler.GetTimeSlots)
		routerGroup.Get("/{id}", handler.GetTimeSlotByID)
		routerGroup.Patch("/{id}", handler.UpdateTimeSlot)
		routerGroup.Delete("/{id}", handler.DeleteTimeSlot)
	})
}

// CreateTimeSlot handles the creation of a new weekly time slot.
// @Summary Create a new time slot
// @Description Create a recurring weekly availability slot for a doctor.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateTimeSlotRequest true "Create Time Slot Request"
// @Success 201 {object} response.Message "Time slot created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeslots [post]
// @Security BearerAuth
func (handler *Handler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTimeSlot")
	defer scope.End()

	req := dto.CreateTimeSlotRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot created successfully")

	response.WithMessage(w, http.StatusCreated, "Time slot created successfully")
}

// GetTimeSlots retrieves all time slots based on query parameters.
// @Summary Get all time slots
// @Description Retrieve all time slots with optional filtering and pagination.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param doctor_id query string false "Filter by doctor profile ID"
// @Param weekday query int false "Filter by weekday (0 = Sunday .. 6 = Saturday)"
// @Success 200 {object} response.Data[dto.GetTimeSlotsResponse] "List of time slots"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeslots [get]
func (handler *Handler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlots")
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
			Table:    model.TableName,
		})
	}

	if weekday := r.URL.Query().Get(model.FieldWeekday); weekday != "" {
		if weekdayInt, err := strconv.Atoi(weekday); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    model.FieldWeekday,
				Operator: gDto.FilterOperatorEq,
				Value:    weekdayInt,
				Table:    model.TableName,
			})
		}
	}

	slots, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get time slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, slots)
}

// GetTimeSlotByID retrieves a time slot by its ID.
// @Summary Get a time slot by ID
// @Description Retrieve a time slot by its unique identifier.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Time Slot ID"
// @Success 200 {object} response.Data[dto.TimeSlotResponse] "Time slot details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeslots/{id} [get]
func (handler *Handler) GetTimeSlotByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlotByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	slot, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get time slot by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot retrieved successfully")

	response.WithJSON(w, http.StatusOK, slot)
}

// UpdateTimeSlot updates an existing time slot by its ID.
// @Summary Update a time slot by ID
// @Description Update the weekday or window of an existing time slot.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Time Slot ID"
// @Param request body dto.UpdateTimeSlotRequest true "Update Time Slot Request"
// @Success 200 {object} response.Message "Time slot updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeslots/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTimeSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTimeSlotRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot updated successfully")

	response.WithMessage(w, http.StatusOK, "Time slot updated successfully")
}

// DeleteTimeSlot deletes a time slot by its ID.
// @Summary Delete a time slot by ID
// @Description Delete a time slot using its unique identifier.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Time Slot ID"
// @Success 200 {object} response.Message "Time slot deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeslots/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTimeSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot deleted successfully")

	response.WithMessage(w, http.StatusOK, "Time slot deleted successfully")
}
