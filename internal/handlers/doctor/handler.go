package doctor

import (
	"net/http"

	"clinicbook/infras/otel"
	"clinicbook/internal/domains/doctor/model"
	"clinicbook/internal/domains/doctor/model/dto"
	"clinicbook/internal/domains/doctor/service"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/validator"
	"clinicbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Doctor
	otel    otel.Otel
}

func New(service service.Doctor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/specializations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSpecialization)
		routerGroup.Get("/", handler.GetSpecializations)
		routerGroup.Get("/{id}", handler.GetSpecializationByID)
		routerGroup.Patch("/{id}", handler.UpdateSpecialization)
		routerGroup.Delete("/{id}", handler.DeleteSpecialization)
	})

	router.Route("/doctors", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDoctor)
		routerGroup.Get("/", handler.GetDoctors)
		routerGroup.Get("/{id}", handler.GetDoctorByID)
		routerGroup.Patch("/{id}", handler.UpdateDoctor)
		routerGroup.Delete("/{id}", handler.DeleteDoctor)
	})
}

// CreateSpecialization handles the creation of a new specialization.
// @Summary Create a new specialization
// @Description Create a new medical specialization.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body dto.CreateSpecializationRequest true "Create Specialization Request"
// @Success 201 {object} response.Message "Specialization created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/specializations [post]
// @Security BearerAuth
func (handler *Handler) CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSpecialization")
	defer scope.End()

	req := dto.CreateSpecializationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.CreateSpecialization(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create specialization")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Specialization created successfully")

	response.WithMessage(w, http.StatusCreated, "Specialization created successfully")
}

// GetSpecializations retrieves all specializations based on query parameters.
// @Summary Get all specializations
// @Description Retrieve all specializations with optional filtering and pagination.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetSpecializationsResponse] "List of specializations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/specializations [get]
func (handler *Handler) GetSpecializations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpecializations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.SpecializationTableName,
		})
	}

	specializations, err := handler.service.GetSpecializations(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get specializations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Specializations retrieved successfully")

	response.WithJSON(w, http.StatusOK, specializations)
}

// GetSpecializationByID retrieves a specialization by its ID.
// @Summary Get a specialization by ID
// @Description Retrieve a specialization by its unique identifier.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path string true "Specialization ID"
// @Success 200 {object} response.Data[dto.SpecializationResponse] "Specialization details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/specializations/{id} [get]
func (handler *Handler) GetSpecializationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpecializationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	specialization, err := handler.service.GetSpecialization(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get specialization by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Specialization retrieved successfully")

	response.WithJSON(w, http.StatusOK, specialization)
}

// UpdateSpecialization updates an existing specialization by its ID.
// @Summary Update a specialization by ID
// @Description Update the details of an existing specialization.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path string true "Specialization ID"
// @Param request body dto.UpdateSpecializationRequest true "Update Specialization Request"
// @Success 200 {object} response.Message "Specialization updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/specializations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSpecialization(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSpecialization")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateSpecializationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateSpecialization(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update specialization")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Specialization updated successfully")

	response.WithMessage(w, http.StatusOK, "Specialization updated successfully")
}

// DeleteSpecialization deletes a specialization by its ID.
// @Summary Delete a specialization by ID
// @Description Delete a specialization that is not assigned to any doctor.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path string true "Specialization ID"
// @Success 200 {object} response.Message "Specialization deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/specializations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSpecialization(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSpecialization")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteSpecialization(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete specialization")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Specialization deleted successfully")

	response.WithMessage(w, http.StatusOK, "Specialization deleted successfully")
}

// CreateDoctor handles the creation of a new doctor profile.
// @Summary Create a new doctor profile
// @Description Create a doctor profile for a user with the doctor role.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body dto.CreateProfileRequest true "Create Doctor Profile Request"
// @Success 201 {object} response.Message "Doctor profile created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors [post]
// @Security BearerAuth
func (handler *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDoctor")
	defer scope.End()

	req := dto.CreateProfileRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.CreateProfile(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create doctor profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctor profile created successfully")

	response.WithMessage(w, http.StatusCreated, "Doctor profile created successfully")
}

// GetDoctors retrieves all doctor profiles based on query parameters.
// @Summary Get all doctors
// @Description Retrieve all doctor profiles with optional filtering and pagination.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param specialization_id query string false "Filter by specialization ID"
// @Param user_id query string false "Filter by user ID"
// @Success 200 {object} response.Data[dto.GetProfilesResponse] "List of doctors"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors [get]
func (handler *Handler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctors")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if specializationID := r.URL.Query().Get(model.FieldSpecializationID); specializationID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSpecializationID,
			Operator: gDto.FilterOperatorEq,
			Value:    specializationID,
			Table:    model.ProfileTableName,
		})
	}

	if userID := r.URL.Query().Get(model.FieldUserID); userID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    userID,
			Table:    model.ProfileTableName,
		})
	}

	doctors, err := handler.service.GetProfiles(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctors")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctors retrieved successfully")

	response.WithJSON(w, http.StatusOK, doctors)
}

// GetDoctorByID retrieves a doctor profile by its ID.
// @Summary Get a doctor by ID
// @Description Retrieve a doctor profile by its unique identifier.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path string true "Doctor Profile ID"
// @Success 200 {object} response.Data[dto.ProfileResponse] "Doctor details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [get]
func (handler *Handler) GetDoctorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	doctor, err := handler.service.GetProfile(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctor by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctor retrieved successfully")

	response.WithJSON(w, http.StatusOK, doctor)
}

// UpdateDoctor updates an existing doctor profile by its ID.
// @Summary Update a doctor profile by ID
// @Description Update the details of an existing doctor profile.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path string true "Doctor Profile ID"
// @Param request body dto.UpdateProfileRequest true "Update Doctor Profile Request"
// @Success 200 {object} response.Message "Doctor profile updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDoctor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateProfileRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateProfile(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update doctor profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctor profile updated successfully")

	response.WithMessage(w, http.StatusOK, "Doctor profile updated successfully")
}

// DeleteDoctor deletes a doctor profile by its ID.
// @Summary Delete a doctor profile by ID
// @Description Delete a doctor profile using its unique identifier.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path string true "Doctor Profile ID"
// @Success 200 {object} response.Message "Doctor profile deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDoctor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteProfile(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete doctor profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Doctor profile deleted successfully")

	response.WithMessage(w, http.StatusOK, "Doctor profile deleted successfully")
}
