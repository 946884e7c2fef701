package region

import (
	"net/http"

	"clinicbook/infras/otel"
	"clinicbook/internal/domains/region/model"
	"clinicbook/internal/domains/region/model/dto"
	"clinicbook/internal/domains/region/service"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/validator"
	"clinicbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Region
	otel    otel.Otel
}

func New(service service.Region, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/divisions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDivision)
		routerGroup.Get("/", handler.GetDivisions)
		routerGroup.Get("/{id}", handler.GetDivisionByID)
		routerGroup.Patch("/{id}", handler.UpdateDivision)
		routerGroup.Delete("/{id}", handler.DeleteDivision)
	})

	router.Route("/districts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDistrict)
		routerGroup.Get("/", handler.GetDistricts)
		routerGroup.Get("/{id}", handler.GetDistrictByID)
		routerGroup.Patch("/{id}", handler.UpdateDistrict)
		routerGroup.Delete("/{id}", handler.DeleteDistrict)
	})

	router.Route("/thanas", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateThana)
		routerGroup.Get("/", handler.GetThanas)
		routerGroup.Get("/{id}", handler.GetThanaByID)
		routerGroup.Patch("/{id}", handler.UpdateThana)
		routerGroup.Delete("/{id}", handler.DeleteThana)
	})
}

// CreateDivision handles the creation of a new division.
// @Summary Create a new division
// @Description Create a new top-level administrative division.
// @Tags Region
// @Accept json
// @Produce json
// @Param request body dto.CreateDivisionRequest true "Create Division Request"
// @Success 201 {object} response.Message "Division created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/divisions [post]
// @Security BearerAuth
func (handler *Handler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDivision")
	defer scope.End()

	req := dto.CreateDivisionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.CreateDivision(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create division")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Division created successfully")

	response.WithMessage(w, http.StatusCreated, "Division created successfully")
}

// GetDivisions retrieves all divisions based on query parameters.
// @Summary Get all divisions
// @Description Retrieve all divisions with optional filtering and pagination.
// @Tags Region
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetDivisionsResponse] "List of divisions"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/divisions [get]
func (handler *Handler) GetDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDivisions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := nameFilter(r, model.DivisionTableName)

	divisions, err := handler.service.GetDivisions(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get divisions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Divisions retrieved successfully")

	response.WithJSON(w, http.StatusOK, divisions)
}

// GetDivisionByID retrieves a division by its ID.
// @Summary Get a division by ID
// @Description Retrieve a division by its unique identifier.
// @Tags Region
// @Accept json
// @Produce json
// @Param id path string true "Division ID"
// @Success 200 {object} response.Data[dto.DivisionResponse] "Division details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/divisions/{id} [get]
func (handler *Handler) GetDivisionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDivisionByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	division, err := handler.service.GetDivision(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get division by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Division retrieved successfully")

	response.WithJSON(w, http.StatusOK, division)
}

// UpdateDivision updates an existing division by its ID.
// @Summary Update a division by ID
// @Description Update the details of an existing division.
// @Tags Region
// @Accept json
// @Produce json
// @Param id path string true "Division ID"
// @Param request body dto.UpdateDivisionRequest true "Update Division Request"
// @Success 200 {object} response.Message "Division updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/divisions/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDivision(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDivision")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDivisionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateDivision(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update division")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Division updated successfully")

	response.WithMessage(w, http.StatusOK, "Division updated successfully")
}

// DeleteDivision deletes a division by its ID.
// @Summary Delete a division by ID
// @Description Delete a division using its unique identifier.
// @Tags Region
// @Accept json
// @Produce json
// @Param id path string true "Division ID"
// @Success 200 {object} response.Message "Division deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/divisions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDivision(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDivision")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteDivision(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete division")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Division deleted successfully")

	response.WithMessage(w, http.StatusOK, "Division deleted successfully")
}

// CreateDistrict handles the creation of a new district.
// @Summary Create a new district
// @Description Create a new district under an existing division.
// @Tags Region
// @Accept json
// @Produce json
// @Param request body dto.CreateDistrictRequest true "Create District Request"
// @Success 201 {object} response.Message "District created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/districts [post]
// @Security BearerAuth
func (handler *Handler) CreateDistrict(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDistrict")
	defer scope.End()

	req := dto.CreateDistrictRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.CreateDistrict(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create district")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("District created successfully")

	response.WithMessage(w, http.StatusCreated, "District created successfully")
}

// GetDistricts retrieves all districts based on query parameters.
// @Summary Get all districts
// @Description Retrieve all districts with optional filtering and pagination.
// @Tags Region
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param division_id query string false "Filter by division ID"
// @Success 200 {object} response.Data[dto.GetDistrictsResponse] "List of districts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/districts [get]
func (handler *Handler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDistricts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := nameFilter(r, model.DistrictTableName)

	if divisionID := r.URL.Query().Get(model.FieldDivisionID); divisionID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDivisionID,
			Operator: gDto.FilterOperatorEq,
			Value:    divisionID,
			Table:    model.DistrictTableName,
		})
	}

	districts, err := handler.service.GetDistricts(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get districts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Districts retrieved successfully")

	response.WithJSON(w, http.StatusOK, districts)
}

// GetDistrictByID retrieves a district by its ID.
// @Summary Get a district by ID
// @Description Retrieve a district by its unique identifier.
// @Tags Region
// @Accept json
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} response.Data[dto.DistrictResponse] "District details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/districts/{id} [get]
func (handler *Handler) GetDistrictByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDistrictByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	district, err := handler.service.GetDistrict(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get district by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("District retrieved successfully")

	response.WithJSON(w, http.StatusOK, district)
}

// UpdateDistrict updates an existing district by its ID.
// @Summary Update a district by ID
// @Description Update the details of an existing district.
// @Tags Region
// @Accept json
// @Produce json
// @Param id path string true "District ID"
// @Param request body dto.UpdateDistrictRequest true "Update District Request"
// @Success 200 {object} response.Message "District updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/districts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDistrict(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDistrict")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDistrictRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateDistrict(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update district")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("District updated successfully")

	response.WithMessage(w, http.StatusOK, "District updated successfully")
}

// DeleteDistrict deletes a district by its ID.
// @Summary Delete a district by ID
// @Description Delete a district using its unique identifier.
// @Tags Region
// @Accept json
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} response.Message "District deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/districts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDistrict(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDistrict")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteDistrict(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete district")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("District deleted successfully")

	response.WithMessage(w, http.StatusOK, "District deleted successfully")
}

// CreateThana handles the creation of a new thana.
// @Summary Create a new thana
// @Description Create a new thana under an existing district.
// @Tags Region
// @Accept json
// @Produce json
// @Param request body dto.CreateThanaRequest true "Create Thana Request"
// @Success 201 {object} response.Message "Thana created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/thanas [post]
// @Security BearerAuth
func (handler *Handler) CreateThana(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateThana")
	defer scope.End()

	req := dto.CreateThanaRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.CreateThana(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create thana")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Thana created successfully")

	response.WithMessage(w, http.StatusCreated, "Thana created successfully")
}

// GetThanas retrieves all thanas based on query parameters.
// @Summary Get all thanas
// @Description Retrieve all thanas with optional filtering and pagination.
// @Tags Region
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param district_id query string false "Filter by district ID"
// @Success 200 {object} response.Data[dto.GetThanasResponse] "List of thanas"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/thanas [get]
func (handler *Handler) GetThanas(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetThanas")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := nameFilter(r, model.ThanaTableName)

	if districtID := r.URL.Query().Get(model.FieldDistrictID); districtID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDistrictID,
			Operator: gDto.FilterOperatorEq,
			Value:    districtID,
			Table:    model.ThanaTableName,
		})
	}

	thanas, err := handler.service.GetThanas(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get thanas")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Thanas retrieved successfully")

	response.WithJSON(w, http.StatusOK, thanas)
}

// GetThanaByID retrieves a thana by its ID.
// @Summary Get a thana by ID
// @Description Retrieve a thana by its unique identifier.
// @Tags Region
// @Accept json
// @Produce json
// @Param id path string true "Thana ID"
// @Success 200 {object} response.Data[dto.ThanaResponse] "Thana details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/thanas/{id} [get]
func (handler *Handler) GetThanaByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetThanaByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	thana, err := handler.service.GetThana(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get thana by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Thana retrieved successfully")

	response.WithJSON(w, http.StatusOK, thana)
}

// UpdateThana updates an existing thana by its ID.
// @Summary Update a thana by ID
// @Description Update the details of an existing thana.
// @Tags Region
// @Accept json
// @Produce json
// @Param id path string true "Thana ID"
// @Param request body dto.UpdateThanaRequest true "Update Thana Request"
// @Success 200 {object} response.Message "Thana updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/thanas/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateThana(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateThana")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateThanaRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateThana(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update thana")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Thana updated successfully")

	response.WithMessage(w, http.StatusOK, "Thana updated successfully")
}

// DeleteThana deletes a thana by its ID.
// @Summary Delete a thana by ID
// @Description Delete a thana using its unique identifier.
// @Tags Region
// @Accept json
// @Produce json
// @Param id path string true "Thana ID"
// @Success 200 {object} response.Message "Thana deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/thanas/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteThana(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteThana")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteThana(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete thana")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Thana deleted successfully")

	response.WithMessage(w, http.StatusOK, "Thana deleted successfully")
}

func nameFilter(r *http.Request, table string) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    table,
		})
	}

	return filterGroup
}
