package service

import (
	"context"
	"fmt"

	"clinicbook/config"
	"clinicbook/infras/otel"
	"clinicbook/internal/domains/region/model"
	"clinicbook/internal/domains/region/model/dto"
	"clinicbook/internal/domains/region/repository"
	"clinicbook/shared"
	"clinicbook/shared/cache"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetDivision     = "division:get"
	cacheGetAllDivisions = "division:gets"
	cacheGetDistrict     = "district:get"
	cacheGetAllDistricts = "district:gets"
	cacheGetThana        = "thana:get"
	cacheGetAllThanas    = "thana:gets"
)

// Region covers the administrative geography lookup tables.
type Region interface {
	CreateDivision(ctx context.Context, req dto.CreateDivisionRequest) error
	GetDivisions(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDivisionsResponse, error)
	GetDivision(ctx context.Context, id string) (dto.DivisionResponse, error)
	UpdateDivision(ctx context.Context, req dto.UpdateDivisionRequest, id string) error
	DeleteDivision(ctx context.Context, id string) error

	CreateDistrict(ctx context.Context, req dto.CreateDistrictRequest) error
	GetDistricts(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDistrictsResponse, error)
	GetDistrict(ctx context.Context, id string) (dto.DistrictResponse, error)
	UpdateDistrict(ctx context.Context, req dto.UpdateDistrictRequest, id string) error
	DeleteDistrict(ctx context.Context, id string) error

	CreateThana(ctx context.Context, req dto.CreateThanaRequest) error
	GetThanas(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetThanasResponse, error)
	GetThana(ctx context.Context, id string) (dto.ThanaResponse, error)
	UpdateThana(ctx context.Context, req dto.UpdateThanaRequest, id string) error
	DeleteThana(ctx context.Context, id string) error
}

type serviceImpl struct {
	divisionRepo repository.Division
	districtRepo repository.District
	thanaRepo    repository.Thana
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(divisionRepo repository.Division, districtRepo repository.District, thanaRepo repository.Thana, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Region {
	return &serviceImpl{
		divisionRepo: divisionRepo,
		districtRepo: districtRepo,
		thanaRepo:    thanaRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) CreateDivision(ctx context.Context, req dto.CreateDivisionRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateDivision")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.divisionRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create division")

		return fmt.Errorf("failed to create division: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDivisions)
	}()

	return nil
}

func (s *serviceImpl) GetDivisions(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDivisionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDivisions")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDivisions, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.divisionRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count divisions")

		return res, fmt.Errorf("failed to count divisions: %w", err)
	}

	models, err := s.divisionRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get divisions")

		return res, fmt.Errorf("failed to get divisions: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save divisions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetDivision(ctx context.Context, id string) (res dto.DivisionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDivision")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDivision, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	division, err := s.divisionRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.DivisionTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get division")

		return res, fmt.Errorf("failed to get division: %w", err)
	}

	if division.ID == constant.Empty {
		return res, failure.NotFound("division not found") // nolint:wrapcheck
	}

	res.FromModel(division)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save division to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateDivision(ctx context.Context, req dto.UpdateDivisionRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateDivision")
	defer scope.End()

	if req == (dto.UpdateDivisionRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.DivisionTableName)

	exist, err := s.divisionRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if division exists")

		return fmt.Errorf("failed to check if division exists: %w", err)
	}

	if !exist {
		return failure.NotFound("division not found") // nolint:wrapcheck
	}

	if err := s.divisionRepo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update division")

		return fmt.Errorf("failed to update division: %w", err)
	}

	s.invalidateDivision(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteDivision(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteDivision")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.DivisionTableName)

	exist, err := s.divisionRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if division exists")

		return fmt.Errorf("failed to check if division exists: %w", err)
	}

	if !exist {
		return failure.NotFound("division not found") // nolint:wrapcheck
	}

	if err := s.divisionRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete division")

		return fmt.Errorf("failed to delete division: %w", err)
	}

	s.invalidateDivision(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateDivision(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDivision, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete division from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDivisions)
	}()
}

func (s *serviceImpl) CreateDistrict(ctx context.Context, req dto.CreateDistrictRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateDistrict")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	divisionExists, err := s.divisionRepo.Exist(ctx, shared.FilterByID(req.DivisionID, model.FieldID, model.DivisionTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if division exists")

		return fmt.Errorf("failed to check if division exists: %w", err)
	}

	if !divisionExists {
		return failure.BadRequestFromString("division does not exist") // nolint:wrapcheck
	}

	if err = s.districtRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create district")

		return fmt.Errorf("failed to create district: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDistricts)
	}()

	return nil
}

func (s *serviceImpl) GetDistricts(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDistrictsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDistricts")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDistricts, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.districtRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count districts")

		return res, fmt.Errorf("failed to count districts: %w", err)
	}

	models, err := s.districtRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get districts")

		return res, fmt.Errorf("failed to get districts: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save districts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetDistrict(ctx context.Context, id string) (res dto.DistrictResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDistrict")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDistrict, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	district, err := s.districtRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.DistrictTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get district")

		return res, fmt.Errorf("failed to get district: %w", err)
	}

	if district.ID == constant.Empty {
		return res, failure.NotFound("district not found") // nolint:wrapcheck
	}

	res.FromModel(district)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save district to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateDistrict(ctx context.Context, req dto.UpdateDistrictRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateDistrict")
	defer scope.End()

	if req == (dto.UpdateDistrictRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.DistrictTableName)

	exist, err := s.districtRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if district exists")

		return fmt.Errorf("failed to check if district exists: %w", err)
	}

	if !exist {
		return failure.NotFound("district not found") // nolint:wrapcheck
	}

	if err := s.districtRepo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update district")

		return fmt.Errorf("failed to update district: %w", err)
	}

	s.invalidateDistrict(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteDistrict(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteDistrict")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.DistrictTableName)

	exist, err := s.districtRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if district exists")

		return fmt.Errorf("failed to check if district exists: %w", err)
	}

	if !exist {
		return failure.NotFound("district not found") // nolint:wrapcheck
	}

	if err := s.districtRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete district")

		return fmt.Errorf("failed to delete district: %w", err)
	}

	s.invalidateDistrict(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateDistrict(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDistrict, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete district from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDistricts)
	}()
}

func (s *serviceImpl) CreateThana(ctx context.Context, req dto.CreateThanaRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateThana")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	districtExists, err := s.districtRepo.Exist(ctx, shared.FilterByID(req.DistrictID, model.FieldID, model.DistrictTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if district exists")

		return fmt.Errorf("failed to check if district exists: %w", err)
	}

	if !districtExists {
		return failure.BadRequestFromString("district does not exist") // nolint:wrapcheck
	}

	if err = s.thanaRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create thana")

		return fmt.Errorf("failed to create thana: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllThanas)
	}()

	return nil
}

func (s *serviceImpl) GetThanas(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetThanasResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetThanas")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllThanas, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.thanaRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count thanas")

		return res, fmt.Errorf("failed to count thanas: %w", err)
	}

	models, err := s.thanaRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get thanas")

		return res, fmt.Errorf("failed to get thanas: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save thanas to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetThana(ctx context.Context, id string) (res dto.ThanaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetThana")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetThana, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	thana, err := s.thanaRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.ThanaTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get thana")

		return res, fmt.Errorf("failed to get thana: %w", err)
	}

	if thana.ID == constant.Empty {
		return res, failure.NotFound("thana not found") // nolint:wrapcheck
	}

	res.FromModel(thana)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save thana to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateThana(ctx context.Context, req dto.UpdateThanaRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateThana")
	defer scope.End()

	if req == (dto.UpdateThanaRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.ThanaTableName)

	exist, err := s.thanaRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if thana exists")

		return fmt.Errorf("failed to check if thana exists: %w", err)
	}

	if !exist {
		return failure.NotFound("thana not found") // nolint:wrapcheck
	}

	if err := s.thanaRepo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update thana")

		return fmt.Errorf("failed to update thana: %w", err)
	}

	s.invalidateThana(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteThana(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteThana")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.ThanaTableName)

	exist, err := s.thanaRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if thana exists")

		return fmt.Errorf("failed to check if thana exists: %w", err)
	}

	if !exist {
		return failure.NotFound("thana not found") // nolint:wrapcheck
	}

	if err := s.thanaRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete thana")

		return fmt.Errorf("failed to delete thana: %w", err)
	}

	s.invalidateThana(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateThana(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetThana, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete thana from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllThanas)
	}()
}
