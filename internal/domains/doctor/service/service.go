package service

import (
	"context"
	"fmt"

	"clinicbook/config"
	"clinicbook/infras/otel"
	"clinicbook/internal/domains/doctor/model"
	"clinicbook/internal/domains/doctor/model/dto"
	"clinicbook/internal/domains/doctor/repository"
	userModel "clinicbook/internal/domains/user/model"
	userRepo "clinicbook/internal/domains/user/repository"
	"clinicbook/shared"
	"clinicbook/shared/cache"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSpecialization     = "specialization:get"
	cacheGetAllSpecializations = "specialization:gets"
	cacheGetDoctor             = "doctor:get"
	cacheGetAllDoctors         = "doctor:gets"
)

// Doctor manages specializations and doctor profiles.
type Doctor interface {
	CreateSpecialization(ctx context.Context, req dto.CreateSpecializationRequest) error
	GetSpecializations(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSpecializationsResponse, error)
	GetSpecialization(ctx context.Context, id string) (dto.SpecializationResponse, error)
	UpdateSpecialization(ctx context.Context, req dto.UpdateSpecializationRequest, id string) error
	DeleteSpecialization(ctx context.Context, id string) error

	CreateProfile(ctx context.Context, req dto.CreateProfileRequest) error
	GetProfiles(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetProfilesResponse, error)
	GetProfile(ctx context.Context, id string) (dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, id string) error
	DeleteProfile(ctx context.Context, id string) error
}

type serviceImpl struct {
	specializationRepo repository.Specialization
	profileRepo        repository.Profile
	userRepo           userRepo.User
	cfg                *config.Config
	cache              cache.RedisCache
	otel               otel.Otel
}

func New(specializationRepo repository.Specialization, profileRepo repository.Profile, userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Doctor {
	return &serviceImpl{
		specializationRepo: specializationRepo,
		profileRepo:        profileRepo,
		userRepo:           userRepo,
		cfg:                cfg,
		cache:              cache,
		otel:               otel,
	}
}

func (s *serviceImpl) CreateSpecialization(ctx context.Context, req dto.CreateSpecializationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateSpecialization")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	nameFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Name,
				Table:    model.SpecializationTableName,
			},
		},
	}

	exists, err := s.specializationRepo.Exist(ctx, nameFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if specialization exists")

		return fmt.Errorf("failed to check if specialization exists: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("specialization already exists") // nolint:wrapcheck
	}

	if err = s.specializationRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create specialization")

		return fmt.Errorf("failed to create specialization: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSpecializations)
	}()

	return nil
}

func (s *serviceImpl) GetSpecializations(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSpecializationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSpecializations")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSpecializations, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.specializationRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count specializations")

		return res, fmt.Errorf("failed to count specializations: %w", err)
	}

	models, err := s.specializationRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get specializations")

		return res, fmt.Errorf("failed to get specializations: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save specializations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetSpecialization(ctx context.Context, id string) (res dto.SpecializationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSpecialization")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSpecialization, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	specialization, err := s.specializationRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.SpecializationTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get specialization")

		return res, fmt.Errorf("failed to get specialization: %w", err)
	}

	if specialization.ID == constant.Empty {
		return res, failure.NotFound("specialization not found") // nolint:wrapcheck
	}

	res.FromModel(specialization)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save specialization to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateSpecialization(ctx context.Context, req dto.UpdateSpecializationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateSpecialization")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateSpecializationRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.SpecializationTableName)

	exist, err := s.specializationRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if specialization exists")

		return fmt.Errorf("failed to check if specialization exists: %w", err)
	}

	if !exist {
		return failure.NotFound("specialization not found") // nolint:wrapcheck
	}

	if err := s.specializationRepo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update specialization")

		return fmt.Errorf("failed to update specialization: %w", err)
	}

	s.invalidateSpecialization(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteSpecialization(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteSpecialization")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.SpecializationTableName)

	exist, err := s.specializationRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if specialization exists")

		return fmt.Errorf("failed to check if specialization exists: %w", err)
	}

	if !exist {
		return failure.NotFound("specialization not found") // nolint:wrapcheck
	}

	inUseFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSpecializationID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.ProfileTableName,
			},
		},
	}

	inUse, err := s.profileRepo.Exist(ctx, inUseFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if specialization is in use")

		return fmt.Errorf("failed to check if specialization is in use: %w", err)
	}

	if inUse {
		return failure.BadRequestFromString("specialization is assigned to doctors") // nolint:wrapcheck
	}

	if err := s.specializationRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete specialization")

		return fmt.Errorf("failed to delete specialization: %w", err)
	}

	s.invalidateSpecialization(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateSpecialization(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSpecialization, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete specialization from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSpecializations)
	}()
}

func (s *serviceImpl) CreateProfile(ctx context.Context, req dto.CreateProfileRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	account, err := s.userRepo.Get(ctx, shared.FilterByID(req.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if account.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if account.Role != constant.RoleDoctor {
		return failure.BadRequestFromString("user does not have the doctor role") // nolint:wrapcheck
	}

	specializationExists, err := s.specializationRepo.Exist(ctx, shared.FilterByID(req.SpecializationID, model.FieldID, model.SpecializationTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if specialization exists")

		return fmt.Errorf("failed to check if specialization exists: %w", err)
	}

	if !specializationExists {
		return failure.BadRequestFromString("specialization does not exist") // nolint:wrapcheck
	}

	profileFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    req.UserID,
				Table:    model.ProfileTableName,
			},
		},
	}

	profileExists, err := s.profileRepo.Exist(ctx, profileFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if doctor profile exists")

		return fmt.Errorf("failed to check if doctor profile exists: %w", err)
	}

	if profileExists {
		return failure.BadRequestFromString("doctor profile already exists for this user") // nolint:wrapcheck
	}

	if err = s.profileRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create doctor profile")

		return fmt.Errorf("failed to create doctor profile: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDoctors)
	}()

	return nil
}

func (s *serviceImpl) GetProfiles(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetProfilesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfiles")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDoctors, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.profileRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count doctor profiles")

		return res, fmt.Errorf("failed to count doctor profiles: %w", err)
	}

	models, err := s.profileRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor profiles")

		return res, fmt.Errorf("failed to get doctor profiles: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctor profiles to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetProfile(ctx context.Context, id string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDoctor, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	profile, err := s.profileRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.ProfileTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor profile")

		return res, fmt.Errorf("failed to get doctor profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, failure.NotFound("doctor profile not found") // nolint:wrapcheck
	}

	res.FromModel(profile)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctor profile to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateProfileRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.ProfileTableName)

	exist, err := s.profileRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if doctor profile exists")

		return fmt.Errorf("failed to check if doctor profile exists: %w", err)
	}

	if !exist {
		return failure.NotFound("doctor profile not found") // nolint:wrapcheck
	}

	if req.SpecializationID != nil {
		specializationExists, err := s.specializationRepo.Exist(ctx, shared.FilterByID(*req.SpecializationID, model.FieldID, model.SpecializationTableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if specialization exists")

			return fmt.Errorf("failed to check if specialization exists: %w", err)
		}

		if !specializationExists {
			return failure.BadRequestFromString("specialization does not exist") // nolint:wrapcheck
		}
	}

	if err := s.profileRepo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update doctor profile")

		return fmt.Errorf("failed to update doctor profile: %w", err)
	}

	s.invalidateProfile(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteProfile(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.ProfileTableName)

	exist, err := s.profileRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if doctor profile exists")

		return fmt.Errorf("failed to check if doctor profile exists: %w", err)
	}

	if !exist {
		return failure.NotFound("doctor profile not found") // nolint:wrapcheck
	}

	if err := s.profileRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete doctor profile")

		return fmt.Errorf("failed to delete doctor profile: %w", err)
	}

	s.invalidateProfile(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateProfile(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDoctor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete doctor profile from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDoctors)
	}()
}
