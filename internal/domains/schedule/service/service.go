package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clinicbook/config"
	"clinicbook/infras/otel"
	doctorModel "clinicbook/internal/domains/doctor/model"
	doctorRepo "clinicbook/internal/domains/doctor/repository"
	"clinicbook/internal/domains/schedule/model"
	"clinicbook/internal/domains/schedule/model/dto"
	"clinicbook/internal/domains/schedule/repository"
	"clinicbook/shared"
	"clinicbook/shared/cache"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTimeSlot     = "timeslot:get"
	cacheGetAllTimeSlots = "timeslot:gets"
)

var (
	ErrInvalidTimeFormat = &failure.Failure{Code: http.StatusBadRequest, Message: "time must be in HH:MM format"}
	ErrInvalidTimeRange  = &failure.Failure{Code: http.StatusBadRequest, Message: "start time must be before end time"}
	ErrSlotOverlap       = &failure.Failure{Code: http.StatusConflict, Message: "time slot overlaps an existing slot"}
)

// Schedule maintains the weekly availability slots of doctors and answers
// availability lookups for the booking flow.
type Schedule interface {
	Create(ctx context.Context, req dto.CreateTimeSlotRequest) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTimeSlotsResponse, error)
	Get(ctx context.Context, id string) (dto.TimeSlotResponse, error)
	Update(ctx context.Context, req dto.UpdateTimeSlotRequest, id string) error
	Delete(ctx context.Context, id string) error
	IsAvailable(ctx context.Context, doctorID string, weekday time.Weekday, clock string) (bool, error)
}

type serviceImpl struct {
	repo       repository.TimeSlot
	doctorRepo doctorRepo.Profile
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.TimeSlot, doctorRepo doctorRepo.Profile, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Schedule {
	return &serviceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTimeSlotRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := validateRange(req.StartTime, req.EndTime); err != nil {
		return err
	}

	doctorExists, err := s.doctorRepo.Exist(ctx, shared.FilterByID(req.DoctorID, doctorModel.FieldID, doctorModel.ProfileTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if doctor exists")

		return fmt.Errorf("failed to check if doctor exists: %w", err)
	}

	if !doctorExists {
		return failure.NotFound("doctor profile not found") // nolint:wrapcheck
	}

	if err := s.checkOverlap(ctx, req.DoctorID, req.Weekday, req.StartTime, req.EndTime, constant.Empty); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create time slot")

		return fmt.Errorf("failed to create time slot: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTimeSlots)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTimeSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTimeSlots, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count time slots")

		return res, fmt.Errorf("failed to count time slots: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TimeSlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTimeSlot, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return res, fmt.Errorf("failed to get time slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return res, failure.NotFound("time slot not found") // nolint:wrapcheck
	}

	res.FromModel(slot)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slot to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTimeSlotRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateTimeSlotRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return fmt.Errorf("failed to get time slot: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("time slot not found") // nolint:wrapcheck
	}

	// Merge the requested changes over the stored slot so the range and
	// overlap checks always see the effective window.
	weekday := current.Weekday
	if req.Weekday != nil {
		weekday = *req.Weekday
	}

	start := current.StartTime
	if req.StartTime != nil {
		start = *req.StartTime
	}

	end := current.EndTime
	if req.EndTime != nil {
		end = *req.EndTime
	}

	if err := validateRange(start, end); err != nil {
		return err
	}

	if err := s.checkOverlap(ctx, current.DoctorID, weekday, start, end, current.ID); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update time slot")

		return fmt.Errorf("failed to update time slot: %w", err)
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
		log.Error().Err(err).Msg("failed to check if time slot exists")

		return fmt.Errorf("failed to check if time slot exists: %w", err)
	}

	if !exist {
		return failure.NotFound("time slot not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete time slot")

		return fmt.Errorf("failed to delete time slot: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// IsAvailable reports whether the doctor has a weekly slot covering the
// given weekday and "HH:MM" wall-clock time.
func (s *serviceImpl) IsAvailable(ctx context.Context, doctorID string, weekday time.Weekday, clock string) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	slots, err := s.slotsFor(ctx, doctorID, int(weekday))
	if err != nil {
		return false, err
	}

	for _, slot := range slots {
		if slot.Covers(clock) {
			return true, nil
		}
	}

	return false, nil
}

func (s *serviceImpl) checkOverlap(ctx context.Context, doctorID string, weekday int, start, end, excludeID string) error {
	slots, err := s.slotsFor(ctx, doctorID, weekday)
	if err != nil {
		return err
	}

	for _, slot := range slots {
		if slot.ID == excludeID {
			continue
		}

		if slot.Overlaps(start, end) {
			return ErrSlotOverlap
		}
	}

	return nil
}

func (s *serviceImpl) slotsFor(ctx context.Context, doctorID string, weekday int) ([]model.TimeSlot, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDoctorID,
				Operator: gDto.FilterOperatorEq,
				Value:    doctorID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldWeekday,
				Operator: gDto.FilterOperatorEq,
				Value:    weekday,
				Table:    model.TableName,
			},
		},
	}

	// A doctor has at most a handful of slots per weekday.
	params := gDto.QueryParams{Page: 1, Limit: 100, SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}

	slots, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots for doctor")

		return nil, fmt.Errorf("failed to get time slots for doctor: %w", err)
	}

	return slots, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTimeSlot, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete time slot from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTimeSlots)
	}()
}

func validateRange(start, end string) error {
	if _, err := time.Parse(constant.ClockFormat, start); err != nil {
		return ErrInvalidTimeFormat
	}

	if _, err := time.Parse(constant.ClockFormat, end); err != nil {
		return ErrInvalidTimeFormat
	}

	if start >= end {
		return ErrInvalidTimeRange
	}

	return nil
}
