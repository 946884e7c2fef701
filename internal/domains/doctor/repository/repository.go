package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"clinicbook/infras/otel"
	"clinicbook/infras/postgres"
	"clinicbook/internal/domains/doctor/model"
	gDto "clinicbook/shared/dto"
	gRepo "clinicbook/shared/repository"
)

type Specialization interface {
	Insert(ctx context.Context, model model.Specialization) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Specialization, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Specialization, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type specializationImpl struct {
	gRepo.Repository[model.Specialization]
}

func NewSpecialization(db *postgres.Connection, otel otel.Otel) Specialization {
	return &specializationImpl{
		Repository: gRepo.NewRepository[model.Specialization](model.SpecializationEntityName, model.SpecializationTableName, model.FieldID, db, otel),
	}
}

type Profile interface {
	Insert(ctx context.Context, model model.Profile) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Profile, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Profile, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type profileImpl struct {
	gRepo.Repository[model.Profile]
}

func NewProfile(db *postgres.Connection, otel otel.Otel) Profile {
	return &profileImpl{
		Repository: gRepo.NewRepository[model.Profile](model.ProfileEntityName, model.ProfileTableName, model.FieldID, db, otel),
	}
}
