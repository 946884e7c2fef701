package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"clinicbook/infras/otel"
	"clinicbook/infras/postgres"
	"clinicbook/internal/domains/region/model"
	gDto "clinicbook/shared/dto"
	gRepo "clinicbook/shared/repository"
)

type Division interface {
	Insert(ctx context.Context, model model.Division) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Division, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Division, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type divisionImpl struct {
	gRepo.Repository[model.Division]
}

func NewDivision(db *postgres.Connection, otel otel.Otel) Division {
	return &divisionImpl{
		Repository: gRepo.NewRepository[model.Division](model.DivisionEntityName, model.DivisionTableName, model.FieldID, db, otel),
	}
}

type District interface {
	Insert(ctx context.Context, model model.District) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.District, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.District, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type districtImpl struct {
	gRepo.Repository[model.District]
}

func NewDistrict(db *postgres.Connection, otel otel.Otel) District {
	return &districtImpl{
		Repository: gRepo.NewRepository[model.District](model.DistrictEntityName, model.DistrictTableName, model.FieldID, db, otel),
	}
}

type Thana interface {
	Insert(ctx context.Context, model model.Thana) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Thana, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Thana, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type thanaImpl struct {
	gRepo.Repository[model.Thana]
}

func NewThana(db *postgres.Connection, otel otel.Otel) Thana {
	return &thanaImpl{
		Repository: gRepo.NewRepository[model.Thana](model.ThanaEntityName, model.ThanaTableName, model.FieldID, db, otel),
	}
}
