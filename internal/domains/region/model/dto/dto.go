package dto

import (
	"clinicbook/internal/domains/region/model"
	"clinicbook/shared"
	gDto "clinicbook/shared/dto"
	gModel "clinicbook/shared/model"
	"clinicbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateDivisionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (c *CreateDivisionRequest) ToModel(user string) model.Division {
	return model.Division{
		ID:   uuid.NewString(),
		Name: c.Name,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateDivisionRequest struct {
	Name string `db:"name" json:"name" validate:"omitempty,max=100"`
}

type DivisionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (r *DivisionResponse) FromModel(mod model.Division) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Metadata.FromModel(mod.Metadata)
}

type GetDivisionsResponse struct {
	Divisions []DivisionResponse `json:"divisions"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetDivisionsResponse) FromModels(models []model.Division, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Divisions = make([]DivisionResponse, len(models))
	for i, mod := range models {
		r.Divisions[i].FromModel(mod)
	}
}

type CreateDistrictRequest struct {
	Name       string `json:"name"        validate:"required,max=100"`
	DivisionID string `json:"division_id" validate:"required"`
}

func (c *CreateDistrictRequest) ToModel(user string) model.District {
	return model.District{
		ID:         uuid.NewString(),
		Name:       c.Name,
		DivisionID: c.DivisionID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateDistrictRequest struct {
	Name       string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	DivisionID string `db:"division_id" json:"division_id" validate:"omitempty"`
}

type DistrictResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DivisionID string `json:"division_id"`
	gDto.Metadata
}

func (r *DistrictResponse) FromModel(mod model.District) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.DivisionID = mod.DivisionID
	r.Metadata.FromModel(mod.Metadata)
}

type GetDistrictsResponse struct {
	Districts []DistrictResponse `json:"districts"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetDistrictsResponse) FromModels(models []model.District, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Districts = make([]DistrictResponse, len(models))
	for i, mod := range models {
		r.Districts[i].FromModel(mod)
	}
}

type CreateThanaRequest struct {
	Name       string `json:"name"        validate:"required,max=100"`
	DistrictID string `json:"district_id" validate:"required"`
}

func (c *CreateThanaRequest) ToModel(user string) model.Thana {
	return model.Thana{
		ID:         uuid.NewString(),
		Name:       c.Name,
		DistrictID: c.DistrictID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateThanaRequest struct {
	Name       string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	DistrictID string `db:"district_id" json:"district_id" validate:"omitempty"`
}

type ThanaResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DistrictID string `json:"district_id"`
	gDto.Metadata
}

func (r *ThanaResponse) FromModel(mod model.Thana) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.DistrictID = mod.DistrictID
	r.Metadata.FromModel(mod.Metadata)
}

type GetThanasResponse struct {
	Thanas    []ThanaResponse `json:"thanas"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetThanasResponse) FromModels(models []model.Thana, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Thanas = make([]ThanaResponse, len(models))
	for i, mod := range models {
		r.Thanas[i].FromModel(mod)
	}
}
