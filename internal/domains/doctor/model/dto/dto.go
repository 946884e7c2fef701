package dto

import (
	"clinicbook/internal/domains/doctor/model"
	"clinicbook/shared"
	gDto "clinicbook/shared/dto"
	gModel "clinicbook/shared/model"
	"clinicbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateSpecializationRequest struct {
	Name        string  `json:"name"                  validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

func (c *CreateSpecializationRequest) ToModel(user string) model.Specialization {
	return model.Specialization{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateSpecializationRequest struct {
	Name        *string `db:"name"        json:"name,omitempty"        validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description,omitempty" validate:"omitempty,max=500"`
}

type SpecializationResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	gDto.Metadata
}

func (r *SpecializationResponse) FromModel(mod model.Specialization) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.Metadata.FromModel(mod.Metadata)
}

type GetSpecializationsResponse struct {
	Specializations []SpecializationResponse `json:"specializations"`
	TotalPage       int                      `json:"total_page"`
	TotalData       int                      `json:"total_data"`
}

func (r *GetSpecializationsResponse) FromModels(models []model.Specialization, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Specializations = make([]SpecializationResponse, len(models))
	for i, mod := range models {
		r.Specializations[i].FromModel(mod)
	}
}

type CreateProfileRequest struct {
	UserID           string  `json:"user_id"           validate:"required"`
	SpecializationID string  `json:"specialization_id" validate:"required"`
	ConsultationFee  float64 `json:"consultation_fee"  validate:"required,gt=0"`
	ExperienceYears  int     `json:"experience_years"  validate:"gte=0"`
	Bio              *string `json:"bio,omitempty"     validate:"omitempty,max=1000"`
}

func (c *CreateProfileRequest) ToModel(user string) model.Profile {
	return model.Profile{
		ID:               uuid.NewString(),
		UserID:           c.UserID,
		SpecializationID: c.SpecializationID,
		ConsultationFee:  c.ConsultationFee,
		ExperienceYears:  c.ExperienceYears,
		Bio:              c.Bio,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateProfileRequest struct {
	SpecializationID *string  `db:"specialization_id" json:"specialization_id,omitempty"`
	ConsultationFee  *float64 `db:"consultation_fee"  json:"consultation_fee,omitempty"  validate:"omitempty,gt=0"`
	ExperienceYears  *int     `db:"experience_years"  json:"experience_years,omitempty"  validate:"omitempty,gte=0"`
	Bio              *string  `db:"bio"               json:"bio,omitempty"               validate:"omitempty,max=1000"`
}

type ProfileResponse struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	SpecializationID string  `json:"specialization_id"`
	ConsultationFee  float64 `json:"consultation_fee"`
	ExperienceYears  int     `json:"experience_years"`
	Bio              *string `json:"bio,omitempty"`
	gDto.Metadata
}

func (r *ProfileResponse) FromModel(mod model.Profile) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.SpecializationID = mod.SpecializationID
	r.ConsultationFee = mod.ConsultationFee
	r.ExperienceYears = mod.ExperienceYears
	r.Bio = mod.Bio
	r.Metadata.FromModel(mod.Metadata)
}

type GetProfilesResponse struct {
	Doctors   []ProfileResponse `json:"doctors"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProfilesResponse) FromModels(models []model.Profile, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Doctors = make([]ProfileResponse, len(models))
	for i, mod := range models {
		r.Doctors[i].FromModel(mod)
	}
}
