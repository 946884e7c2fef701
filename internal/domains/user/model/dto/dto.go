package dto

import (
	"clinicbook/internal/domains/user/model"
	"clinicbook/shared"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	gModel "clinicbook/shared/model"
	"clinicbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name       string  `json:"name"                  validate:"required,max=100"`
	Email      string  `json:"email"                 validate:"required,email"`
	Mobile     string  `json:"mobile"                validate:"required,max=20"`
	Password   string  `json:"password"              validate:"required,min=8"`
	Role       string  `json:"role"                  validate:"omitempty,oneof=ADMIN DOCTOR PATIENT"`
	DivisionID *string `json:"division_id,omitempty"`
	DistrictID *string `json:"district_id,omitempty"`
	ThanaID    *string `json:"thana_id,omitempty"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RolePatient
	}

	return model.User{
		ID:         uuid.NewString(),
		Name:       r.Name,
		Email:      r.Email,
		Mobile:     r.Mobile,
		Password:   hashedPassword,
		Role:       role,
		DivisionID: r.DivisionID,
		DistrictID: r.DistrictID,
		ThanaID:    r.ThanaID,
		Active:     true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Mobile       string  `json:"mobile"`
	Role         string  `json:"role"`
	DivisionID   *string `json:"division_id,omitempty"`
	DistrictID   *string `json:"district_id,omitempty"`
	ThanaID      *string `json:"thana_id,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	LastLogin    *string `json:"last_login,omitempty"`
	Active       bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Mobile = model.Mobile
	r.Role = model.Role
	r.DivisionID = model.DivisionID
	r.DistrictID = model.DistrictID
	r.ThanaID = model.ThanaID
	r.ProfileImage = model.ProfileImage
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type UpdateUserRequest struct {
	Name       *string `db:"name"        json:"name,omitempty"        validate:"omitempty,max=100"`
	Mobile     *string `db:"mobile"      json:"mobile,omitempty"      validate:"omitempty,max=20"`
	Role       *string `db:"role"        json:"role,omitempty"        validate:"omitempty,oneof=ADMIN DOCTOR PATIENT"`
	DivisionID *string `db:"division_id" json:"division_id,omitempty"`
	DistrictID *string `db:"district_id" json:"district_id,omitempty"`
	ThanaID    *string `db:"thana_id"    json:"thana_id,omitempty"`
	Active     *bool   `db:"active"      json:"active,omitempty"`
}

type UpdateProfileRequest struct {
	Name       *string `db:"name"        json:"name,omitempty"        validate:"omitempty,max=100"`
	Mobile     *string `db:"mobile"      json:"mobile,omitempty"      validate:"omitempty,max=20"`
	DivisionID *string `db:"division_id" json:"division_id,omitempty"`
	DistrictID *string `db:"district_id" json:"district_id,omitempty"`
	ThanaID    *string `db:"thana_id"    json:"thana_id,omitempty"`
}

type UpdateProfileImageRequest struct {
	ProfileImage string `db:"profile_image" json:"profile_image" validate:"required"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
