package dto

import (
	"time"

	"clinicbook/infras/jwt"
	userModel "clinicbook/internal/domains/user/model"
	"clinicbook/shared/constant"
	gModel "clinicbook/shared/model"
	"clinicbook/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name       string  `json:"name"                  validate:"required,max=100"`
	Email      string  `json:"email"                 validate:"required,email"`
	Mobile     string  `json:"mobile"                validate:"required,max=20"`
	Password   string  `json:"password"              validate:"required,min=8"`
	DivisionID *string `json:"division_id,omitempty"`
	DistrictID *string `json:"district_id,omitempty"`
	ThanaID    *string `json:"thana_id,omitempty"`
}

// Self-registration always produces a patient account. Doctor and admin
// accounts are provisioned through the user management endpoints.
func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	return userModel.User{
		ID:         uuid.NewString(),
		Name:       r.Name,
		Email:      r.Email,
		Mobile:     r.Mobile,
		Password:   hashedPassword,
		Role:       constant.RolePatient,
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

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
