package model

import "clinicbook/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldMobile       = "mobile"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldDivisionID   = "division_id"
	FieldDistrictID   = "district_id"
	FieldThanaID      = "thana_id"
	FieldProfileImage = "profile_image"
	FieldLastLogin    = "last_login"
	FieldActive       = "active"
)

type User struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Email        string  `db:"email"`
	Mobile       string  `db:"mobile"`
	Password     string  `db:"password"`
	Role         string  `db:"role"`
	DivisionID   *string `db:"division_id"`
	DistrictID   *string `db:"district_id"`
	ThanaID      *string `db:"thana_id"`
	ProfileImage *string `db:"profile_image"`
	LastLogin    *string `db:"last_login"`
	Active       bool    `db:"active"`
	model.Metadata
}
