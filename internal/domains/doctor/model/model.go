package model

import "clinicbook/shared/model"

const (
	SpecializationTableName  = "specializations"
	SpecializationEntityName = "specialization"

	ProfileTableName  = "doctor_profiles"
	ProfileEntityName = "doctor_profile"

	FieldID               = "id"
	FieldName             = "name"
	FieldUserID           = "user_id"
	FieldSpecializationID = "specialization_id"
	FieldConsultationFee  = "consultation_fee"
	FieldExperienceYears  = "experience_years"
)

type Specialization struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	model.Metadata
}

// Profile holds the professional details of a user with the doctor role.
// ConsultationFee is the current rate; appointments snapshot it at booking
// time so later fee changes do not affect existing bookings.
type Profile struct {
	ID               string  `db:"id"`
	UserID           string  `db:"user_id"`
	SpecializationID string  `db:"specialization_id"`
	ConsultationFee  float64 `db:"consultation_fee"`
	ExperienceYears  int     `db:"experience_years"`
	Bio              *string `db:"bio"`
	model.Metadata
}
