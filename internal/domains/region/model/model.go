package model

import "clinicbook/shared/model"

const (
	DivisionTableName  = "divisions"
	DivisionEntityName = "division"

	DistrictTableName  = "districts"
	DistrictEntityName = "district"

	ThanaTableName  = "thanas"
	ThanaEntityName = "thana"

	FieldID         = "id"
	FieldName       = "name"
	FieldDivisionID = "division_id"
	FieldDistrictID = "district_id"
)

// Division is a top-level administrative area, e.g. a state or province.
type Division struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

// District is a subdivision within a Division.
type District struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	DivisionID string `db:"division_id"`
	model.Metadata
}

// Thana is a precinct within a District.
type Thana struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	DistrictID string `db:"district_id"`
	model.Metadata
}
