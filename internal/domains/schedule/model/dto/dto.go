package dto

import (
	"clinicbook/internal/domains/schedule/model"
	"clinicbook/shared"
	gDto "clinicbook/shared/dto"
	gModel "clinicbook/shared/model"
	"clinicbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateTimeSlotRequest struct {
	DoctorID  string `json:"doctor_id"  validate:"required"`
	Weekday   int    `json:"weekday"    validate:"gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time"   validate:"required,len=5"`
}

func (c *CreateTimeSlotRequest) ToModel(user string) model.TimeSlot {
	return model.TimeSlot{
		ID:        uuid.NewString(),
		DoctorID:  c.DoctorID,
		Weekday:   c.Weekday,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTimeSlotRequest struct {
	Weekday   *int    `db:"weekday"    json:"weekday,omitempty"    validate:"omitempty,gte=0,lte=6"`
	StartTime *string `db:"start_time" json:"start_time,omitempty" validate:"omitempty,len=5"`
	EndTime   *string `db:"end_time"   json:"end_time,omitempty"   validate:"omitempty,len=5"`
}

type TimeSlotResponse struct {
	ID        string `json:"id"`
	DoctorID  string `json:"doctor_id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	gDto.Metadata
}

func (r *TimeSlotResponse) FromModel(mod model.TimeSlot) {
	r.ID = mod.ID
	r.DoctorID = mod.DoctorID
	r.Weekday = mod.Weekday
	r.StartTime = mod.StartTime
	r.EndTime = mod.EndTime
	r.Metadata.FromModel(mod.Metadata)
}

type GetTimeSlotsResponse struct {
	TimeSlots []TimeSlotResponse `json:"time_slots"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetTimeSlotsResponse) FromModels(models []model.TimeSlot, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.TimeSlots = make([]TimeSlotResponse, len(models))
	for i, mod := range models {
		r.TimeSlots[i].FromModel(mod)
	}
}
