package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"clinicbook/config"
	"clinicbook/infras/otel/mocks"
	doctorMocks "clinicbook/internal/domains/doctor/mocks"
	scheduleMocks "clinicbook/internal/domains/schedule/mocks"
	"clinicbook/internal/domains/schedule/model"
	"clinicbook/internal/domains/schedule/model/dto"
	"clinicbook/internal/domains/schedule/service"
	cacheMocks "clinicbook/shared/cache/mocks"
)

const doctorID = "doctor-id-1"

func newService(t *testing.T) (service.Schedule, *scheduleMocks.MockTimeSlot, *doctorMocks.MockProfile) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := scheduleMocks.NewMockTimeSlot(ctrl)
	mockDoctorRepo := doctorMocks.NewMockProfile(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	// Cache-aside reads miss and async invalidation may run after the test body.
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockDoctorRepo, &config.Config{}, mockCache, mockOtel)

	return svc, mockRepo, mockDoctorRepo
}

func slot(id, start, end string) model.TimeSlot {
	return model.TimeSlot{
		ID:        id,
		DoctorID:  doctorID,
		Weekday:   int(time.Monday),
		StartTime: start,
		EndTime:   end,
	}
}

func TestScheduleService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTimeSlotRequest
		existing  []model.TimeSlot
		wantErr   error
		wantNoRun bool
	}{
		{
			name: "first slot of the day",
			req:  dto.CreateTimeSlotRequest{DoctorID: doctorID, Weekday: 1, StartTime: "09:00", EndTime: "12:00"},
		},
		{
			name:     "back-to-back slots do not overlap",
			req:      dto.CreateTimeSlotRequest{DoctorID: doctorID, Weekday: 1, StartTime: "12:00", EndTime: "14:00"},
			existing: []model.TimeSlot{slot("slot-1", "09:00", "12:00")},
		},
		{
			name:     "overlapping slot rejected",
			req:      dto.CreateTimeSlotRequest{DoctorID: doctorID, Weekday: 1, StartTime: "11:00", EndTime: "13:00"},
			existing: []model.TimeSlot{slot("slot-1", "09:00", "12:00")},
			wantErr:  service.ErrSlotOverlap,
		},
		{
			name:     "containing slot rejected",
			req:      dto.CreateTimeSlotRequest{DoctorID: doctorID, Weekday: 1, StartTime: "08:00", EndTime: "18:00"},
			existing: []model.TimeSlot{slot("slot-1", "09:00", "12:00")},
			wantErr:  service.ErrSlotOverlap,
		},
		{
			name:      "start must precede end",
			req:       dto.CreateTimeSlotRequest{DoctorID: doctorID, Weekday: 1, StartTime: "12:00", EndTime: "09:00"},
			wantErr:   service.ErrInvalidTimeRange,
			wantNoRun: true,
		},
		{
			name:      "zero-length window rejected",
			req:       dto.CreateTimeSlotRequest{DoctorID: doctorID, Weekday: 1, StartTime: "09:00", EndTime: "09:00"},
			wantErr:   service.ErrInvalidTimeRange,
			wantNoRun: true,
		},
		{
			name:      "malformed time rejected",
			req:       dto.CreateTimeSlotRequest{DoctorID: doctorID, Weekday: 1, StartTime: "9am", EndTime: "12:00"},
			wantErr:   service.ErrInvalidTimeFormat,
			wantNoRun: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockDoctorRepo := newService(t)

			if !tt.wantNoRun {
				mockDoctorRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.existing, nil)
			}

			if tt.wantErr == nil {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestScheduleService_Create_DoctorMissing(t *testing.T) {
	svc, _, mockDoctorRepo := newService(t)

	mockDoctorRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := svc.Create(context.Background(), dto.CreateTimeSlotRequest{
		DoctorID:  "missing-doctor",
		Weekday:   1,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	assert.Error(t, err)
}

func TestScheduleService_Update(t *testing.T) {
	t.Run("updated window excludes the slot itself from the overlap check", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		stored := slot("slot-1", "09:00", "12:00")

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.TimeSlot{stored}, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		newEnd := "13:00"
		err := svc.Update(context.Background(), dto.UpdateTimeSlotRequest{EndTime: &newEnd}, "slot-1")
		assert.NoError(t, err)
	})

	t.Run("widening into a neighbouring slot is rejected", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		stored := slot("slot-1", "09:00", "12:00")
		neighbour := slot("slot-2", "13:00", "17:00")

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.TimeSlot{stored, neighbour}, nil)

		newEnd := "14:00"
		err := svc.Update(context.Background(), dto.UpdateTimeSlotRequest{EndTime: &newEnd}, "slot-1")
		assert.ErrorIs(t, err, service.ErrSlotOverlap)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Update(context.Background(), dto.UpdateTimeSlotRequest{}, "slot-1")
		assert.Error(t, err)
	})

	t.Run("unknown slot", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.TimeSlot{}, nil)

		newEnd := "13:00"
		err := svc.Update(context.Background(), dto.UpdateTimeSlotRequest{EndTime: &newEnd}, "missing")
		assert.Error(t, err)
	})
}

func TestScheduleService_IsAvailable(t *testing.T) {
	tests := []struct {
		name  string
		slots []model.TimeSlot
		clock string
		want  bool
	}{
		{
			name:  "inside the window",
			slots: []model.TimeSlot{slot("slot-1", "09:00", "12:00")},
			clock: "10:30",
			want:  true,
		},
		{
			name:  "window start is bookable",
			slots: []model.TimeSlot{slot("slot-1", "09:00", "12:00")},
			clock: "09:00",
			want:  true,
		},
		{
			name:  "window end is not bookable",
			slots: []model.TimeSlot{slot("slot-1", "09:00", "12:00")},
			clock: "12:00",
			want:  false,
		},
		{
			name:  "no slots that day",
			slots: nil,
			clock: "10:00",
			want:  false,
		},
		{
			name: "second window covers",
			slots: []model.TimeSlot{
				slot("slot-1", "09:00", "12:00"),
				slot("slot-2", "14:00", "17:00"),
			},
			clock: "15:45",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)

			mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.slots, nil)

			got, err := svc.IsAvailable(context.Background(), doctorID, time.Monday, tt.clock)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
