package engine

import (
	"time"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func instant(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func str(s string) *string { return &s }

func approvedTutor(id int64, role model.TutorRole) model.Tutor {
	return model.Tutor{
		ID:       id,
		Name:     "Thandi",
		Surname:  "Mokoena",
		Phone:    "0821234567",
		Email:    "thandi@example.com",
		Town:     "Centurion",
		Approved: true,
		Role:     role,
	}
}

func pendingBooking(id int64, examDate time.Time, startTime string) model.Booking {
	return model.Booking{
		ID:              id,
		ParentID:        7,
		ChildName:       "Lwazi",
		Grade:           "10",
		School:          "Hoërskool Wes",
		Subject:         "English",
		RequiredRole:    model.RoleReader,
		ExamDate:        examDate,
		StartTime:       startTime,
		DurationMinutes: 90,
		Status:          model.BookingStatusPending,
	}
}

func window(tutorID int64, startDate, endDate time.Time, startTime, endTime *string) model.UnavailabilityWindow {
	return model.UnavailabilityWindow{
		TutorID:   tutorID,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
	}
}
