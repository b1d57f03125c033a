package dto

import "github.com/abonnet/univ-edt-api/internal/models"

// OccupancyItem is one rendered session in a timetable listing. Names are
// resolved so clients never need follow-up lookups.
type OccupancyItem struct {
	ID            uint32               `json:"id"`
	ClassroomName *string              `json:"classroom_name"`
	GroupName     *string              `json:"group_name"`
	SubjectName   *string              `json:"subject_name"`
	TeacherName   string               `json:"teacher_name"`
	Start         uint64               `json:"start"`
	End           uint64               `json:"end"`
	Type          models.OccupancyType `json:"occupancy_type"`
	ClassName     *string              `json:"class_name"`
	Name          string               `json:"name"`
}

// OccupancyDay groups a day's sessions under its dd-mm-yyyy date.
type OccupancyDay struct {
	Date        string          `json:"date"`
	Occupancies []OccupancyItem `json:"occupancies"`
}

// CreateOccupancyRequest schedules a session for a subject, optionally
// narrowed to a group by the route.
type CreateOccupancyRequest struct {
	ClassroomID *uint32              `json:"classroom_id"`
	TeacherID   uint32               `json:"teacher_id" validate:"required"`
	Start       uint64               `json:"start" validate:"required"`
	End         uint64               `json:"end" validate:"required"`
	Type        models.OccupancyType `json:"occupancy_type" validate:"required"`
	Name        string               `json:"name" validate:"required"`
}

// ModificationItem is one audit record of a user's timetable history.
type ModificationItem struct {
	Type      models.ModificationType      `json:"modification_type"`
	Timestamp uint64                       `json:"timestamp"`
	Occupancy models.ModificationOccupancy `json:"occupancy"`
}
