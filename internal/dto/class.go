package dto

import "github.com/abonnet/univ-edt-api/internal/models"

// ClassDetail is the full class view with its total teaching service,
// weighted hours of every session of its subjects.
type ClassDetail struct {
	Name         string            `json:"name"`
	Level        models.ClassLevel `json:"level"`
	TotalService uint32            `json:"total_service"`
}

// WorkloadBreakdown counts a teacher's raw hours per session type.
type WorkloadBreakdown struct {
	CM             uint32 `json:"cm"`
	TD             uint32 `json:"td"`
	TP             uint32 `json:"tp"`
	Projet         uint32 `json:"projet"`
	Administration uint32 `json:"administration"`
	External       uint32 `json:"external"`
	Total          uint32 `json:"total"`
}

// TeacherWorkload is the weighted service of a teacher plus its breakdown.
type TeacherWorkload struct {
	TeacherID    uint32            `json:"teacher_id"`
	TeacherName  string            `json:"teacher_name"`
	ServiceValue float64           `json:"service_value"`
	Hours        WorkloadBreakdown `json:"hours"`
}
