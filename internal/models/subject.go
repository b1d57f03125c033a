package models

// Subject is taught to exactly one class and is divided into group_count
// groups (always at least one).
type Subject struct {
	ID         uint32 `json:"id"`
	ClassID    uint32 `json:"class_id"`
	Name       string `json:"name"`
	GroupCount uint32 `json:"group_count"`
}

// SubjectTeacher is a join row linking a teacher to a subject. Exactly one
// row per (subject, teacher) pair, and exactly one row per subject carries
// InCharge.
type SubjectTeacher struct {
	ID        uint32 `json:"id"`
	TeacherID uint32 `json:"teacher_id"`
	SubjectID uint32 `json:"subject_id"`
	InCharge  bool   `json:"in_charge"`
}

// StudentSubject is a join row enrolling a student in a subject. GroupNumber
// is always within [0, subject.GroupCount).
type StudentSubject struct {
	ID          uint32 `json:"id"`
	SubjectID   uint32 `json:"subject_id"`
	StudentID   uint32 `json:"student_id"`
	GroupNumber uint32 `json:"group_number"`
}
