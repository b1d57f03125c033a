package dto

// CreateSubjectRequest adds a subject to a class with its responsible
// teacher.
type CreateSubjectRequest struct {
	ClassID           uint32 `json:"class_id"`
	Name              string `json:"name" validate:"required"`
	TeacherInChargeID uint32 `json:"teacher_in_charge_id"`
}

// UpdateSubjectRequest carries the partial subject update. Absent fields
// are untouched.
type UpdateSubjectRequest struct {
	Name              *string `json:"name"`
	ClassID           *uint32 `json:"class_id"`
	TeacherInChargeID *uint32 `json:"teacher_in_charge_id"`
}

// SubjectListItem is one row of the paginated subject listing.
type SubjectListItem struct {
	ID        uint32 `json:"id"`
	ClassName string `json:"class_name"`
	Name      string `json:"name"`
}

// SubjectTeacherItem is one teacher of a subject, with the in-charge flag.
type SubjectTeacherItem struct {
	ID          uint32  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	InCharge    bool    `json:"in_charge"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// SubjectGroupItem describes one group and its computed member count.
type SubjectGroupItem struct {
	Number         uint32 `json:"number"`
	Name           string `json:"name"`
	Count          uint32 `json:"count"`
	IsStudentGroup *bool  `json:"is_student_group,omitempty"`
}

// SubjectDetail is the full subject view with teachers and groups resolved.
type SubjectDetail struct {
	ID        uint32               `json:"id"`
	Name      string               `json:"name"`
	ClassName string               `json:"class_name"`
	Teachers  []SubjectTeacherItem `json:"teachers"`
	Groups    []SubjectGroupItem   `json:"groups"`
}
