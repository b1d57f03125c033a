package dto

import "github.com/abonnet/univ-edt-api/internal/models"

// CreateTeacherRequest registers a teacher account. Username and password
// are generated server side.
type CreateTeacherRequest struct {
	FirstName   string      `json:"first_name" validate:"required"`
	LastName    string      `json:"last_name" validate:"required"`
	Email       *string     `json:"email"`
	PhoneNumber *string     `json:"phone_number"`
	Rank        models.Rank `json:"rank" validate:"required"`
}

// UpdateTeacherRequest is the partial teacher update. Email and phone use
// a double option: absent means untouched, null means cleared.
type UpdateTeacherRequest struct {
	FirstName   *string      `json:"first_name"`
	LastName    *string      `json:"last_name"`
	Email       OptField     `json:"email"`
	PhoneNumber OptField     `json:"phone_number"`
	Rank        *models.Rank `json:"rank"`
	Password    *string      `json:"password"`
}

// TeacherListItem is one row of the paginated teacher listing.
type TeacherListItem struct {
	ID          uint32  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

// TeacherDetail is the full teacher view.
type TeacherDetail struct {
	ID          uint32      `json:"id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Username    string      `json:"username"`
	Email       *string     `json:"email"`
	PhoneNumber *string     `json:"phone_number"`
	Rank        models.Rank `json:"rank"`
}

// CreateStudentRequest registers a student account in a class.
type CreateStudentRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	ClassID   uint32 `json:"class_id"`
}

// UpdateStudentRequest is the partial student update.
type UpdateStudentRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	ClassID   *uint32 `json:"class_id"`
	Password  *string `json:"password"`
}

// StudentListItem is one row of the paginated student listing.
type StudentListItem struct {
	ID        uint32 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ClassName string `json:"class_name"`
}

// StudentDetail is the full student view.
type StudentDetail struct {
	ID        uint32 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// UpdateProfileRequest lets the authenticated user change their own
// credentials. Name edits are restricted to administrators.
type UpdateProfileRequest struct {
	OldPassword *string `json:"old_password"`
	Password    *string `json:"password"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
}
