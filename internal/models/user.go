package models

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
)

// UserRole is the coarse role derived from a user's kind, used by the
// authorization middleware.
type UserRole string

const (
	RoleAdministrator UserRole = "administrator"
	RoleTeacher       UserRole = "teacher"
	RoleStudent       UserRole = "student"
)

// Rank is the academic rank of a teacher.
type Rank string

const (
	RankLecturer  Rank = "lecturer"
	RankProfessor Rank = "professor"
	RankPRAG      Rank = "prag"
	RankATER      Rank = "ater"
	RankMonitor   Rank = "monitor"
)

// ValidRank reports whether r is one of the known ranks.
func ValidRank(r Rank) bool {
	switch r {
	case RankLecturer, RankProfessor, RankPRAG, RankATER, RankMonitor:
		return true
	}
	return false
}

// UserKind is a closed sum over the three account variants. Each variant
// carries its own payload; code that needs variant data switches on the
// concrete type.
type UserKind interface {
	isUserKind()
	Role() UserRole
}

// Administrator has no extra payload.
type Administrator struct{}

// Teacher carries contact details and an academic rank.
type Teacher struct {
	Phone *string `json:"phone_number,omitempty"`
	Email *string `json:"email,omitempty"`
	Rank  Rank    `json:"rank"`
}

// Student belongs to exactly one class.
type Student struct {
	ClassID uint32 `json:"class_id"`
}

func (Administrator) isUserKind() {}
func (Teacher) isUserKind()       {}
func (Student) isUserKind()       {}

func (Administrator) Role() UserRole { return RoleAdministrator }
func (Teacher) Role() UserRole       { return RoleTeacher }
func (Student) Role() UserRole       { return RoleStudent }

func init() {
	gob.Register(Administrator{})
	gob.Register(Teacher{})
	gob.Register(Student{})
}

// User is a stored account. IDs are process-local, allocated in insertion
// order and never reused.
type User struct {
	ID        uint32
	FirstName string
	LastName  string
	Username  string
	Password  string
	Kind      UserKind
}

// FullName returns "FirstName LastName", the projection used for searching
// and for group-distribution ordering.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type userJSON struct {
	ID        uint32   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Kind      UserRole `json:"kind"`
	Teacher   *Teacher `json:"teacher,omitempty"`
	Student   *Student `json:"student,omitempty"`
}

// MarshalJSON flattens the kind variant into a discriminator plus an
// optional per-variant payload.
func (u User) MarshalJSON() ([]byte, error) {
	out := userJSON{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Password:  u.Password,
	}

	switch kind := u.Kind.(type) {
	case Administrator:
		out.Kind = RoleAdministrator
	case Teacher:
		out.Kind = RoleTeacher
		out.Teacher = &kind
	case Student:
		out.Kind = RoleStudent
		out.Student = &kind
	default:
		return nil, fmt.Errorf("unknown user kind %T", u.Kind)
	}

	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the kind variant from the discriminator.
func (u *User) UnmarshalJSON(data []byte) error {
	var in userJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	u.ID = in.ID
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Username = in.Username
	u.Password = in.Password

	switch in.Kind {
	case RoleAdministrator:
		u.Kind = Administrator{}
	case RoleTeacher:
		if in.Teacher == nil {
			return fmt.Errorf("teacher user %d missing teacher payload", in.ID)
		}
		u.Kind = *in.Teacher
	case RoleStudent:
		if in.Student == nil {
			return fmt.Errorf("student user %d missing student payload", in.ID)
		}
		u.Kind = *in.Student
	default:
		return fmt.Errorf("unknown user kind %q", in.Kind)
	}

	return nil
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
