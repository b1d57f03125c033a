package store

import (
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/models"
)

// SeedOccupancy references its classroom, subject and teacher by name
// because the seed feeds carry no ids; Seed resolves them against the rows
// it just created.
type SeedOccupancy struct {
	ClassroomName    string
	GroupNumber      *uint32
	SubjectName      string
	TeacherFirstName string
	TeacherLastName  string
	Start            uint64
	End              uint64
	Type             models.OccupancyType
	Name             string
}

// Seed bulk-populates the store from external feed data: classrooms and
// accounts first, then classes and subjects, then every student is enrolled
// in every subject, and finally the calendar events are replayed as
// occupancies. Events whose classroom, subject or teacher cannot be
// resolved are skipped.
func (s *Store) Seed(users []NewUser, classrooms []NewClassroom, classes []NewClass, subjects []NewSubject, occupancies []SeedOccupancy) {
	for _, c := range classrooms {
		s.addClassroom(c)
	}
	for _, u := range users {
		s.addUser(u)
	}
	for _, c := range classes {
		s.addClass(c)
	}
	for _, sub := range subjects {
		s.addSubject(sub)
	}

	for _, user := range s.state.Users {
		if _, isStudent := user.Kind.(models.Student); !isStudent {
			continue
		}
		for subjectID := range s.state.Subjects.Rows {
			s.enrollStudent(subjectID, user.ID)
		}
	}

	for _, seed := range occupancies {
		occupancy, ok := s.resolveSeedOccupancy(seed)
		if !ok {
			s.logger.Warn("skipping unresolvable seed occupancy",
				zap.String("name", seed.Name),
				zap.String("classroom", seed.ClassroomName),
				zap.String("subject", seed.SubjectName))
			continue
		}
		s.addOccupancy(occupancy)
	}

	s.SetDirty()
}

func (s *Store) resolveSeedOccupancy(seed SeedOccupancy) (NewOccupancy, bool) {
	var classroomID *uint32
	for id, classroom := range s.state.Classrooms.Rows {
		if classroom.Name == seed.ClassroomName {
			id := id
			classroomID = &id
			break
		}
	}

	var subjectID *uint32
	for id, subject := range s.state.Subjects.Rows {
		if subject.Name == seed.SubjectName {
			id := id
			subjectID = &id
			break
		}
	}

	var teacherID *uint32
	for _, user := range s.state.Users {
		if _, isTeacher := user.Kind.(models.Teacher); !isTeacher {
			continue
		}
		if user.FirstName == seed.TeacherFirstName && user.LastName == seed.TeacherLastName {
			id := user.ID
			teacherID = &id
			break
		}
	}

	if classroomID == nil || subjectID == nil || teacherID == nil {
		return NewOccupancy{}, false
	}

	return NewOccupancy{
		ClassroomID: classroomID,
		GroupNumber: seed.GroupNumber,
		SubjectID:   subjectID,
		TeacherID:   *teacherID,
		Start:       seed.Start,
		End:         seed.End,
		Type:        seed.Type,
		Name:        seed.Name,
	}, true
}
