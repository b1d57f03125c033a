package service

import (
	"testing"

	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
)

// fixture is a small seeded engine shared by the service tests: one
// admin, one teacher, one student enrolled in one subject, a classroom
// and a class.
type fixture struct {
	store     *store.Store
	admin     models.User
	teacher   models.User
	student   models.User
	classroom models.Classroom
	class     models.Class
	subject   models.Subject
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.New(nil, zap.NewNop())
	f := &fixture{store: st}

	f.admin = st.AddUser(store.NewUser{
		FirstName: "Admin", LastName: "User", Password: "user.admin",
		Kind: models.Administrator{},
	})
	email := "durand.marie@edu.univ-amu.fr"
	f.teacher = st.AddUser(store.NewUser{
		FirstName: "Marie", LastName: "Durand", Password: "user.teacher",
		Kind: models.Teacher{Email: &email, Rank: models.RankProfessor},
	})

	f.classroom = st.AddClassroom(store.NewClassroom{Name: "Amphi B", Capacity: 120})
	f.class = st.AddClass(store.NewClass{Name: "L3 Informatique", Level: models.LevelL3})

	f.student = st.AddUser(store.NewUser{
		FirstName: "Jean", LastName: "Dupont", Password: "user.student",
		Kind: models.Student{ClassID: f.class.ID},
	})

	f.subject = st.AddSubject(store.NewSubject{
		ClassID:           f.class.ID,
		Name:              "Compilation",
		TeacherInChargeID: f.teacher.ID,
	})
	st.EnrollStudent(f.subject.ID, f.student.ID)

	return f
}

func (f *fixture) addTeacher(first, last string) models.User {
	return f.store.AddUser(store.NewUser{
		FirstName: first, LastName: last, Password: "user.extra",
		Kind: models.Teacher{Rank: models.RankLecturer},
	})
}

func (f *fixture) addStudent(first, last string, classID uint32) models.User {
	return f.store.AddUser(store.NewUser{
		FirstName: first, LastName: last, Password: "user.extra",
		Kind: models.Student{ClassID: classID},
	})
}

// book schedules a CM session for the fixture teacher in the fixture room.
func (f *fixture) book(start, end uint64) models.Occupancy {
	return f.store.AddOccupancy(store.NewOccupancy{
		ClassroomID: &f.classroom.ID,
		SubjectID:   &f.subject.ID,
		TeacherID:   f.teacher.ID,
		Start:       start,
		End:         end,
		Type:        models.OccupancyCM,
		Name:        "Compilation CM",
	})
}

// Monday 2024-01-15 10:00 UTC as epoch seconds, plus the following days.
var (
	mon10 = uint64(1705312800)
	mon12 = mon10 + 2*3600
	tue10 = mon10 + 86400
	tue12 = tue10 + 2*3600
)
