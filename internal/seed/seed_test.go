package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
)

func TestFuncFallsBackToFixture(t *testing.T) {
	logger := zap.NewNop()
	s := store.New(Func("missing/cal.json", "missing/students.json", logger), logger)

	admin, ok := s.GetUser("user.admin")
	require.True(t, ok)
	assert.Equal(t, models.RoleAdministrator, admin.Kind.Role())
	assert.Equal(t, "user.admin", admin.Password)

	teacherAccount, ok := s.GetUser("user.teacher")
	require.True(t, ok)
	assert.Equal(t, models.RoleTeacher, teacherAccount.Kind.Role())

	studentAccount, ok := s.GetUser("user.student")
	require.True(t, ok)
	student, isStudent := studentAccount.Kind.(models.Student)
	require.True(t, isStudent)
	assert.Equal(t, uint32(0), student.ClassID)
}

func TestFixtureSeedsEntities(t *testing.T) {
	logger := zap.NewNop()
	s := store.New(Func("missing/cal.json", "missing/students.json", logger), logger)

	// Professors are written "Lastname Firstname" in the feed.
	dupont, ok := s.GetUser("dupont.jean")
	require.True(t, ok)
	teacher, isTeacher := dupont.Kind.(models.Teacher)
	require.True(t, isTeacher)
	require.NotNil(t, teacher.Email)
	assert.Equal(t, "dupont.jean@edu.univ-amu.fr", *teacher.Email)
	require.NotNil(t, teacher.Phone)
	assert.Len(t, *teacher.Phone, 10)
	assert.Contains(t, []byte{'6', '7'}, (*teacher.Phone)[1])

	total, classrooms := s.ListClassrooms(1, "")
	assert.Equal(t, 3, total)
	names := make([]string, 0, len(classrooms))
	for _, c := range classrooms {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Amphi A", "Salle 101", "Salle 204"}, names)

	occupancies := s.ListOccupancies(nil, nil)
	assert.Len(t, occupancies, 5)
}

func TestFixtureEnrollsStudentsAndAssignsInCharge(t *testing.T) {
	logger := zap.NewNop()
	s := store.New(Func("missing/cal.json", "missing/students.json", logger), logger)

	alice, ok := s.GetUser("bernard.alice")
	require.True(t, ok)
	subjects := s.SubjectsOfStudent(alice.ID)
	assert.Len(t, subjects, 3)

	dupont, ok := s.GetUser("dupont.jean")
	require.True(t, ok)
	for _, subject := range subjects {
		if subject.Name == "Programmation" {
			assert.True(t, s.InCharge(dupont.ID, subject.ID))
		}
	}
}
