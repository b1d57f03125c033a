package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abonnet/univ-edt-api/internal/models"
)

type occupancyFixture struct {
	store   *Store
	room    models.Classroom
	class   models.Class
	teacher models.User
	student models.User
	subject models.Subject
}

func newOccupancyFixture(t *testing.T) occupancyFixture {
	t.Helper()
	s := newTestStore()

	room := s.AddClassroom(NewClassroom{Name: "A101", Capacity: 50})
	class := s.AddClass(NewClass{Name: "L3 Informatique", Level: models.LevelL3})
	teacher := addTeacher(s, "T", "Teacher")
	student := addStudent(s, "Jean", "Dupont", class.ID)
	subject := s.AddSubject(NewSubject{ClassID: class.ID, Name: "Math", TeacherInChargeID: teacher.ID})
	require.True(t, s.EnrollStudent(subject.ID, student.ID))

	return occupancyFixture{store: s, room: room, class: class, teacher: teacher, student: student, subject: subject}
}

func (f occupancyFixture) book(start, end uint64) models.Occupancy {
	return f.store.AddOccupancy(NewOccupancy{
		ClassroomID: &f.room.ID,
		SubjectID:   &f.subject.ID,
		TeacherID:   f.teacher.ID,
		Start:       start,
		End:         end,
		Type:        models.OccupancyCM,
		Name:        "Math CM",
	})
}

// 10:00 and 12:00 on an arbitrary day, as epoch seconds.
const (
	tenAM  = uint64(1700470800)
	elevAM = tenAM + 3600
	noon   = tenAM + 7200
)

func TestClassroomFreeContainmentSemantics(t *testing.T) {
	f := newOccupancyFixture(t)

	assert.True(t, f.store.ClassroomFree(f.room.ID, tenAM, noon))

	f.book(tenAM, elevAM)

	// The booking is contained inside [10:00, 12:00], so the window is taken.
	assert.False(t, f.store.ClassroomFree(f.room.ID, tenAM, noon))
	// A window the booking only overlaps, without being contained in, stays
	// free under the containment rule.
	assert.True(t, f.store.ClassroomFree(f.room.ID, tenAM+1800, noon))
	// Other rooms are unaffected.
	other := f.store.AddClassroom(NewClassroom{Name: "B202", Capacity: 30})
	assert.True(t, f.store.ClassroomFree(other.ID, tenAM, noon))
}

func TestTeacherAndClassFree(t *testing.T) {
	f := newOccupancyFixture(t)
	f.book(tenAM, elevAM)

	assert.False(t, f.store.TeacherFree(f.teacher.ID, tenAM, noon))
	assert.True(t, f.store.TeacherFree(f.teacher.ID, elevAM+1, noon))

	assert.False(t, f.store.ClassFree(f.class.ID, tenAM, noon))
	otherClass := f.store.AddClass(NewClass{Name: "M1", Level: models.LevelM1})
	assert.True(t, f.store.ClassFree(otherClass.ID, tenAM, noon))
}

func TestGroupFree(t *testing.T) {
	f := newOccupancyFixture(t)
	f.store.AddGroup(f.subject.ID)

	group := uint32(0)
	f.store.AddOccupancy(NewOccupancy{
		ClassroomID: &f.room.ID,
		GroupNumber: &group,
		SubjectID:   &f.subject.ID,
		TeacherID:   f.teacher.ID,
		Start:       tenAM,
		End:         elevAM,
		Type:        models.OccupancyTD,
		Name:        "Math TD",
	})

	assert.False(t, f.store.GroupFree(f.class.ID, f.subject.ID, 0, tenAM, noon))
	assert.True(t, f.store.GroupFree(f.class.ID, f.subject.ID, 1, tenAM, noon))
}

func TestListOccupanciesWindow(t *testing.T) {
	f := newOccupancyFixture(t)
	f.book(tenAM, elevAM)
	f.book(noon, noon+3600)

	all := f.store.ListOccupancies(nil, nil)
	assert.Len(t, all, 2)

	from := noon
	assert.Len(t, f.store.ListOccupancies(&from, nil), 1)

	to := elevAM
	assert.Len(t, f.store.ListOccupancies(nil, &to), 1)
}

func TestOccupancyCreationAuditsAffectedUsers(t *testing.T) {
	f := newOccupancyFixture(t)
	occupancy := f.book(tenAM, elevAM)

	for _, uid := range []uint32{f.teacher.ID, f.student.ID} {
		history := f.store.LastModifications(uid)
		require.Len(t, history, 1)
		record := history[0]
		assert.Equal(t, models.ModificationCreate, record.Type)
		require.NotNil(t, record.Occupancy.SubjectID)
		assert.Equal(t, f.subject.ID, *record.Occupancy.SubjectID)
		require.NotNil(t, record.Occupancy.ClassID)
		assert.Equal(t, f.class.ID, *record.Occupancy.ClassID)
		assert.Equal(t, occupancy.Start, record.Occupancy.Start)
		assert.Equal(t, record.Occupancy.Start, record.Occupancy.PreviousStart)
	}
}

func TestGroupOccupancyOnlyAuditsItsGroup(t *testing.T) {
	f := newOccupancyFixture(t)
	other := addStudent(f.store, "Zoé", "Zimmer", f.class.ID)
	require.True(t, f.store.EnrollStudent(f.subject.ID, other.ID))

	f.store.AddGroup(f.subject.ID)
	require.True(t, f.store.DistributeGroups(f.subject.ID))

	// Sorted by name: Jean Dupont -> group 0, Zoé Zimmer -> group 1.
	group := uint32(1)
	f.store.AddOccupancy(NewOccupancy{
		ClassroomID: &f.room.ID,
		GroupNumber: &group,
		SubjectID:   &f.subject.ID,
		TeacherID:   f.teacher.ID,
		Start:       tenAM,
		End:         elevAM,
		Type:        models.OccupancyTP,
		Name:        "Math TP",
	})

	assert.Len(t, f.store.LastModifications(other.ID), 1)
	assert.Empty(t, f.store.LastModifications(f.student.ID))
	assert.Len(t, f.store.LastModifications(f.teacher.ID), 1)
}

func TestModificationHistoryCappedNewestFirst(t *testing.T) {
	f := newOccupancyFixture(t)

	for i := 0; i < 30; i++ {
		f.store.AddOccupancy(NewOccupancy{
			ClassroomID: &f.room.ID,
			SubjectID:   &f.subject.ID,
			TeacherID:   f.teacher.ID,
			Start:       tenAM + uint64(i)*7200,
			End:         elevAM + uint64(i)*7200,
			Type:        models.OccupancyCM,
			Name:        fmt.Sprintf("Math CM %d", i),
		})
	}

	history := f.store.LastModifications(f.student.ID)
	require.Len(t, history, 25)

	// Newest first: the most recent creation has the largest start.
	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i-1].Occupancy.Start, history[i].Occupancy.Start)
	}
}

func TestRemoveOccupanciesAllOrNothingAndAuditsDeletes(t *testing.T) {
	f := newOccupancyFixture(t)
	first := f.book(tenAM, elevAM)
	second := f.book(noon, noon+3600)

	require.False(t, f.store.RemoveOccupancies([]uint32{first.ID, 9999}))
	assert.Len(t, f.store.ListOccupancies(nil, nil), 2)

	require.True(t, f.store.RemoveOccupancies([]uint32{first.ID, second.ID}))
	assert.Empty(t, f.store.ListOccupancies(nil, nil))

	history := f.store.LastModifications(f.student.ID)
	require.Len(t, history, 4)
	assert.Equal(t, models.ModificationDelete, history[0].Type)
	assert.Equal(t, models.ModificationDelete, history[1].Type)
	assert.Equal(t, models.ModificationCreate, history[2].Type)
}
