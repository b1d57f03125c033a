package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abonnet/univ-edt-api/internal/models"
)

func TestGroupSizesBalanced(t *testing.T) {
	for n := 0; n <= 40; n++ {
		for g := uint32(1); g <= 7; g++ {
			sizes := GroupSizes(n, g)
			require.Len(t, sizes, int(g))

			sum := uint32(0)
			min, max := sizes[0], sizes[0]
			for _, size := range sizes {
				sum += size
				if size < min {
					min = size
				}
				if size > max {
					max = size
				}
			}
			assert.Equal(t, uint32(n), sum, "n=%d g=%d", n, g)
			assert.LessOrEqual(t, max-min, uint32(1), "n=%d g=%d", n, g)
		}
	}
}

func TestGroupSizesRemainderGoesToLowerGroups(t *testing.T) {
	assert.Equal(t, []uint32{3, 2, 2}, GroupSizes(7, 3))
	assert.Equal(t, []uint32{3, 3, 3}, GroupSizes(9, 3))
	assert.Equal(t, []uint32{0, 0}, GroupSizes(0, 2))
}

// Builds a subject for one class with three enrolled students, the scenario
// used across the distribution tests.
func subjectWithThreeStudents(t *testing.T) (*Store, models.Subject, []models.User) {
	t.Helper()
	s := newTestStore()

	class := s.AddClass(NewClass{Name: "L3", Level: models.LevelL3})
	teacher := addTeacher(s, "T", "Teacher")
	subject := s.AddSubject(NewSubject{ClassID: class.ID, Name: "Math", TeacherInChargeID: teacher.ID})

	students := []models.User{
		addStudent(s, "Alice", "Arnaud", class.ID),
		addStudent(s, "Bruno", "Blanc", class.ID),
		addStudent(s, "Chloé", "Colin", class.ID),
	}
	for _, student := range students {
		require.True(t, s.EnrollStudent(subject.ID, student.ID))
	}
	return s, subject, students
}

func TestDistributeSingleGroupPutsEveryoneInGroupZero(t *testing.T) {
	s, subject, students := subjectWithThreeStudents(t)

	require.True(t, s.DistributeGroups(subject.ID))
	for _, student := range students {
		group, ok := s.StudentGroup(student.ID, subject.ID)
		require.True(t, ok)
		assert.Equal(t, uint32(0), group)
	}
}

func TestDistributeAfterAddGroupSplitsByName(t *testing.T) {
	s, subject, students := subjectWithThreeStudents(t)

	updated, found := s.AddGroup(subject.ID)
	require.True(t, found)
	require.Equal(t, uint32(2), updated.GroupCount)

	require.True(t, s.DistributeGroups(subject.ID))

	// Sorted by full name: Alice Arnaud, Bruno Blanc, Chloé Colin. Round
	// robin puts two in group 0, one in group 1.
	expected := []uint32{0, 0, 1}
	for i, student := range students {
		group, ok := s.StudentGroup(student.ID, subject.ID)
		require.True(t, ok)
		assert.Equal(t, expected[i], group, "student %s", student.FullName())
	}
}

func TestDistributeIsIdempotent(t *testing.T) {
	s, subject, students := subjectWithThreeStudents(t)
	s.AddGroup(subject.ID)

	require.True(t, s.DistributeGroups(subject.ID))
	first := make([]uint32, len(students))
	for i, student := range students {
		first[i], _ = s.StudentGroup(student.ID, subject.ID)
	}

	require.True(t, s.DistributeGroups(subject.ID))
	for i, student := range students {
		group, _ := s.StudentGroup(student.ID, subject.ID)
		assert.Equal(t, first[i], group)
	}
}

func TestRemoveLastGroupRejected(t *testing.T) {
	s, subject, _ := subjectWithThreeStudents(t)

	removed, found := s.RemoveGroup(subject.ID)
	require.True(t, found)
	assert.False(t, removed, "removing the last group must be rejected")

	s.AddGroup(subject.ID)
	removed, found = s.RemoveGroup(subject.ID)
	require.True(t, found)
	assert.True(t, removed)

	got, _ := s.GetSubject(subject.ID)
	assert.Equal(t, uint32(1), got.GroupCount)
}

func TestSubjectAlwaysHasExactlyOneTeacherInCharge(t *testing.T) {
	s := newTestStore()
	class := s.AddClass(NewClass{Name: "L3", Level: models.LevelL3})
	alice := addTeacher(s, "Alice", "Arnaud")
	bruno := addTeacher(s, "Bruno", "Blanc")
	subject := s.AddSubject(NewSubject{ClassID: class.ID, Name: "Math", TeacherInChargeID: alice.ID})

	require.True(t, s.InCharge(alice.ID, subject.ID))

	newInCharge := bruno.ID
	status, err := s.UpdateSubject(subject.ID, SubjectUpdate{TeacherInChargeID: &newInCharge})
	require.NoError(t, err)
	require.True(t, status.Found)
	require.True(t, status.Updated)

	assert.False(t, s.InCharge(alice.ID, subject.ID))
	assert.True(t, s.InCharge(bruno.ID, subject.ID))
	assert.True(t, s.Teaches(alice.ID, subject.ID), "the previous holder still teaches")

	inCharge := 0
	for _, st := range s.TeachersOfSubject(subject.ID) {
		if st.InCharge {
			inCharge++
		}
	}
	assert.Equal(t, 1, inCharge)
}

func TestSetTeachesDoesNotTouchExistingFlag(t *testing.T) {
	s := newTestStore()
	class := s.AddClass(NewClass{Name: "L3", Level: models.LevelL3})
	teacher := addTeacher(s, "Alice", "Arnaud")
	subject := s.AddSubject(NewSubject{ClassID: class.ID, Name: "Math", TeacherInChargeID: teacher.ID})

	s.SetTeaches(teacher.ID, subject.ID)
	assert.True(t, s.InCharge(teacher.ID, subject.ID), "upsert must not clear in_charge")

	other := addTeacher(s, "Bruno", "Blanc")
	s.SetTeaches(other.ID, subject.ID)
	assert.True(t, s.Teaches(other.ID, subject.ID))
	assert.False(t, s.InCharge(other.ID, subject.ID), "new rows default to not in charge")
}

func TestUnsetTeachesReportsExistence(t *testing.T) {
	s := newTestStore()
	class := s.AddClass(NewClass{Name: "L3", Level: models.LevelL3})
	teacher := addTeacher(s, "Alice", "Arnaud")
	other := addTeacher(s, "Bruno", "Blanc")
	subject := s.AddSubject(NewSubject{ClassID: class.ID, Name: "Math", TeacherInChargeID: teacher.ID})
	s.SetTeaches(other.ID, subject.ID)

	assert.True(t, s.UnsetTeaches(other.ID, subject.ID))
	assert.False(t, s.UnsetTeaches(other.ID, subject.ID))
	assert.False(t, s.Teaches(other.ID, subject.ID))
}

func TestEnrollStudentIsIdempotent(t *testing.T) {
	s, subject, students := subjectWithThreeStudents(t)

	assert.False(t, s.EnrollStudent(subject.ID, students[0].ID))

	count := 0
	for range s.StudentsOfSubject(subject.ID) {
		count++
	}
	assert.Equal(t, 3, count)
}

func TestRelationLookups(t *testing.T) {
	s := newTestStore()
	class := s.AddClass(NewClass{Name: "L3", Level: models.LevelL3})
	teacher := addTeacher(s, "Alice", "Arnaud")
	student := addStudent(s, "Jean", "Dupont", class.ID)

	var subjects []models.Subject
	for i := 0; i < 3; i++ {
		subject := s.AddSubject(NewSubject{
			ClassID:           class.ID,
			Name:              fmt.Sprintf("Matière %d", i),
			TeacherInChargeID: teacher.ID,
		})
		s.EnrollStudent(subject.ID, student.ID)
		subjects = append(subjects, subject)
	}

	assert.Len(t, s.SubjectsOfTeacher(teacher.ID), 3)
	assert.Len(t, s.SubjectsOfStudent(student.ID), 3)
	assert.Len(t, s.StudentsOfSubject(subjects[0].ID), 1)
}
