package store

import (
	"errors"
	"sort"

	"github.com/abonnet/univ-edt-api/internal/models"
)

// ErrNoTeacherInCharge reports a broken invariant: every subject must carry
// exactly one in-charge teacher row.
var ErrNoTeacherInCharge = errors.New("subject has no teacher in charge")

// NewSubject carries the attributes of a subject to create. The in-charge
// teacher is mandatory from the start.
type NewSubject struct {
	ClassID           uint32 `json:"class_id"`
	Name              string `json:"name" binding:"required"`
	TeacherInChargeID uint32 `json:"teacher_in_charge_id"`
}

// SubjectUpdate is a partial subject update; nil fields are unchanged.
// Setting TeacherInChargeID atomically moves the in-charge flag.
type SubjectUpdate struct {
	ClassID           *uint32 `json:"class_id"`
	Name              *string `json:"name"`
	TeacherInChargeID *uint32 `json:"teacher_in_charge_id"`
}

// AddSubject inserts a subject with a single group and its in-charge
// teacher row.
func (s *Store) AddSubject(subject NewSubject) models.Subject {
	stored := s.addSubject(subject)
	s.SetDirty()
	return stored
}

func (s *Store) addSubject(subject NewSubject) models.Subject {
	stored := s.state.Subjects.insert(func(id uint32) models.Subject {
		return models.Subject{ID: id, ClassID: subject.ClassID, Name: subject.Name, GroupCount: 1}
	})
	s.state.SubjectTeachers.insert(func(id uint32) models.SubjectTeacher {
		return models.SubjectTeacher{
			ID:        id,
			TeacherID: subject.TeacherInChargeID,
			SubjectID: stored.ID,
			InCharge:  true,
		}
	})
	return stored
}

// GetSubject looks a subject up by id.
func (s *Store) GetSubject(id uint32) (models.Subject, bool) {
	return s.state.Subjects.get(id)
}

// ListSubjects filters subjects by name query and an optional predicate,
// with pagination.
func (s *Store) ListSubjects(page int, query string, pred func(models.Subject) bool) (int, []models.Subject) {
	project := func(sub models.Subject) string { return sub.Name }
	return search(s.state.Subjects.values(), project, &page, query, pred)
}

// RemoveSubjects deletes all the given subjects, or none.
func (s *Store) RemoveSubjects(ids []uint32) bool {
	if !s.state.Subjects.removeMany(ids) {
		return false
	}
	s.SetDirty()
	return true
}

// UpdateSubject applies a partial update. Swapping the teacher in charge
// clears the flag on the current holder and sets it on the new one,
// creating the join row when the new teacher does not teach the subject yet.
func (s *Store) UpdateSubject(id uint32, update SubjectUpdate) (UpdateStatus, error) {
	subject, ok := s.state.Subjects.get(id)
	if !ok {
		return UpdateStatus{}, nil
	}

	updated := false
	if update.ClassID != nil {
		subject.ClassID = *update.ClassID
		updated = true
	}
	if update.Name != nil {
		subject.Name = *update.Name
		updated = true
	}
	s.state.Subjects.Rows[id] = subject

	if update.TeacherInChargeID != nil {
		previous, ok := s.teacherInChargeOf(id)
		if !ok {
			return UpdateStatus{Found: true, Updated: updated}, ErrNoTeacherInCharge
		}
		off, on := false, true
		s.setTeaches(id, previous, &off)
		s.setTeaches(id, *update.TeacherInChargeID, &on)
		updated = true
	}

	if updated {
		s.SetDirty()
	}
	return UpdateStatus{Found: true, Updated: updated}, nil
}

func (s *Store) teacherInChargeOf(subjectID uint32) (uint32, bool) {
	for _, st := range s.state.SubjectTeachers.Rows {
		if st.SubjectID == subjectID && st.InCharge {
			return st.TeacherID, true
		}
	}
	return 0, false
}

// Teaches reports whether a join row links the teacher to the subject.
func (s *Store) Teaches(teacherID, subjectID uint32) bool {
	for _, st := range s.state.SubjectTeachers.Rows {
		if st.TeacherID == teacherID && st.SubjectID == subjectID {
			return true
		}
	}
	return false
}

// InCharge reports whether the teacher holds the in-charge flag for the
// subject.
func (s *Store) InCharge(teacherID, subjectID uint32) bool {
	for _, st := range s.state.SubjectTeachers.Rows {
		if st.TeacherID == teacherID && st.SubjectID == subjectID && st.InCharge {
			return true
		}
	}
	return false
}

// SetTeaches links a teacher to a subject without touching the in-charge
// flag of an existing row; a created row starts with the flag cleared.
func (s *Store) SetTeaches(teacherID, subjectID uint32) {
	s.setTeaches(subjectID, teacherID, nil)
	s.SetDirty()
}

// setTeaches upserts the (subject, teacher) row. A non-nil inCharge
// overwrites the flag; nil leaves an existing row untouched and defaults a
// new row to false.
func (s *Store) setTeaches(subjectID, teacherID uint32, inCharge *bool) {
	for id, st := range s.state.SubjectTeachers.Rows {
		if st.SubjectID == subjectID && st.TeacherID == teacherID {
			if inCharge != nil {
				st.InCharge = *inCharge
				s.state.SubjectTeachers.Rows[id] = st
			}
			return
		}
	}

	s.state.SubjectTeachers.insert(func(id uint32) models.SubjectTeacher {
		flag := false
		if inCharge != nil {
			flag = *inCharge
		}
		return models.SubjectTeacher{ID: id, TeacherID: teacherID, SubjectID: subjectID, InCharge: flag}
	})
}

// UnsetTeaches removes the (subject, teacher) row, reporting whether one
// existed.
func (s *Store) UnsetTeaches(teacherID, subjectID uint32) bool {
	for id, st := range s.state.SubjectTeachers.Rows {
		if st.SubjectID == subjectID && st.TeacherID == teacherID {
			delete(s.state.SubjectTeachers.Rows, id)
			s.SetDirty()
			return true
		}
	}
	return false
}

// SubjectsOfTeacher scans the join table for every subject the teacher
// teaches.
func (s *Store) SubjectsOfTeacher(teacherID uint32) []models.Subject {
	subjects := []models.Subject{}
	for _, st := range s.state.SubjectTeachers.values() {
		if st.TeacherID != teacherID {
			continue
		}
		if subject, ok := s.state.Subjects.get(st.SubjectID); ok {
			subjects = append(subjects, subject)
		}
	}
	return subjects
}

// TeachersOfSubject scans the join table for every teacher of the subject.
func (s *Store) TeachersOfSubject(subjectID uint32) []models.SubjectTeacher {
	rows := []models.SubjectTeacher{}
	for _, st := range s.state.SubjectTeachers.values() {
		if st.SubjectID == subjectID {
			rows = append(rows, st)
		}
	}
	return rows
}

// SubjectsOfStudent scans the enrollment table for every subject the
// student takes.
func (s *Store) SubjectsOfStudent(studentID uint32) []models.Subject {
	subjects := []models.Subject{}
	for _, ss := range s.state.StudentSubjects.values() {
		if ss.StudentID != studentID {
			continue
		}
		if subject, ok := s.state.Subjects.get(ss.SubjectID); ok {
			subjects = append(subjects, subject)
		}
	}
	return subjects
}

// StudentsOfSubject returns every user enrolled in the subject.
func (s *Store) StudentsOfSubject(subjectID uint32) []models.User {
	students := []models.User{}
	for _, ss := range s.state.StudentSubjects.values() {
		if ss.SubjectID != subjectID {
			continue
		}
		if user, ok := s.GetUserByID(ss.StudentID); ok {
			students = append(students, user)
		}
	}
	return students
}

// StudentGroup returns the group number assigned to the student within the
// subject.
func (s *Store) StudentGroup(studentID, subjectID uint32) (uint32, bool) {
	for _, ss := range s.state.StudentSubjects.Rows {
		if ss.StudentID == studentID && ss.SubjectID == subjectID {
			return ss.GroupNumber, true
		}
	}
	return 0, false
}

// EnrollStudent inserts the enrollment row unless it already exists,
// reporting whether a row was created. New enrollments start in group 0.
func (s *Store) EnrollStudent(subjectID, studentID uint32) bool {
	if s.enrollStudent(subjectID, studentID) {
		s.SetDirty()
		return true
	}
	return false
}

func (s *Store) enrollStudent(subjectID, studentID uint32) bool {
	for _, ss := range s.state.StudentSubjects.Rows {
		if ss.SubjectID == subjectID && ss.StudentID == studentID {
			return false
		}
	}
	s.state.StudentSubjects.insert(func(id uint32) models.StudentSubject {
		return models.StudentSubject{ID: id, SubjectID: subjectID, StudentID: studentID, GroupNumber: 0}
	})
	return true
}

// AddGroup increments the subject's group count by one.
func (s *Store) AddGroup(subjectID uint32) (models.Subject, bool) {
	subject, ok := s.state.Subjects.get(subjectID)
	if !ok {
		return models.Subject{}, false
	}
	subject.GroupCount++
	s.state.Subjects.Rows[subjectID] = subject
	s.SetDirty()
	return subject, true
}

// RemoveGroup decrements the subject's group count. Removing the last group
// is rejected.
func (s *Store) RemoveGroup(subjectID uint32) (removed, found bool) {
	subject, ok := s.state.Subjects.get(subjectID)
	if !ok {
		return false, false
	}
	if subject.GroupCount < 2 {
		return false, true
	}
	subject.GroupCount--
	s.state.Subjects.Rows[subjectID] = subject
	s.SetDirty()
	return true, true
}

// GroupSizes computes per-group sizes by round-robin: sizes differ by at
// most one and lower group indices take the remainder.
func GroupSizes(studentCount int, groupCount uint32) []uint32 {
	sizes := make([]uint32, groupCount)
	index := 0
	for remaining := studentCount; remaining > 0; remaining-- {
		sizes[index]++
		index++
		if index == int(groupCount) {
			index = 0
		}
	}
	return sizes
}

// groupAssignments expands GroupSizes into one group number per student,
// e.g. 7 students in 3 groups yield [0 0 0 1 1 2 2].
func groupAssignments(studentCount int, groupCount uint32) []uint32 {
	numbers := make([]uint32, 0, studentCount)
	for group, size := range GroupSizes(studentCount, groupCount) {
		for i := uint32(0); i < size; i++ {
			numbers = append(numbers, uint32(group))
		}
	}
	return numbers
}

// DistributeGroups reassigns every enrolled student of the subject to a
// group: students are ordered by full name and given the round-robin
// balanced group numbers in that order. Deterministic for a fixed
// enrollment and group count.
func (s *Store) DistributeGroups(subjectID uint32) bool {
	subject, ok := s.state.Subjects.get(subjectID)
	if !ok {
		return false
	}

	students := s.StudentsOfSubject(subjectID)
	sort.Slice(students, func(i, j int) bool {
		return students[i].FullName() < students[j].FullName()
	})

	assignments := groupAssignments(len(students), subject.GroupCount)
	for i, student := range students {
		for id, ss := range s.state.StudentSubjects.Rows {
			if ss.StudentID == student.ID && ss.SubjectID == subjectID {
				ss.GroupNumber = assignments[i]
				s.state.StudentSubjects.Rows[id] = ss
			}
		}
	}

	s.SetDirty()
	return true
}
