package store

import (
	"time"

	"github.com/abonnet/univ-edt-api/internal/models"
)

// modificationCap bounds each user's audit history.
const modificationCap = 25

// NewOccupancy carries the attributes of a session to schedule. SubjectID
// is absent only for administrative and external sessions.
type NewOccupancy struct {
	ClassroomID *uint32
	GroupNumber *uint32
	SubjectID   *uint32
	TeacherID   uint32
	Start       uint64
	End         uint64
	Type        models.OccupancyType
	Name        string
}

// AddOccupancy schedules the session and pushes a Create audit record to
// every affected user: the teacher plus the enrolled students, narrowed to
// the occupancy's group when one is set.
func (s *Store) AddOccupancy(occupancy NewOccupancy) models.Occupancy {
	stored := s.addOccupancy(occupancy)
	s.SetDirty()
	return stored
}

func (s *Store) addOccupancy(occupancy NewOccupancy) models.Occupancy {
	stored := s.state.Occupancies.insert(func(id uint32) models.Occupancy {
		return models.Occupancy{
			ID:          id,
			ClassroomID: occupancy.ClassroomID,
			GroupNumber: occupancy.GroupNumber,
			SubjectID:   occupancy.SubjectID,
			TeacherID:   occupancy.TeacherID,
			Start:       occupancy.Start,
			End:         occupancy.End,
			Type:        occupancy.Type,
			Name:        occupancy.Name,
		}
	})

	s.addModification(s.affectedUsers(stored), models.Modification{
		Type:      models.ModificationCreate,
		Timestamp: uint64(time.Now().Unix()),
		Occupancy: s.modificationSnapshot(stored),
	})
	return stored
}

// affectedUsers lists every user whose timetable the occupancy touches.
func (s *Store) affectedUsers(occupancy models.Occupancy) []uint32 {
	affected := []uint32{occupancy.TeacherID}
	if occupancy.SubjectID == nil {
		return affected
	}

	for _, ss := range s.state.StudentSubjects.values() {
		if ss.SubjectID != *occupancy.SubjectID {
			continue
		}
		if occupancy.GroupNumber != nil && ss.GroupNumber != *occupancy.GroupNumber {
			continue
		}
		affected = append(affected, ss.StudentID)
	}
	return affected
}

func (s *Store) modificationSnapshot(occupancy models.Occupancy) models.ModificationOccupancy {
	snapshot := models.ModificationOccupancy{
		SubjectID:     occupancy.SubjectID,
		Type:          occupancy.Type,
		Start:         occupancy.Start,
		End:           occupancy.End,
		PreviousStart: occupancy.Start,
		PreviousEnd:   occupancy.End,
	}
	if occupancy.SubjectID != nil {
		if subject, ok := s.state.Subjects.get(*occupancy.SubjectID); ok {
			classID := subject.ClassID
			snapshot.ClassID = &classID
		}
	}
	return snapshot
}

// addModification pushes the record to the front of each affected user's
// history and truncates to the cap.
func (s *Store) addModification(userIDs []uint32, modification models.Modification) {
	for _, uid := range userIDs {
		history := append([]models.Modification{modification}, s.state.Modifications[uid]...)
		if len(history) > modificationCap {
			history = history[:modificationCap]
		}
		s.state.Modifications[uid] = history
	}
}

// LastModifications returns the user's audit history, newest first.
func (s *Store) LastModifications(userID uint32) []models.Modification {
	return s.state.Modifications[userID]
}

// GetOccupancy looks an occupancy up by id.
func (s *Store) GetOccupancy(id uint32) (models.Occupancy, bool) {
	return s.state.Occupancies.get(id)
}

// ListOccupancies returns every occupancy within the optional window:
// starting at or after from, ending at or before to.
func (s *Store) ListOccupancies(from, to *uint64) []models.Occupancy {
	result := []models.Occupancy{}
	for _, occupancy := range s.state.Occupancies.values() {
		if from != nil && occupancy.Start < *from {
			continue
		}
		if to != nil && occupancy.End > *to {
			continue
		}
		result = append(result, occupancy)
	}
	return result
}

// RemoveOccupancies deletes all the given occupancies, or none. Delete
// audit records are pushed to every affected user before removal.
func (s *Store) RemoveOccupancies(ids []uint32) bool {
	occupancies := make([]models.Occupancy, 0, len(ids))
	for _, id := range ids {
		occupancy, ok := s.state.Occupancies.get(id)
		if !ok {
			return false
		}
		occupancies = append(occupancies, occupancy)
	}

	now := uint64(time.Now().Unix())
	for _, occupancy := range occupancies {
		s.addModification(s.affectedUsers(occupancy), models.Modification{
			Type:      models.ModificationDelete,
			Timestamp: now,
			Occupancy: s.modificationSnapshot(occupancy),
		})
		delete(s.state.Occupancies.Rows, occupancy.ID)
	}
	s.SetDirty()
	return true
}

// The four availability predicates all test containment: a window is
// considered taken only when an existing occupancy lies entirely inside it
// (existing.Start >= from && existing.End <= to). This matches the
// historical booking behaviour and is deliberately narrower than interval
// intersection.

func within(occupancy models.Occupancy, from, to uint64) bool {
	return occupancy.Start >= from && occupancy.End <= to
}

// ClassroomFree reports whether no occupancy in the classroom is contained
// in the window.
func (s *Store) ClassroomFree(classroomID uint32, from, to uint64) bool {
	for _, o := range s.state.Occupancies.Rows {
		if o.ClassroomID != nil && *o.ClassroomID == classroomID && within(o, from, to) {
			return false
		}
	}
	return true
}

// TeacherFree reports whether no occupancy of the teacher is contained in
// the window.
func (s *Store) TeacherFree(teacherID uint32, from, to uint64) bool {
	for _, o := range s.state.Occupancies.Rows {
		if o.TeacherID == teacherID && within(o, from, to) {
			return false
		}
	}
	return true
}

// ClassFree reports whether no occupancy of any subject belonging to the
// class is contained in the window.
func (s *Store) ClassFree(classID uint32, from, to uint64) bool {
	for _, o := range s.state.Occupancies.Rows {
		if o.SubjectID == nil || !within(o, from, to) {
			continue
		}
		if subject, ok := s.state.Subjects.get(*o.SubjectID); ok && subject.ClassID == classID {
			return false
		}
	}
	return true
}

// GroupFree reports whether no occupancy of the exact subject, class and
// group is contained in the window.
func (s *Store) GroupFree(classID, subjectID, groupNumber uint32, from, to uint64) bool {
	for _, o := range s.state.Occupancies.Rows {
		if o.SubjectID == nil || *o.SubjectID != subjectID || !within(o, from, to) {
			continue
		}
		if o.GroupNumber == nil || *o.GroupNumber != groupNumber {
			continue
		}
		if subject, ok := s.state.Subjects.get(subjectID); ok && subject.ClassID == classID {
			return false
		}
	}
	return true
}
