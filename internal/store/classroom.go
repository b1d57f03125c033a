package store

import "github.com/abonnet/univ-edt-api/internal/models"

// NewClassroom carries the attributes of a classroom to create.
type NewClassroom struct {
	Name     string `json:"name" binding:"required"`
	Capacity uint16 `json:"capacity"`
}

// ClassroomUpdate is a partial classroom update; nil fields are unchanged.
type ClassroomUpdate struct {
	Name     *string `json:"name"`
	Capacity *uint16 `json:"capacity"`
}

// AddClassroom inserts a classroom and returns it.
func (s *Store) AddClassroom(classroom NewClassroom) models.Classroom {
	stored := s.addClassroom(classroom)
	s.SetDirty()
	return stored
}

func (s *Store) addClassroom(classroom NewClassroom) models.Classroom {
	return s.state.Classrooms.insert(func(id uint32) models.Classroom {
		return models.Classroom{ID: id, Name: classroom.Name, Capacity: classroom.Capacity}
	})
}

// GetClassroom looks a classroom up by id.
func (s *Store) GetClassroom(id uint32) (models.Classroom, bool) {
	return s.state.Classrooms.get(id)
}

// ListClassrooms filters classrooms by name query with pagination.
func (s *Store) ListClassrooms(page int, query string) (int, []models.Classroom) {
	project := func(c models.Classroom) string { return c.Name }
	return search(s.state.Classrooms.values(), project, &page, query, nil)
}

// RemoveClassrooms deletes all the given classrooms, or none.
func (s *Store) RemoveClassrooms(ids []uint32) bool {
	if !s.state.Classrooms.removeMany(ids) {
		return false
	}
	s.SetDirty()
	return true
}

// UpdateClassroom applies a partial update.
func (s *Store) UpdateClassroom(id uint32, update ClassroomUpdate) UpdateStatus {
	classroom, ok := s.state.Classrooms.get(id)
	if !ok {
		return UpdateStatus{}
	}

	updated := false
	if update.Name != nil {
		classroom.Name = *update.Name
		updated = true
	}
	if update.Capacity != nil {
		classroom.Capacity = *update.Capacity
		updated = true
	}

	if updated {
		s.state.Classrooms.Rows[id] = classroom
		s.SetDirty()
	}
	return UpdateStatus{Found: true, Updated: updated}
}
