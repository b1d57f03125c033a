package store

import "github.com/abonnet/univ-edt-api/internal/models"

// NewClass carries the attributes of a class to create.
type NewClass struct {
	Name  string            `json:"name" binding:"required"`
	Level models.ClassLevel `json:"level" binding:"required"`
}

// ClassUpdate is a partial class update; nil fields are unchanged.
type ClassUpdate struct {
	Name  *string            `json:"name"`
	Level *models.ClassLevel `json:"level"`
}

// AddClass inserts a class and returns it.
func (s *Store) AddClass(class NewClass) models.Class {
	stored := s.addClass(class)
	s.SetDirty()
	return stored
}

func (s *Store) addClass(class NewClass) models.Class {
	return s.state.Classes.insert(func(id uint32) models.Class {
		return models.Class{ID: id, Name: class.Name, Level: class.Level}
	})
}

// GetClass looks a class up by id.
func (s *Store) GetClass(id uint32) (models.Class, bool) {
	return s.state.Classes.get(id)
}

// ListClasses filters classes by name query with pagination.
func (s *Store) ListClasses(page int, query string) (int, []models.Class) {
	project := func(c models.Class) string { return c.Name }
	return search(s.state.Classes.values(), project, &page, query, nil)
}

// RemoveClasses deletes all the given classes, or none.
func (s *Store) RemoveClasses(ids []uint32) bool {
	if !s.state.Classes.removeMany(ids) {
		return false
	}
	s.SetDirty()
	return true
}

// UpdateClass applies a partial update.
func (s *Store) UpdateClass(id uint32, update ClassUpdate) UpdateStatus {
	class, ok := s.state.Classes.get(id)
	if !ok {
		return UpdateStatus{}
	}

	updated := false
	if update.Name != nil {
		class.Name = *update.Name
		updated = true
	}
	if update.Level != nil {
		class.Level = *update.Level
		updated = true
	}

	if updated {
		s.state.Classes.Rows[id] = class
		s.SetDirty()
	}
	return UpdateStatus{Found: true, Updated: updated}
}
