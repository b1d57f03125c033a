package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abonnet/univ-edt-api/internal/models"
)

func TestNormalizeStripsDiacriticsAndCase(t *testing.T) {
	assert.Equal(t, "francois", Normalize("  François "))
	assert.Equal(t, "eleonore", Normalize("Éléonore"))
	assert.Equal(t, "algebre lineaire", Normalize("Algèbre Linéaire"))
}

func TestSearchMatchesNormalizedSubstring(t *testing.T) {
	s := newTestStore()
	s.AddClassroom(NewClassroom{Name: "Amphithéâtre A", Capacity: 200})
	s.AddClassroom(NewClassroom{Name: "Salle B12", Capacity: 30})

	total, page := s.ListClassrooms(1, "amphitheatre")
	require.Equal(t, 1, total)
	assert.Equal(t, "Amphithéâtre A", page[0].Name)

	total, _ = s.ListClassrooms(1, "")
	assert.Equal(t, 2, total, "absent query matches every row")
}

func TestPaginationTotalInvariance(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 27; i++ {
		s.AddClassroom(NewClassroom{Name: fmt.Sprintf("Salle %02d", i), Capacity: 30})
	}

	seen := 0
	var total int
	for page := 1; ; page++ {
		var rows []models.Classroom
		total, rows = s.ListClassrooms(page, "salle")
		require.Equal(t, 27, total, "total is the full match count on every page")
		if len(rows) == 0 {
			break
		}
		require.LessOrEqual(t, len(rows), PageSize)
		seen += len(rows)
	}
	assert.Equal(t, total, seen)
}

func TestPageBelowOneNormalizedToFirstPage(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 15; i++ {
		s.AddClassroom(NewClassroom{Name: fmt.Sprintf("Salle %02d", i), Capacity: 30})
	}

	_, first := s.ListClassrooms(1, "")
	_, zeroth := s.ListClassrooms(0, "")
	_, negative := s.ListClassrooms(-3, "")

	assert.Equal(t, first, zeroth)
	assert.Equal(t, first, negative)
}

func TestListUsersWithPredicate(t *testing.T) {
	s := newTestStore()
	addTeacher(s, "Marie", "Curie")
	addStudent(s, "Jean", "Dupont", 0)
	addStudent(s, "Jeanne", "Curie", 0)

	isStudent := func(u models.User) bool {
		_, ok := u.Kind.(models.Student)
		return ok
	}

	page := 1
	total, students := s.ListUsers(&page, "curie", isStudent)
	require.Equal(t, 1, total)
	assert.Equal(t, "Jeanne", students[0].FirstName)
}

func TestListUsersWithoutPageReturnsEverything(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 25; i++ {
		addStudent(s, fmt.Sprintf("Prénom%02d", i), "Nom", 0)
	}

	total, all := s.ListUsers(nil, "", nil)
	assert.Equal(t, 25, total)
	assert.Len(t, all, 25)
}

func TestSearchOrderIsDeterministic(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 12; i++ {
		s.AddClassroom(NewClassroom{Name: fmt.Sprintf("Salle %02d", i), Capacity: 30})
	}

	_, first := s.ListClassrooms(1, "")
	for attempt := 0; attempt < 5; attempt++ {
		_, again := s.ListClassrooms(1, "")
		require.Equal(t, first, again)
	}
	for i := 1; i < len(first); i++ {
		assert.Greater(t, first[i].ID, first[i-1].ID)
	}
}
