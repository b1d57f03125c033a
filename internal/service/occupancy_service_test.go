package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

func TestOccupancyListGroupsByDay(t *testing.T) {
	f := newFixture(t)
	svc := NewOccupancyService(f.store, nil)

	// Booked out of order on purpose.
	f.book(tue10, tue12)
	f.book(mon12, mon12+3600)
	f.book(mon10, mon12)

	days := svc.List(dto.TimeWindow{})
	require.Len(t, days, 2)

	assert.Equal(t, "15-01-2024", days[0].Date)
	assert.Equal(t, "16-01-2024", days[1].Date)

	require.Len(t, days[0].Occupancies, 2)
	assert.Equal(t, mon10, days[0].Occupancies[0].Start)
	assert.Equal(t, mon12, days[0].Occupancies[1].Start)

	first := days[0].Occupancies[0]
	require.NotNil(t, first.ClassroomName)
	assert.Equal(t, "Amphi B", *first.ClassroomName)
	require.NotNil(t, first.SubjectName)
	assert.Equal(t, "Compilation", *first.SubjectName)
	assert.Equal(t, "Marie Durand", first.TeacherName)
}

func TestOccupancyListCapsPerDay(t *testing.T) {
	f := newFixture(t)
	svc := NewOccupancyService(f.store, nil)

	f.book(mon10, mon10+3600)
	f.book(mon10+3600, mon12)
	f.book(mon12, mon12+3600)

	perDay := 2
	days := svc.List(dto.TimeWindow{PerDay: &perDay})
	require.Len(t, days, 1)
	assert.Len(t, days[0].Occupancies, 2)
	assert.Equal(t, mon10, days[0].Occupancies[0].Start)
}

func TestOccupancyListWindow(t *testing.T) {
	f := newFixture(t)
	svc := NewOccupancyService(f.store, nil)

	f.book(mon10, mon12)
	f.book(tue10, tue12)

	days := svc.List(dto.TimeWindow{Start: &tue10})
	require.Len(t, days, 1)
	assert.Equal(t, "16-01-2024", days[0].Date)
}

func TestOccupancyRemoveIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	svc := NewOccupancyService(f.store, nil)

	booked := f.book(mon10, mon12)

	err := svc.Remove([]uint32{booked.ID, 999})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)
	assert.Len(t, svc.List(dto.TimeWindow{}), 1)

	require.NoError(t, svc.Remove([]uint32{booked.ID}))
	assert.Empty(t, svc.List(dto.TimeWindow{}))
}

func TestOccupancyModificationsNewestFirst(t *testing.T) {
	f := newFixture(t)
	svc := NewOccupancyService(f.store, nil)

	booked := f.book(mon10, mon12)
	require.NoError(t, svc.Remove([]uint32{booked.ID}))

	// The enrolled student saw the session appear and disappear.
	items := svc.Modifications(f.student.ID)
	require.Len(t, items, 2)
	assert.Equal(t, models.ModificationDelete, items[0].Type)
	assert.Equal(t, models.ModificationCreate, items[1].Type)

	assert.Empty(t, svc.Modifications(f.admin.ID))
}
