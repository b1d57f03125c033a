package service

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

// dayKeyFormat renders timestamps as dd-mm-yyyy, the grouping key of
// every timetable listing.
const dayKeyFormat = "02-01-2006"

// OccupancyService serves the global timetable and the per-user audit trail.
type OccupancyService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewOccupancyService constructs OccupancyService.
func NewOccupancyService(s *store.Store, logger *zap.Logger) *OccupancyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OccupancyService{store: s, logger: logger}
}

// List returns every session in the window, grouped per day.
func (s *OccupancyService) List(window dto.TimeWindow) []dto.OccupancyDay {
	s.store.Lock()
	defer s.store.Unlock()

	return groupByDay(s.store, s.store.ListOccupancies(window.Start, window.End), window.PerDay)
}

// Remove deletes all the given sessions, or none, and records a deletion
// for every affected user.
func (s *OccupancyService) Remove(ids []uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	if !s.store.RemoveOccupancies(ids) {
		return appErrors.Clone(appErrors.ErrNotFound, "unknown occupancy id in request")
	}
	return nil
}

// Modifications returns the recent timetable changes affecting the user,
// newest first.
func (s *OccupancyService) Modifications(userID uint32) []dto.ModificationItem {
	s.store.Lock()
	defer s.store.Unlock()

	items := []dto.ModificationItem{}
	for _, m := range s.store.LastModifications(userID) {
		items = append(items, dto.ModificationItem{
			Type:      m.Type,
			Timestamp: m.Timestamp,
			Occupancy: m.Occupancy,
		})
	}
	return items
}

// groupByDay renders occupancies into per-day buckets keyed by dd-mm-yyyy,
// sorted by start inside each day and capped at perDay entries when set.
// Days come back in chronological order. Lock must be held.
func groupByDay(s *store.Store, occupancies []models.Occupancy, perDay *int) []dto.OccupancyDay {
	buckets := map[string][]dto.OccupancyItem{}
	for _, o := range occupancies {
		key := time.Unix(int64(o.Start), 0).UTC().Format(dayKeyFormat)
		buckets[key] = append(buckets[key], renderOccupancy(s, o))
	}

	limit := 0
	if perDay != nil && *perDay > 0 {
		limit = *perDay
	}

	days := make([]dto.OccupancyDay, 0, len(buckets))
	for date, items := range buckets {
		sort.Slice(items, func(i, j int) bool { return items[i].Start < items[j].Start })
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		days = append(days, dto.OccupancyDay{Date: date, Occupancies: items})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Occupancies[0].Start < days[j].Occupancies[0].Start
	})
	return days
}

// renderOccupancy resolves the names a session refers to. Lock must be held.
func renderOccupancy(s *store.Store, o models.Occupancy) dto.OccupancyItem {
	item := dto.OccupancyItem{
		ID:    o.ID,
		Start: o.Start,
		End:   o.End,
		Type:  o.Type,
		Name:  o.Name,
	}

	if o.ClassroomID != nil {
		if classroom, ok := s.GetClassroom(*o.ClassroomID); ok {
			item.ClassroomName = &classroom.Name
		}
	}
	if o.GroupNumber != nil {
		name := fmt.Sprintf("Groupe %d", *o.GroupNumber+1)
		item.GroupName = &name
	}
	if o.SubjectID != nil {
		if subject, ok := s.GetSubject(*o.SubjectID); ok {
			item.SubjectName = &subject.Name
			if class, ok := s.GetClass(subject.ClassID); ok {
				item.ClassName = &class.Name
			}
		}
	}
	if teacher, ok := s.GetTeacherByID(o.TeacherID); ok {
		item.TeacherName = teacher.FullName()
	}
	return item
}
