// Package seed turns the exported calendar and student feeds into an
// initial dataset: three fixed accounts, one classroom per distinct event
// location, one teacher account per distinct professor, a single L3 class,
// one subject per distinct event subject and one occupancy per event.
package seed

import (
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
)

const emailDomain = "edu.univ-amu.fr"

// Func builds the seeding function used when the snapshot file is missing
// or the dataset is reset. Unreadable feeds are replaced by a small
// built-in fixture so the server still boots.
func Func(calendarPath, studentsPath string, logger *zap.Logger) store.SeedFunc {
	return func(s *store.Store) {
		events, err := LoadEvents(calendarPath)
		if err != nil {
			logger.Warn("calendar feed unavailable, using built-in fixture",
				zap.String("path", calendarPath), zap.Error(err))
			events = fixtureEvents()
		}

		names, err := LoadStudents(studentsPath)
		if err != nil {
			logger.Warn("student feed unavailable, using built-in fixture",
				zap.String("path", studentsPath), zap.Error(err))
			names = fixtureStudents()
		}

		users := fixedAccounts()
		teachers, teacherIDs := teachersFrom(events, uint32(len(users)))
		users = append(users, teachers...)
		users = append(users, studentsFrom(names)...)

		s.Seed(
			users,
			classroomsFrom(events),
			[]store.NewClass{{Name: "L3 Informatique", Level: models.LevelL3}},
			subjectsFrom(events, teacherIDs),
			occupanciesFrom(events, logger),
		)
	}
}

// fixedAccounts are the three well-known logins, one per role.
func fixedAccounts() []store.NewUser {
	teacherEmail := "teacher@" + emailDomain
	phone := randomPhoneNumber()

	return []store.NewUser{
		{
			FirstName: "Admin",
			LastName:  "User",
			Password:  "user.admin",
			Kind:      models.Administrator{},
		},
		{
			FirstName: "Teacher",
			LastName:  "User",
			Password:  "user.teacher",
			Kind: models.Teacher{
				Phone: &phone,
				Email: &teacherEmail,
				Rank:  models.RankProfessor,
			},
		},
		{
			FirstName: "Student",
			LastName:  "User",
			Password:  "user.student",
			Kind:      models.Student{ClassID: 0},
		},
	}
}

func classroomsFrom(events []Event) []store.NewClassroom {
	seen := make(map[string]bool)
	classrooms := []store.NewClassroom{}
	for _, event := range events {
		if seen[event.Location] {
			continue
		}
		seen[event.Location] = true
		classrooms = append(classrooms, store.NewClassroom{Name: event.Location, Capacity: 50})
	}
	return classrooms
}

// teachersFrom builds one account per distinct professor, in the order they
// first appear. The feed writes professors as "Lastname Firstname". The
// returned map resolves a professor string to the user id the account will
// get, given that allocation starts at firstID.
func teachersFrom(events []Event, firstID uint32) ([]store.NewUser, map[string]uint32) {
	teachers := []store.NewUser{}
	ids := make(map[string]uint32)

	for _, event := range events {
		if event.Professor == nil {
			continue
		}
		if _, known := ids[*event.Professor]; known {
			continue
		}

		firstName, lastName := splitProfessor(*event.Professor)
		username := store.UsernameFromName(firstName, lastName)
		phone := randomPhoneNumber()
		email := username + "@" + emailDomain

		ids[*event.Professor] = firstID + uint32(len(teachers))
		teachers = append(teachers, store.NewUser{
			FirstName: firstName,
			LastName:  lastName,
			Password:  username,
			Kind: models.Teacher{
				Phone: &phone,
				Email: &email,
				Rank:  models.RankProfessor,
			},
		})
	}

	return teachers, ids
}

func splitProfessor(professor string) (firstName, lastName string) {
	parts := strings.SplitN(professor, " ", 2)
	if len(parts) < 2 {
		return parts[0], parts[0]
	}
	return parts[1], parts[0]
}

func studentsFrom(names []StudentName) []store.NewUser {
	students := make([]store.NewUser, 0, len(names))
	for _, name := range names {
		students = append(students, store.NewUser{
			FirstName: name.FirstName,
			LastName:  name.LastName,
			Password:  store.UsernameFromName(name.FirstName, name.LastName),
			Kind:      models.Student{ClassID: 0},
		})
	}
	return students
}

// subjectsFrom builds one subject per distinct event subject, in charge of
// the professor of the first event that carries one. Subjects whose events
// never name a professor fall back to the fixed teacher account.
func subjectsFrom(events []Event, teacherIDs map[string]uint32) []store.NewSubject {
	const fallbackTeacherID = 1

	seen := make(map[string]bool)
	subjects := []store.NewSubject{}
	for _, event := range events {
		if seen[event.Subject] {
			continue
		}
		seen[event.Subject] = true

		inCharge := uint32(fallbackTeacherID)
		for _, candidate := range events {
			if candidate.Subject != event.Subject || candidate.Professor == nil {
				continue
			}
			if id, ok := teacherIDs[*candidate.Professor]; ok {
				inCharge = id
				break
			}
		}

		subjects = append(subjects, store.NewSubject{
			ClassID:           0,
			Name:              event.Subject,
			TeacherInChargeID: inCharge,
		})
	}
	return subjects
}

func occupanciesFrom(events []Event, logger *zap.Logger) []store.SeedOccupancy {
	occupancies := []store.SeedOccupancy{}
	for _, event := range events {
		if event.Professor == nil {
			continue
		}

		occupancyType, ok := eventOccupancyType(event.Type)
		if !ok {
			logger.Warn("skipping event with unknown type",
				zap.String("uid", event.UID), zap.String("type", event.Type))
			continue
		}

		var group *uint32
		switch occupancyType {
		case models.OccupancyTD, models.OccupancyTP:
			g := uint32(0)
			group = &g
		}

		firstName, lastName := splitProfessor(*event.Professor)
		occupancies = append(occupancies, store.SeedOccupancy{
			ClassroomName:    event.Location,
			GroupNumber:      group,
			SubjectName:      event.Subject,
			TeacherFirstName: firstName,
			TeacherLastName:  lastName,
			Start:            uint64(event.Start),
			End:              uint64(event.End),
			Type:             occupancyType,
			Name:             event.Name,
		})
	}
	return occupancies
}

func eventOccupancyType(eventType string) (models.OccupancyType, bool) {
	switch eventType {
	case "CM":
		return models.OccupancyCM, true
	case "TD":
		return models.OccupancyTD, true
	case "TP":
		return models.OccupancyTP, true
	case "Projet":
		return models.OccupancyProjet, true
	}
	return "", false
}

// randomPhoneNumber generates a french mobile number, 06 or 07 prefixed.
func randomPhoneNumber() string {
	digits := make([]byte, 0, 10)
	digits = append(digits, '0', byte('6'+rand.Intn(2)))
	for i := 0; i < 8; i++ {
		digits = append(digits, byte('0'+rand.Intn(10)))
	}
	return string(digits)
}
