package store

import (
	"sort"
	"strconv"
	"strings"

	"github.com/abonnet/univ-edt-api/internal/models"
)

// NewUser carries the attributes of an account to create. The username is
// always derived, never supplied.
type NewUser struct {
	FirstName string
	LastName  string
	Password  string
	Kind      models.UserKind
}

// UsernameFromName derives the canonical "lastname.firstname" username:
// diacritics stripped, lowercased, spaces replaced by dots.
func UsernameFromName(firstName, lastName string) string {
	return strings.ReplaceAll(Normalize(lastName+" "+firstName), " ", ".")
}

// AddUser inserts a new account and returns it. Username collisions are
// disambiguated with a numeric suffix, so the returned user carries the
// authoritative username.
func (s *Store) AddUser(user NewUser) models.User {
	stored := s.addUser(user)
	s.SetDirty()
	return stored
}

func (s *Store) addUser(user NewUser) models.User {
	username := UsernameFromName(user.FirstName, user.LastName)
	if _, taken := s.state.Users[username]; taken {
		for n := 2; ; n++ {
			candidate := username + "." + strconv.Itoa(n)
			if _, taken := s.state.Users[candidate]; !taken {
				username = candidate
				break
			}
		}
	}

	stored := models.User{
		ID:        s.state.NextUserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  username,
		Password:  user.Password,
		Kind:      user.Kind,
	}
	s.state.Users[username] = stored
	s.state.NextUserID++
	return stored
}

// GetUser looks an account up by username.
func (s *Store) GetUser(username string) (models.User, bool) {
	user, ok := s.state.Users[username]
	return user, ok
}

// GetUserByID scans for an account by id.
func (s *Store) GetUserByID(id uint32) (models.User, bool) {
	for _, user := range s.state.Users {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

// GetTeacherByID returns the user only when its kind is Teacher.
func (s *Store) GetTeacherByID(id uint32) (models.User, bool) {
	user, ok := s.GetUserByID(id)
	if !ok {
		return models.User{}, false
	}
	if _, isTeacher := user.Kind.(models.Teacher); !isTeacher {
		return models.User{}, false
	}
	return user, true
}

// GetStudentByID returns the user only when its kind is Student.
func (s *Store) GetStudentByID(id uint32) (models.User, bool) {
	user, ok := s.GetUserByID(id)
	if !ok {
		return models.User{}, false
	}
	if _, isStudent := user.Kind.(models.Student); !isStudent {
		return models.User{}, false
	}
	return user, true
}

// UpdateUser stores the full user record back, keyed by username.
func (s *Store) UpdateUser(user models.User) {
	s.state.Users[user.Username] = user
	s.SetDirty()
}

// ListUsers filters accounts by the normalized full-name query and an
// optional predicate, with pagination when page is non-nil.
func (s *Store) ListUsers(page *int, query string, pred func(models.User) bool) (int, []models.User) {
	return search(s.sortedUsers(), models.User.FullName, page, query, pred)
}

func (s *Store) sortedUsers() []models.User {
	users := make([]models.User, 0, len(s.state.Users))
	for _, user := range s.state.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// RemoveUsers deletes all the given accounts, or none if any id is unknown.
// Session tokens bound to removed usernames are purged.
func (s *Store) RemoveUsers(ids []uint32) bool {
	usernames := make(map[uint32]string, len(ids))
	for _, user := range s.state.Users {
		usernames[user.ID] = user.Username
	}
	for _, id := range ids {
		if _, ok := usernames[id]; !ok {
			return false
		}
	}

	for _, id := range ids {
		username := usernames[id]
		delete(s.state.Users, username)
		s.purgeTokens(username)
	}
	s.SetDirty()
	return true
}
