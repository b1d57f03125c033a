package seed

import (
	"encoding/json"
	"os"
)

// Event is one calendar entry from the exported timetable feed. The feed is
// the JSON rendering of the faculty iCal export.
type Event struct {
	UID         string  `json:"uid"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Description string  `json:"description"`
	Professor   *string `json:"professor"`
	Subject     string  `json:"subject"`
	Type        string  `json:"type"`
}

// StudentName is one entry of the enrolled-students feed.
type StudentName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoadEvents parses the calendar feed at path.
func LoadEvents(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// LoadStudents parses the student-names feed at path.
func LoadStudents(path string) ([]StudentName, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var names []StudentName
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	return names, nil
}
