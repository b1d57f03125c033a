package models

// OccupancyType distinguishes the kinds of scheduled sessions. CM/TD/TP and
// Projet are teaching sessions bound to a subject; Administration and
// External sessions have no subject.
type OccupancyType string

const (
	OccupancyCM             OccupancyType = "CM"
	OccupancyTD             OccupancyType = "TD"
	OccupancyTP             OccupancyType = "TP"
	OccupancyProjet         OccupancyType = "Projet"
	OccupancyAdministration OccupancyType = "Administration"
	OccupancyExternal       OccupancyType = "External"
)

// ValidOccupancyType reports whether t is one of the known session types.
func ValidOccupancyType(t OccupancyType) bool {
	switch t {
	case OccupancyCM, OccupancyTD, OccupancyTP, OccupancyProjet,
		OccupancyAdministration, OccupancyExternal:
		return true
	}
	return false
}

// Occupancy is a single scheduled session over an epoch-second window.
// ClassroomID, GroupNumber and SubjectID are optional depending on the type.
type Occupancy struct {
	ID          uint32        `json:"id"`
	ClassroomID *uint32       `json:"classroom_id,omitempty"`
	GroupNumber *uint32       `json:"group_number,omitempty"`
	SubjectID   *uint32       `json:"subject_id,omitempty"`
	TeacherID   uint32        `json:"teacher_id"`
	Start       uint64        `json:"start"`
	End         uint64        `json:"end"`
	Type        OccupancyType `json:"occupancy_type"`
	Name        string        `json:"name"`
}
