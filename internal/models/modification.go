package models

// ModificationType tags an audit record.
type ModificationType string

const (
	ModificationCreate ModificationType = "Create"
	ModificationEdit   ModificationType = "Edit"
	ModificationDelete ModificationType = "Delete"
)

// ModificationOccupancy is the occupancy snapshot embedded in an audit
// record. Previous* equal the current window on creation.
type ModificationOccupancy struct {
	SubjectID     *uint32       `json:"subject_id,omitempty"`
	ClassID       *uint32       `json:"class_id,omitempty"`
	Type          OccupancyType `json:"occupancy_type"`
	Start         uint64        `json:"occupancy_start"`
	End           uint64        `json:"occupancy_end"`
	PreviousStart uint64        `json:"previous_occupancy_start"`
	PreviousEnd   uint64        `json:"previous_occupancy_end"`
}

// Modification is one entry of a user's occupancy-change history, stored
// newest first and capped per user.
type Modification struct {
	Type      ModificationType      `json:"modification_type"`
	Timestamp uint64                `json:"modification_timestamp"`
	Occupancy ModificationOccupancy `json:"occupancy"`
}
