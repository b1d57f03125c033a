package models

// Classroom is a physical room that occupancies can be booked into.
type Classroom struct {
	ID       uint32 `json:"id"`
	Name     string `json:"name"`
	Capacity uint16 `json:"capacity"`
}
