package models

// ClassLevel is the academic year of a class, licence 1 through master 2.
type ClassLevel string

const (
	LevelL1 ClassLevel = "L1"
	LevelL2 ClassLevel = "L2"
	LevelL3 ClassLevel = "L3"
	LevelM1 ClassLevel = "M1"
	LevelM2 ClassLevel = "M2"
)

// ValidClassLevel reports whether l is one of the five known levels.
func ValidClassLevel(l ClassLevel) bool {
	switch l {
	case LevelL1, LevelL2, LevelL3, LevelM1, LevelM2:
		return true
	}
	return false
}

// Class is a cohort of students, not a scheduled session.
type Class struct {
	ID    uint32     `json:"id"`
	Name  string     `json:"name"`
	Level ClassLevel `json:"level"`
}
