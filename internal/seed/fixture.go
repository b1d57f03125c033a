package seed

func strptr(s string) *string { return &s }

// fixtureEvents is a small week of sessions used when the calendar feed is
// missing, enough to exercise every endpoint locally.
func fixtureEvents() []Event {
	return []Event{
		{
			UID:       "fixture-1",
			Name:      "Programmation CM",
			Location:  "Amphi A",
			Start:     1757919600,
			End:       1757926800,
			Professor: strptr("Dupont Jean"),
			Subject:   "Programmation",
			Type:      "CM",
		},
		{
			UID:       "fixture-2",
			Name:      "Programmation TD",
			Location:  "Salle 101",
			Start:     1757930400,
			End:       1757937600,
			Professor: strptr("Dupont Jean"),
			Subject:   "Programmation",
			Type:      "TD",
		},
		{
			UID:       "fixture-3",
			Name:      "Bases de données CM",
			Location:  "Amphi A",
			Start:     1758006000,
			End:       1758013200,
			Professor: strptr("Martin Claire"),
			Subject:   "Bases de données",
			Type:      "CM",
		},
		{
			UID:       "fixture-4",
			Name:      "Bases de données TP",
			Location:  "Salle 204",
			Start:     1758016800,
			End:       1758024000,
			Professor: strptr("Martin Claire"),
			Subject:   "Bases de données",
			Type:      "TP",
		},
		{
			UID:       "fixture-5",
			Name:      "Projet tutoré",
			Location:  "Salle 101",
			Start:     1758092400,
			End:       1758106800,
			Professor: strptr("Dupont Jean"),
			Subject:   "Projet",
			Type:      "Projet",
		},
	}
}

func fixtureStudents() []StudentName {
	return []StudentName{
		{FirstName: "Alice", LastName: "Bernard"},
		{FirstName: "Bruno", LastName: "Costa"},
		{FirstName: "Chloé", LastName: "Durand"},
		{FirstName: "David", LastName: "Elbaz"},
		{FirstName: "Émilie", LastName: "Fabre"},
		{FirstName: "Farid", LastName: "Guérin"},
	}
}
