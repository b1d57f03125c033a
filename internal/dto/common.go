package dto

// ListQuery is the paginated, searchable listing request shared by every
// collection endpoint. A missing page means page 1.
type ListQuery struct {
	Page  *int   `form:"page"`
	Query string `form:"query"`
}

// NormalizedPage clamps the page number to 1 or more.
func (q ListQuery) NormalizedPage() int {
	if q.Page == nil || *q.Page < 1 {
		return 1
	}
	return *q.Page
}

// TimeWindow is the optional occupancy listing window, in epoch seconds.
type TimeWindow struct {
	Start  *uint64 `form:"start"`
	End    *uint64 `form:"end"`
	PerDay *int    `form:"occupancies_per_day"`
}

// AccountCreated returns the generated credentials of a new account.
type AccountCreated struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
