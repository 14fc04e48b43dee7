package shift

// ShiftRequest is an employee's preference for one calendar date. At most one exists per
// (EmployeeID, Date).
type ShiftRequest struct {
	ID         string
	EmployeeID string
	BranchID   string
	Date       string
	IsWorking  bool
	// StartTime and EndTime are "HH:MM" and only meaningful when IsWorking is true.
	StartTime string
	EndTime   string
}

// Key identifies a request by employee and date.
type Key struct {
	EmployeeID string
	Date       string
}

func (s ShiftRequest) Key() Key {
	return Key{EmployeeID: s.EmployeeID, Date: s.Date}
}

// Index maps (employee, date) to its request. When the input holds duplicates the last one wins.
func Index(requests []ShiftRequest) map[Key]ShiftRequest {
	idx := make(map[Key]ShiftRequest, len(requests))
	for _, r := range requests {
		idx[r.Key()] = r
	}
	return idx
}
