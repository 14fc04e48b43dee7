package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
)

// Resolver derives the effective record of any employee on any date from one snapshot. It holds
// no mutable state once built and is safe for concurrent use.
type Resolver struct {
	overrides     map[shift.Key]Record
	requests      map[shift.Key]shift.ShiftRequest
	firstBranchID string
	startTime     string
	endTime       string
}

func NewResolver(
	requests []shift.ShiftRequest,
	overrides []Record,
	branches []branch.Branch,
	s settings.SystemSettings,
) *Resolver {
	return &Resolver{
		overrides:     Index(overrides),
		requests:      shift.Index(requests),
		firstBranchID: branch.FirstID(branches),
		startTime:     s.DefaultStartTime(),
		endTime:       s.DefaultEndTime(),
	}
}

// Resolve returns, in order of precedence, the stored record, the record mapped from the
// employee's shift request, or a day off at the first branch with the default hours.
func (r *Resolver) Resolve(employeeID, date string) Record {
	key := shift.Key{EmployeeID: employeeID, Date: date}

	if rec, ok := r.overrides[key]; ok {
		return rec
	}

	if req, ok := r.requests[key]; ok {
		return Record{
			ID:         SyntheticID(employeeID, date),
			EmployeeID: employeeID,
			BranchID:   req.BranchID,
			Date:       date,
			IsWorking:  req.IsWorking,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Bonus:      decimal.Zero,
		}
	}

	return Record{
		ID:         SyntheticID(employeeID, date),
		EmployeeID: employeeID,
		BranchID:   r.firstBranchID,
		Date:       date,
		IsWorking:  false,
		StartTime:  r.startTime,
		EndTime:    r.endTime,
		Bonus:      decimal.Zero,
	}
}

// Stored reports whether an explicit record exists for (employeeID, date).
func (r *Resolver) Stored(employeeID, date string) bool {
	_, ok := r.overrides[shift.Key{EmployeeID: employeeID, Date: date}]
	return ok
}

// Resolve is the single-shot form of Resolver.Resolve.
func Resolve(
	employeeID, date string,
	requests []shift.ShiftRequest,
	overrides []Record,
	branches []branch.Branch,
	s settings.SystemSettings,
) Record {
	return NewResolver(requests, overrides, branches, s).Resolve(employeeID, date)
}
