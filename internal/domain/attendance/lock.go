package attendance

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/master/branch"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/shift"
)

// Patch lists the fields an administrator may change on an unapproved record. Nil means unchanged.
// Approval is not a patchable field; it is only set by CommitApprovals.
type Patch struct {
	IsWorking *bool            `json:"is_working,omitempty"`
	BranchID  *string          `json:"branch_id,omitempty"`
	StartTime *string          `json:"start_time,omitempty"`
	EndTime   *string          `json:"end_time,omitempty"`
	Bonus     *decimal.Decimal `json:"bonus,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.IsWorking == nil && p.BranchID == nil && p.StartTime == nil && p.EndTime == nil && p.Bonus == nil
}

// EditResult reports the outcome of ApplyEdit. When Applied is false Record is the input unchanged.
type EditResult struct {
	Record  Record
	Applied bool
	// Changed names the fields whose value actually differs after the edit.
	Changed []string
}

// ApplyEdit applies p to rec. An approved record is never modified: the result carries the
// unchanged record, Applied=false and ErrRecordLocked.
func ApplyEdit(rec Record, p Patch) (EditResult, error) {
	if rec.IsApproved {
		return EditResult{Record: rec}, ErrRecordLocked
	}

	next := rec
	var changed []string

	if p.IsWorking != nil && *p.IsWorking != next.IsWorking {
		next.IsWorking = *p.IsWorking
		changed = append(changed, "is_working")
	}
	if p.BranchID != nil && *p.BranchID != next.BranchID {
		next.BranchID = *p.BranchID
		changed = append(changed, "branch_id")
	}
	if p.StartTime != nil && *p.StartTime != next.StartTime {
		next.StartTime = *p.StartTime
		changed = append(changed, "start_time")
	}
	if p.EndTime != nil && *p.EndTime != next.EndTime {
		next.EndTime = *p.EndTime
		changed = append(changed, "end_time")
	}
	if p.Bonus != nil && !p.Bonus.Equal(next.Bonus) {
		next.Bonus = *p.Bonus
		changed = append(changed, "bonus")
	}

	return EditResult{Record: next, Applied: true, Changed: changed}, nil
}

// CommitResult is the outcome of CommitApprovals.
type CommitResult struct {
	// Records is the complete new override set, sorted by date then employee.
	Records []Record
	// Committed holds the records of the committed range that were not approved before.
	Committed []Record
	// Dates is the committed range, deduplicated and ascending.
	Dates []string
}

// CommitApprovals resolves every employee on every date and marks the result approved. Records
// outside dates, and records of the range that belong to unknown employees, pass through unchanged.
// An empty dates set returns the overrides unchanged.
func CommitApprovals(
	dates []string,
	employees []employee.Employee,
	requests []shift.ShiftRequest,
	overrides []Record,
	branches []branch.Branch,
	s settings.SystemSettings,
) CommitResult {
	resolver := NewResolver(requests, overrides, branches, s)
	current := Index(overrides)
	result := CommitResult{Dates: uniqueSorted(dates)}

	for _, date := range result.Dates {
		for _, emp := range employees {
			rec := resolver.Resolve(emp.ID, date)
			if rec.IsApproved {
				continue
			}
			rec.IsApproved = true
			current[rec.Key()] = rec
			result.Committed = append(result.Committed, rec)
		}
	}

	result.Records = make([]Record, 0, len(current))
	for _, rec := range current {
		result.Records = append(result.Records, rec)
	}
	sortRecords(result.Records)

	return result
}

func uniqueSorted(dates []string) []string {
	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.EmployeeID < b.EmployeeID
	})
}
