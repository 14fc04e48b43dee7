package shift

import "sort"

// Defaults fill the fields an employee left blank.
type Defaults struct {
	HomeBranchID  string
	FirstBranchID string
	StartTime     string
	EndTime       string
}

// SubmissionResult is the outcome of merging one employee's half-month submission.
type SubmissionResult struct {
	// Requests is the complete new request set, for every employee.
	Requests []ShiftRequest
	// Written holds only the requests created or replaced by this submission.
	Written []ShiftRequest
	// Skipped lists period dates left untouched because they are locked.
	Skipped []string
}

// MergeSubmission replaces employeeID's requests on the given dates with entries. Dates for which
// locked returns true keep whatever request they had. A date with no entry is recorded as a day off.
// Requests of other employees and of this employee outside dates pass through unchanged.
func MergeSubmission(
	existing []ShiftRequest,
	employeeID string,
	dates []string,
	entries []SubmitEntry,
	locked func(date string) bool,
	defaults Defaults,
	newID func() string,
) SubmissionResult {
	byDate := make(map[string]SubmitEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}
	inPeriod := make(map[string]bool, len(dates))
	for _, d := range dates {
		inPeriod[d] = true
	}

	current := Index(existing)
	var result SubmissionResult

	for _, date := range dates {
		key := Key{EmployeeID: employeeID, Date: date}
		if locked(date) {
			result.Skipped = append(result.Skipped, date)
			continue
		}

		entry := byDate[date]
		prev, had := current[key]

		req := ShiftRequest{
			EmployeeID: employeeID,
			Date:       date,
			IsWorking:  entry.IsWorking,
			BranchID:   firstNonEmpty(entry.BranchID, prev.BranchID, defaults.HomeBranchID, defaults.FirstBranchID),
			StartTime:  firstNonEmpty(entry.StartTime, defaults.StartTime),
			EndTime:    firstNonEmpty(entry.EndTime, defaults.EndTime),
		}
		if had {
			req.ID = prev.ID
		} else {
			req.ID = newID()
		}

		current[key] = req
		result.Written = append(result.Written, req)
	}

	result.Requests = make([]ShiftRequest, 0, len(current))
	for _, r := range current {
		result.Requests = append(result.Requests, r)
	}
	sort.Slice(result.Requests, func(i, j int) bool {
		a, b := result.Requests[i], result.Requests[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.EmployeeID < b.EmployeeID
	})

	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
