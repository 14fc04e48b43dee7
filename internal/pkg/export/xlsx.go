package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// Workbook renders the month as a "Summary" sheet followed by one sheet per employee statement.
func Workbook(summary payroll.SummaryResponse, statements []payroll.EmployeeSummaryResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	w := sheetWriter{f: f, header: headerStyle}

	w.sheet = summarySheet
	w.row(fmt.Sprintf("Payroll %04d-%02d", summary.Year, summary.Month))
	w.headerRow("Employee ID", "Name", "Rate", "Days", "Hours", "Base pay", "Bonus", "Total")
	for _, es := range summary.Employees {
		w.row(es.EmployeeID, es.Name, es.Rate.InexactFloat64(), es.Days,
			es.TotalHours.InexactFloat64(), es.BasePay.InexactFloat64(), es.TotalBonus.InexactFloat64(), es.Total.InexactFloat64())
	}
	w.row("", "Company total", "", "", summary.CompanyHours.InexactFloat64(), "", "", summary.CompanyTotal.InexactFloat64())
	w.widths(14, 24, 12, 8, 10, 14, 12, 14)

	used := map[string]bool{summarySheet: true}
	for _, es := range statements {
		name := sheetName(es.Name, es.EmployeeID, used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
		w.sheet, w.next = name, 0
		w.row(es.Name, es.EmployeeID)
		w.headerRow("Date", "Branch", "Start", "End", "Hours", "Pay", "Bonus", "Total")
		for _, it := range es.Items {
			w.row(it.Date, it.Branch, it.StartTime, it.EndTime,
				it.Hours.InexactFloat64(), it.Pay.InexactFloat64(), it.Bonus.InexactFloat64(), it.Total.InexactFloat64())
		}
		w.row("", "Total", "", "", es.TotalHours.InexactFloat64(), es.BasePay.InexactFloat64(), es.TotalBonus.InexactFloat64(), es.Total.InexactFloat64())
		w.widths(12, 20, 8, 8, 8, 12, 12, 12)
	}
	if w.err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", w.err)
	}

	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows to the current sheet and keeps the first error.
type sheetWriter struct {
	f      *excelize.File
	header int
	sheet  string
	next   int
	err    error
}

func (w *sheetWriter) row(values ...interface{}) {
	if w.err != nil {
		return
	}
	w.next++
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func (w *sheetWriter) headerRow(titles ...interface{}) {
	w.row(titles...)
	if w.err != nil {
		return
	}
	start, _ := excelize.CoordinatesToCellName(1, w.next)
	end, _ := excelize.CoordinatesToCellName(len(titles), w.next)
	w.err = w.f.SetCellStyle(w.sheet, start, end, w.header)
}

func (w *sheetWriter) widths(widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(w.sheet, col, col, width)
	}
}

// sheetName derives a unique, valid sheet name of at most 31 characters.
func sheetName(name, id string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = id
	}

	candidate := truncate(clean, 31)
	for n := 2; used[candidate]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncate(clean, 31-len(suffix)) + suffix
	}
	used[candidate] = true
	return candidate
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
