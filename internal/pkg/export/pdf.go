// Package export renders payroll results as downloadable documents.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/payroll"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var statementColumns = []struct {
	title string
	width float64
}{
	{"Date", 26},
	{"Branch", 40},
	{"Start", 18},
	{"End", 18},
	{"Hours", 18},
	{"Pay", 24},
	{"Bonus", 22},
	{"Total", 24},
}

// StatementPDF renders one employee's monthly statement on A4.
func StatementPDF(es payroll.EmployeeSummaryResponse, year, month int) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Pay statement %04d-%02d %s", year, month, es.Name), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pay statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", es.Name, es.EmployeeID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %04d-%02d", year, month))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Hourly rate: %s", money(es.Rate.String())))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range statementColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range es.Items {
		cells := []string{
			it.Date,
			it.Branch,
			it.StartTime,
			it.EndTime,
			it.Hours.StringFixed(2),
			money(it.Pay.StringFixed(0)),
			money(it.Bonus.StringFixed(0)),
			money(it.Total.StringFixed(0)),
		}
		for i, c := range statementColumns {
			align := "R"
			if i < 4 {
				align = "L"
			}
			pdf.CellFormat(c.width, 6, cells[i], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Days worked: %d   Hours: %s", es.Days, es.TotalHours.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Base pay: %s   Bonus: %s", money(es.BasePay.StringFixed(0)), money(es.TotalBonus.StringFixed(0))))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Total: %s", money(es.Total.StringFixed(0))))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render statement pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// money groups the integer digits of a decimal string in thousands: "222500" -> "222,500".
func money(amount string) string {
	sign := ""
	if strings.HasPrefix(amount, "-") {
		sign, amount = "-", amount[1:]
	}
	whole, frac := amount, ""
	if i := strings.IndexByte(amount, '.'); i >= 0 {
		whole, frac = amount[:i], amount[i:]
	}

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
