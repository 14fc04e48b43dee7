package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

func sampleStatement(id, name string) payroll.EmployeeSummaryResponse {
	return payroll.EmployeeSummaryResponse{
		EmployeeID: id,
		Name:       name,
		Rate:       decimal.NewFromInt(15000),
		Days:       1,
		TotalHours: decimal.RequireFromString("8.5"),
		BasePay:    decimal.NewFromInt(127500),
		TotalBonus: decimal.NewFromInt(5000),
		Total:      decimal.NewFromInt(132500),
		Items: []payroll.LineItemResponse{{
			Date:      "2024-03-04",
			Branch:    "Main",
			StartTime: "10:00",
			EndTime:   "18:30",
			Hours:     decimal.RequireFromString("8.5"),
			Pay:       decimal.NewFromInt(127500),
			Bonus:     decimal.NewFromInt(5000),
			Total:     decimal.NewFromInt(132500),
		}},
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"222500", "222,500"},
		{"1234567.50", "1,234,567.50"},
		{"-15000", "-15,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, money(tt.in), tt.in)
	}
}

func TestStatementPDF(t *testing.T) {
	out, err := StatementPDF(sampleStatement("e1", "Aiko"), 2024, 3)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestWorkbookSheets(t *testing.T) {
	a := sampleStatement("e1", "Aiko")
	b := sampleStatement("e2", "Aiko")
	summary := payroll.SummaryResponse{
		Year:         2024,
		Month:        3,
		Employees:    []payroll.EmployeeSummaryResponse{a, b},
		CompanyTotal: decimal.NewFromInt(265000),
		CompanyHours: decimal.NewFromInt(17),
	}

	out, err := Workbook(summary, []payroll.EmployeeSummaryResponse{a, b})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Aiko", "Aiko (2)"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Payroll 2024-03", title)

	name, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Aiko", name)

	date, err := f.GetCellValue("Aiko (2)", "A3")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", date)
}

func TestSheetNameSanitizes(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "a_b_c", sheetName("a/b:c", "x", used))
	assert.Equal(t, "x", sheetName("  ", "x", used))
	long := sheetName("abcdefghijklmnopqrstuvwxyz0123456789", "x", used)
	assert.Len(t, long, 31)
}
