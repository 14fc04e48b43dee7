package period

import (
	"fmt"
	"time"
)

// HalfMonthPeriod is a shift submission window: part 1 covers days 1-15, part 2 covers day 16 to
// the end of the month.
type HalfMonthPeriod struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Part  int `json:"part"`
}

// HalfMonthOf returns the half-month period containing t.
func HalfMonthOf(t time.Time) HalfMonthPeriod {
	part := 1
	if t.Day() > 15 {
		part = 2
	}
	return HalfMonthPeriod{Year: t.Year(), Month: int(t.Month()), Part: part}
}

func (p HalfMonthPeriod) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	if p.Part != 1 && p.Part != 2 {
		return ErrInvalidPart
	}
	return nil
}

// Dates returns the dates of the period in ascending order.
func (p HalfMonthPeriod) Dates() ([]string, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	startDay, endDay := 1, 15
	if p.Part == 2 {
		startDay, endDay = 16, DaysIn(p.Year, p.Month)
	}
	first := time.Date(p.Year, time.Month(p.Month), startDay, 0, 0, 0, 0, time.UTC)
	return consecutive(first, endDay-startDay+1), nil
}

// Next returns the following half-month period.
func (p HalfMonthPeriod) Next() HalfMonthPeriod {
	if p.Part == 1 {
		return HalfMonthPeriod{Year: p.Year, Month: p.Month, Part: 2}
	}
	if p.Month == 12 {
		return HalfMonthPeriod{Year: p.Year + 1, Month: 1, Part: 1}
	}
	return HalfMonthPeriod{Year: p.Year, Month: p.Month + 1, Part: 1}
}

// Prev returns the preceding half-month period.
func (p HalfMonthPeriod) Prev() HalfMonthPeriod {
	if p.Part == 2 {
		return HalfMonthPeriod{Year: p.Year, Month: p.Month, Part: 1}
	}
	if p.Month == 1 {
		return HalfMonthPeriod{Year: p.Year - 1, Month: 12, Part: 2}
	}
	return HalfMonthPeriod{Year: p.Year, Month: p.Month - 1, Part: 2}
}

func (p HalfMonthPeriod) String() string {
	return fmt.Sprintf("%04d-%02d/%d", p.Year, p.Month, p.Part)
}
