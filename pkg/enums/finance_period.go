package enums

import "fmt"

// FinancePeriod selects the reporting window for finance statistics.
type FinancePeriod string

const (
	FinancePeriodDay   FinancePeriod = "day"
	FinancePeriodWeek  FinancePeriod = "week"
	FinancePeriodMonth FinancePeriod = "month"
	FinancePeriodYear  FinancePeriod = "year"
)

var validFinancePeriods = []FinancePeriod{
	FinancePeriodDay,
	FinancePeriodWeek,
	FinancePeriodMonth,
	FinancePeriodYear,
}

// String implements fmt.Stringer.
func (p FinancePeriod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known FinancePeriod.
func (p FinancePeriod) IsValid() bool {
	for _, candidate := range validFinancePeriods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseFinancePeriod converts raw input into a FinancePeriod.
func ParseFinancePeriod(value string) (FinancePeriod, error) {
	for _, candidate := range validFinancePeriods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid finance period %q", value)
}
