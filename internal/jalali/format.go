package jalali

import (
	"fmt"
	"time"
)

// String renders d as zero-padded YYYY/MM/DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// MonthDay renders d as zero-padded MM/DD.
func (d Date) MonthDay() string {
	return fmt.Sprintf("%02d/%02d", d.Month, d.Day)
}

// FormatDate renders a stored Gregorian date as Jalali YYYY/MM/DD.
// Zero or unsupported dates render as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d, err := FromGregorian(t)
	if err != nil {
		return ""
	}
	return d.String()
}

// FormatMonthDay renders a stored Gregorian date as Jalali MM/DD.
func FormatMonthDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d, err := FromGregorian(t)
	if err != nil {
		return ""
	}
	return d.MonthDay()
}
