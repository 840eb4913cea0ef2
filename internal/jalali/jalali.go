// Package jalali converts between the Persian (Jalali) solar calendar and the
// Gregorian calendar used for storage.
//
// Gregorian dates are carried as time.Time values at midnight UTC; every
// function here returns dates in that form and ignores the clock part of its
// inputs.
package jalali

import (
	"fmt"
	"time"

	"github.com/tinoosan/daftar/internal/errs"
)

// Supported Jalali year range, bounded by the intercalation break table.
const (
	MinYear = -61
	MaxYear = 3177
)

// breaks are the Jalali years where the 33-year leap cycle is re-anchored.
var breaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// Date is a Jalali calendar date. It is only an input/output representation;
// persisted dates are always Gregorian.
type Date struct {
	Year  int
	Month int
	Day   int
}

// InvalidDateError reports a Jalali year, month or day that does not exist.
type InvalidDateError struct {
	Year, Month, Day int
	Reason           string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid jalali date %04d/%02d/%02d: %s", e.Year, e.Month, e.Day, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, errs.ErrInvalidDate).
func (e *InvalidDateError) Unwrap() error { return errs.ErrInvalidDate }

// yearInfo describes where a Jalali year sits relative to the Gregorian calendar.
type yearInfo struct {
	// sinceLeap counts years since the last leap year; 0 means the year itself is leap.
	sinceLeap int
	// gy is the Gregorian year in which the Jalali year starts.
	gy int
	// march is the day of March on which Farvardin 1 falls.
	march int
}

func lookup(jy int) (yearInfo, bool) {
	if jy < breaks[0] || jy >= breaks[len(breaks)-1] {
		return yearInfo{}, false
	}
	gy := jy + 621
	leapJ := -14
	jp := breaks[0]
	jump := 0
	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + jump%33/4
		jp = jm
	}
	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}
	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march := 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	sinceLeap := ((n+1)%33 - 1) % 4
	if sinceLeap == -1 {
		sinceLeap = 4
	}
	return yearInfo{sinceLeap: sinceLeap, gy: gy, march: march}, true
}

// nowruz returns the Gregorian date of Farvardin 1 of jy.
func nowruz(jy int) (time.Time, bool) {
	info, ok := lookup(jy)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(info.gy, time.March, info.march, 0, 0, 0, 0, time.UTC), true
}

// IsLeap reports whether jy has 366 days under the Jalali intercalation rule.
// Years outside [MinYear, MaxYear] are never leap.
func IsLeap(jy int) bool {
	info, ok := lookup(jy)
	return ok && info.sinceLeap == 0
}

// MonthLength returns the number of days in the given Jalali month: 31 for
// months 1-6, 30 for 7-11, and 29 or 30 for Esfand depending on IsLeap.
// It returns 0 for a month outside 1..12.
func MonthLength(year, month int) int {
	switch {
	case month >= 1 && month <= 6:
		return 31
	case month >= 7 && month <= 11:
		return 30
	case month == 12:
		if IsLeap(year) {
			return 30
		}
		return 29
	}
	return 0
}

// YearLength returns 365 or 366.
func YearLength(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// Validate checks that d names a real day of the Jalali calendar.
func (d Date) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return &InvalidDateError{Year: d.Year, Month: d.Month, Day: d.Day, Reason: "year out of supported range"}
	}
	if d.Month < 1 || d.Month > 12 {
		return &InvalidDateError{Year: d.Year, Month: d.Month, Day: d.Day, Reason: "month must be between 1 and 12"}
	}
	if n := MonthLength(d.Year, d.Month); d.Day < 1 || d.Day > n {
		return &InvalidDateError{Year: d.Year, Month: d.Month, Day: d.Day, Reason: fmt.Sprintf("day must be between 1 and %d", n)}
	}
	return nil
}

// dayOfYear is the zero-based offset of (month, day) from Farvardin 1.
func dayOfYear(month, day int) int {
	if month <= 6 {
		return (month-1)*31 + day - 1
	}
	return 186 + (month-7)*30 + day - 1
}

// ToGregorian converts a Jalali date to the Gregorian day it names.
func ToGregorian(d Date) (time.Time, error) {
	if err := d.Validate(); err != nil {
		return time.Time{}, err
	}
	start, _ := nowruz(d.Year)
	return start.AddDate(0, 0, dayOfYear(d.Month, d.Day)), nil
}

// FromGregorian converts the calendar day of t to a Jalali date.
func FromGregorian(t time.Time) (Date, error) {
	g := Midnight(t)
	jy := g.Year() - 621
	start, ok := nowruz(jy)
	if !ok || g.Before(start) {
		jy--
		if start, ok = nowruz(jy); !ok {
			return Date{}, &InvalidDateError{Year: jy, Reason: "gregorian date outside supported range"}
		}
	}
	k := int(g.Sub(start).Hours() / 24)
	if k >= YearLength(jy) {
		return Date{}, &InvalidDateError{Year: jy + 1, Reason: "gregorian date outside supported range"}
	}
	if k < 186 {
		return Date{Year: jy, Month: 1 + k/31, Day: k%31 + 1}, nil
	}
	k -= 186
	return Date{Year: jy, Month: 7 + k/30, Day: k%30 + 1}, nil
}

// MonthStart returns the Gregorian date of day 1 of the Jalali month.
func MonthStart(year, month int) (time.Time, error) {
	return ToGregorian(Date{Year: year, Month: month, Day: 1})
}

// MonthEnd returns the Gregorian date of the last day of the Jalali month.
func MonthEnd(year, month int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, &InvalidDateError{Year: year, Month: month, Reason: "month must be between 1 and 12"}
	}
	return ToGregorian(Date{Year: year, Month: month, Day: MonthLength(year, month)})
}

// Midnight truncates t to its calendar day, expressed in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
