package jalali

import (
	"strconv"
	"strings"
)

// ParseParts builds a Date from separately entered year, month and day
// fields, as submitted by forms, and validates it. Non-numeric parts are
// reported as an InvalidDateError like any other impossible date.
func ParseParts(year, month, day string) (Date, error) {
	y, errY := strconv.Atoi(strings.TrimSpace(year))
	m, errM := strconv.Atoi(strings.TrimSpace(month))
	d, errD := strconv.Atoi(strings.TrimSpace(day))
	date := Date{Year: y, Month: m, Day: d}
	switch {
	case errY != nil:
		return Date{}, &InvalidDateError{Year: y, Month: m, Day: d, Reason: "year is not a number"}
	case errM != nil:
		return Date{}, &InvalidDateError{Year: y, Month: m, Day: d, Reason: "month is not a number"}
	case errD != nil:
		return Date{}, &InvalidDateError{Year: y, Month: m, Day: d, Reason: "day is not a number"}
	}
	if err := date.Validate(); err != nil {
		return Date{}, err
	}
	return date, nil
}
