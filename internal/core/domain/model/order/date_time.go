package order

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"starmap/internal/pkg/errs"
	"starmap/internal/pkg/guard"
)

var (
	ErrDateIsNotConstructed = errs.NewValueIsRequiredError("date must be created via NewDate")
	ErrTimeIsNotConstructed = errs.NewValueIsRequiredError("time must be created via NewTime")

	datePattern = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
	timePattern = regexp.MustCompile(`^(\d{1,2})\.(\d{2})\.(\d{2})$`)
)

// Date is a calendar day in the chart renderer's DD.MM.YYYY notation.
type Date struct { //nolint:recvcheck //using for validation
	day, month, year int
	guard            guard.ConstructorGuard
}

// NewDate parses "D.M.YYYY" or "DD.MM.YYYY" and rejects impossible days
// such as 31.02.2025.
func NewDate(s string) (Date, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", fmt.Errorf("%q is not in DD.MM.YYYY form", s))
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", fmt.Errorf("%q is not a calendar day", s))
	}

	return Date{day: day, month: month, year: year, guard: guard.NewConstructorGuard()}, nil
}

func (d Date) Validate() error {
	return d.guard.Validate(ErrDateIsNotConstructed)
}

// String renders the date zero-padded, e.g. "08.12.2025".
func (d Date) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.day, d.month, d.year)
}

// Time is a wall-clock time in the chart renderer's HH.MM.SS notation.
type Time struct { //nolint:recvcheck //using for validation
	hour, minute, second int
	guard                guard.ConstructorGuard
}

// NewTime parses "H.MM.SS" or "HH.MM.SS".
func NewTime(s string) (Time, error) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Time{}, errs.NewValueIsInvalidErrorWithCause("time", fmt.Errorf("%q is not in HH.MM.SS form", s))
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second, _ := strconv.Atoi(m[3])

	if hour > 23 || minute > 59 || second > 59 {
		return Time{}, errs.NewValueIsInvalidErrorWithCause("time", fmt.Errorf("%q is not a time of day", s))
	}

	return Time{hour: hour, minute: minute, second: second, guard: guard.NewConstructorGuard()}, nil
}

func (t Time) Validate() error {
	return t.guard.Validate(ErrTimeIsNotConstructed)
}

// String renders the time zero-padded, e.g. "12.00.00".
func (t Time) String() string {
	return fmt.Sprintf("%02d.%02d.%02d", t.hour, t.minute, t.second)
}

// Display renders hours and minutes for the poster text, e.g. "12:00".
func (t Time) Display() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// ParseDateTime converts the shop's "DD-MM-YYYY HH:MM" field into a Date and
// a Time: the date separator becomes a period, the time separator becomes a
// period and a zero seconds component is appended when the time has none.
//
// Example:
//
//	d, t, _ := ParseDateTime("08-12-2025 12:00")
//	d.String() // "08.12.2025"
//	t.String() // "12.00.00"
func ParseDateTime(raw string) (Date, Time, error) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return Date{}, Time{}, errs.NewValueIsInvalidErrorWithCause(
			"datetime", fmt.Errorf("%q must contain a date and a time", raw))
	}

	dateToken := strings.ReplaceAll(fields[0], "-", ".")
	timeToken := strings.ReplaceAll(fields[1], ":", ".")
	if strings.Count(timeToken, ".") == 1 {
		timeToken += ".00"
	}

	d, dateErr := NewDate(dateToken)
	t, timeErr := NewTime(timeToken)
	if err := errors.Join(dateErr, timeErr); err != nil {
		return Date{}, Time{}, err
	}

	return d, t, nil
}
