package order

import (
	"errors"
	"fmt"
	"strings"

	"starmap/internal/pkg/errs"
	"starmap/internal/pkg/guard"
)

// ErrRecordIsNotConstructed is returned when a Record was not built by NewRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is a validated poster order. It is immutable: all fields are set by
// NewRecord and exposed through getters only.
//
// Record follows these invariants:
//   - ID is positive and stable across webhook redeliveries
//   - Location is a non-empty free-text address
//   - Date, Time and Color are constructed, valid values
//
// Name, Email and Message may be empty.
type Record struct {
	id       int64
	name     string
	email    string
	date     Date
	time     Time
	location string
	message  string
	color    Color

	guard guard.ConstructorGuard
}

// NewRecord validates every field and returns the record, or all validation
// errors joined. A partially valid record is never returned.
//
// Example:
//
//	d, t, _ := order.ParseDateTime("04-07-2025 23:55")
//	rec, err := order.NewRecord(1001, "#1001", "jan@example.com", d, t, "Amsterdam", "test", order.Taupe)
func NewRecord(
	id int64,
	name, email string,
	date Date,
	tm Time,
	location, message string,
	color Color,
) (*Record, error) {
	r := &Record{
		name:    name,
		email:   email,
		message: message,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setDate(date),
		r.setTime(tm),
		r.setLocation(location),
		r.setColor(color),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate reports whether the record was built by NewRecord.
func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// ID returns the shop's order identifier.
func (r *Record) ID() int64 {
	return r.id
}

// Name returns the human-readable order name, e.g. "#1001".
func (r *Record) Name() string {
	return r.name
}

// Email returns the customer email.
func (r *Record) Email() string {
	return r.email
}

// Date returns the chart date.
func (r *Record) Date() Date {
	return r.date
}

// Time returns the chart time.
func (r *Record) Time() Time {
	return r.time
}

// Location returns the free-text address used for geocoding and printing.
func (r *Record) Location() string {
	return r.location
}

// Message returns the personalization message printed on the poster.
func (r *Record) Message() string {
	return r.message
}

// Color returns the poster color.
func (r *Record) Color() Color {
	return r.color
}

func (r *Record) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	r.id = id
	return nil
}

func (r *Record) setDate(d Date) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.date = d
	return nil
}

func (r *Record) setTime(t Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	r.time = t
	return nil
}

func (r *Record) setLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}
	r.location = location
	return nil
}

func (r *Record) setColor(c Color) error {
	if err := c.Validate(); err != nil {
		return err
	}
	r.color = c
	return nil
}
