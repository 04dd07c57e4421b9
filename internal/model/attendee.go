package model

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrEmptyIdentifier is returned by ParseIdentifier for blank input.
var ErrEmptyIdentifier = errors.New("empty identifier")

// Identifier is the sort key of an attendee.  Spreadsheets hand us text, so
// the raw value is kept and, when it parses as a number, a numeric view is
// used for ordering.  Numeric identifiers sort before textual ones.
type Identifier struct {
	Raw     string  // trimmed cell text
	num     float64 // numeric value when numeric is true
	numeric bool    // Raw parsed as a number
}

// ParseIdentifier builds an Identifier from a cell value.
func ParseIdentifier(s string) (Identifier, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Identifier{}, ErrEmptyIdentifier
	}
	id := Identifier{Raw: raw}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		id.num = f
		id.numeric = true
	}
	return id, nil
}

// Numeric reports whether the identifier is ordered by its numeric value.
func (id Identifier) Numeric() bool { return id.numeric }

// Compare returns -1, 0 or +1 depending on whether id sorts before, equal to
// or after other.
func (id Identifier) Compare(other Identifier) int {
	switch {
	case id.numeric && other.numeric:
		switch {
		case id.num < other.num:
			return -1
		case id.num > other.num:
			return 1
		}
		return 0
	case id.numeric:
		return -1
	case other.numeric:
		return 1
	}
	return strings.Compare(id.Raw, other.Raw)
}

func (id Identifier) String() string { return id.Raw }

// MarshalText lets identifiers appear as plain strings in JSON payloads.
func (id Identifier) MarshalText() ([]byte, error) { return []byte(id.Raw), nil }

// Attendee is one row of the uploaded attendee list.  Name is kept verbatim:
// a blank or missing-value name still occupies a seat and is only replaced by
// a placeholder when the chart is rendered.
type Attendee struct {
	ID   Identifier `json:"id"`
	Name string     `json:"name"`
}

// SortAttendees orders attendees ascending by identifier.  The sort is
// stable, so duplicate identifiers keep their input order.
func SortAttendees(as []Attendee) {
	sort.SliceStable(as, func(i, j int) bool { return as[i].ID.Compare(as[j].ID) < 0 })
}
