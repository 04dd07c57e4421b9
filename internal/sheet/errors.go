// Package sheet reads attendee lists from spreadsheets and renders seating
// charts into styled xlsx workbooks.
package sheet

import "errors"

// ErrInputRead is returned when an attendee list cannot be read: the file is
// not a spreadsheet, a required column is missing or an identifier is blank.
var ErrInputRead = errors.New("cannot read attendee list")
