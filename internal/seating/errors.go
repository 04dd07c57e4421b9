// Package seating computes where attendees sit.  Everything in this package
// is a pure function of its inputs: the fill pattern and column labels depend
// only on the row capacity, and Assign depends only on the sorted attendee
// list, the capacity and the row labeler.
package seating

import "errors"

// ErrInvalidCapacity is returned when a row capacity below one is requested.
var ErrInvalidCapacity = errors.New("invalid seats per row")

// ErrInvalidNumeral is returned when a row number falls outside the range the
// numeral formatter supports.
var ErrInvalidNumeral = errors.New("row number out of numeral range")
