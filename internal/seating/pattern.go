package seating

import "fmt"

// FillPattern returns the order in which the seats of a row of width w are
// taken.  Entry i is the physical position (0 = leftmost) of the i-th
// attendee seated in the row.  Seating starts in the middle, left of centre
// for even widths, and alternates left/right outward until both sides are
// used up.
func FillPattern(w int) ([]int, error) {
	if w < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, w)
	}
	pattern := make([]int, 0, w)
	var left, right int
	if w%2 == 0 {
		left, right = w/2-1, w/2
	} else {
		center := w / 2
		pattern = append(pattern, center)
		left, right = center-1, center+1
	}
	// the toggle flips every pass, even when the current side is exhausted
	takeLeft := true
	for left >= 0 || right < w {
		if takeLeft && left >= 0 {
			pattern = append(pattern, left)
			left--
		} else if !takeLeft && right < w {
			pattern = append(pattern, right)
			right++
		}
		takeLeft = !takeLeft
	}
	return pattern, nil
}
