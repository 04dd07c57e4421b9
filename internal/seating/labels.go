package seating

import "fmt"

// ColumnLabels returns the seat number printed above each physical position
// of a row of width w, left to right.  Odd numbers descend towards the centre
// on the left half ("05 03 01"), even numbers ascend away from it on the
// right half ("02 04 06").  Odd widths give the extra seat to the left half.
func ColumnLabels(w int) ([]string, error) {
	if w < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, w)
	}
	leftSize := (w + 1) / 2
	rightSize := w / 2
	labels := make([]string, 0, w)
	for n := 2*leftSize - 1; n >= 1; n -= 2 {
		labels = append(labels, fmt.Sprintf("%02d", n))
	}
	for n := 2; n <= 2*rightSize; n += 2 {
		labels = append(labels, fmt.Sprintf("%02d", n))
	}
	return labels, nil
}
