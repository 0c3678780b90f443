// Package parallel splits software frames into horizontal bands that are
// rasterized concurrently.
//
// A band owns a contiguous range of rows of the color and depth buffers, so
// workers never touch the same pixel and the result matches a serial draw.
package parallel

// Band is the half-open row range [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int { return b.Y1 - b.Y0 }

// MinBandRows is the smallest band SplitRows produces for a target at
// least that tall.
const MinBandRows = 16

// SplitRows divides height rows into at most n bands of nearly equal size,
// each at least MinBandRows tall unless the whole height is smaller.
func SplitRows(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	n = min(max(n, 1), max(height/MinBandRows, 1))

	bands := make([]Band, n)
	base, extra := height/n, height%n
	y := 0
	for i := range bands {
		rows := base
		if i < extra {
			rows++
		}
		bands[i] = Band{Y0: y, Y1: y + rows}
		y += rows
	}
	return bands
}
