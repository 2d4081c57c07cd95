package repository

import "math"

const (
	DefaultPageSize    = 10
	DefaultMaxPageSize = 100
)

// Page selects a zero-based window of a result set.
type Page struct {
	Size   int
	Number int
}

// Normalize replaces a non-positive size with defaultSize and clamps the
// size to maxSize. The number is clamped to zero and to the largest value
// whose offset still fits in an int.
func (p Page) Normalize(defaultSize, maxSize int) Page {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	if p.Number < 0 {
		p.Number = 0
	}
	if limit := math.MaxInt / p.Size; p.Number > limit {
		p.Number = limit
	}
	return p
}

func (p Page) Offset() int {
	return p.Size * p.Number
}
