package model

import (
	"golang.org/x/exp/constraints"
)

// Series is a time series of values
type Series[T constraints.Ordered] []T

// Last returns the last value of the series given a past index position
func (s Series[T]) Last(position int) T {
	return s[len(s)-1-position]
}

// LastValues returns the last values of the series given a size
func (s Series[T]) LastValues(size int) []T {
	if l := len(s); l > size {
		return s[l-size:]
	}
	return s
}

// Window returns the values in [beg, end) as a series sharing the same backing array.
func (s Series[T]) Window(beg, end int) Series[T] {
	return s[beg:end]
}
