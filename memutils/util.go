package memutils

import (
	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint
}

func CheckPow2[T Number](number T, name string) error {
	if number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the next multiple of alignment. Alignment does not need to be a power
// of two, and an alignment of 0 leaves the value untouched.
func AlignUp(value int, alignment uint) int {
	if alignment == 0 {
		return value
	}
	return int(alignment) * ((value + int(alignment) - 1) / int(alignment))
}
