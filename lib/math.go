package lib

import (
	"golang.org/x/exp/constraints"
)

// Works only for positive arguments.
func DivRoundUp(n, d int) int {
	return (n + (d - 1)) / d
}

// FloorDiv divides rounding towards negative infinity. d must be positive.
func FloorDiv[T constraints.Signed](n, d T) T {
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}

func Min[T constraints.Ordered](i0, i1 T) T {
	if i0 <= i1 {
		return i0
	}
	return i1
}

func Max[T constraints.Ordered](i0, i1 T) T {
	if i0 >= i1 {
		return i0
	}
	return i1
}

func Clamp[T constraints.Ordered](v, min, max T) T {
	if v <= min {
		return min
	}
	if v >= max {
		return max
	}
	return v
}

func InRange[T constraints.Ordered](v, min, max T) bool {
	if v < min || v >= max {
		return false
	}
	return true
}
