package mathx

import "golang.org/x/exp/constraints"

// AlignUp rounds n up to the next multiple of align. align must be a power of two.
func AlignUp[T constraints.Integer](n, align T) T {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

// IsPow2 reports whether n is a power of two (n > 0).
func IsPow2[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}
