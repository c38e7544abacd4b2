package engine

import "golang.org/x/exp/constraints"

// Small ordered helpers. The go 1.21 builtins cover min/max for two
// values; clamp still has to be written out.
func min2[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func max2[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return max2(lo, min2(v, hi))
}
