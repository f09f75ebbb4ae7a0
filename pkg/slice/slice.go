// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with generic helpers
for in-memory result shaping.
*/
package slice

// Filter returns the elements of input for which keep reports true, in their
// original order. The result is never nil, so an empty match encodes as [].
func Filter[T any](input []T, keep func(T) bool) []T {
	result := make([]T, 0, len(input)/2)
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}

	return result
}
