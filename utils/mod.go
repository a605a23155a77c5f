package utils

// FindIndex returns the position of the first element equal to item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Remove returns slice without its first occurrence of item, and whether item was found.
// The input slice is modified in place.
func Remove[T comparable](slice []T, item T) ([]T, bool) {
	i := FindIndex(slice, item)
	if i < 0 {
		return slice, false
	}
	return append(slice[:i], slice[i+1:]...), true
}

// ArgMax returns the first element with the strictly greatest score. It panics on an
// empty slice.
func ArgMax[T any](slice []T, score func(T) float64) (T, float64) {
	if len(slice) == 0 {
		panic("ArgMax of empty slice")
	}
	best, bestScore := slice[0], score(slice[0])
	for _, v := range slice[1:] {
		if s := score(v); s > bestScore {
			best, bestScore = v, s
		}
	}
	return best, bestScore
}
