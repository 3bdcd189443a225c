package util

// Pair is one element of a cross product.
type Pair[A, B any] struct {
	First  A
	Second B
}

// CrossProduct returns all ordered pairs (a, b) for a in as, b in bs, in
// A-major, B-minor order. Empty inputs yield an empty (non-nil) result.
func CrossProduct[A, B any](as []A, bs []B) []Pair[A, B] {
	out := make([]Pair[A, B], 0, len(as)*len(bs))
	for _, a := range as {
		for _, b := range bs {
			out = append(out, Pair[A, B]{First: a, Second: b})
		}
	}
	return out
}
