package testutil

import "github.com/roach88/sortspec/internal/reactive"

var _ reactive.IDGenerator = FixedIDGenerator("")

// FixedIDGenerator gives every computation the same ID, so logs of a
// scenario are byte-identical across runs. An empty value generates
// "test-computation".
type FixedIDGenerator string

// Generate returns the fixed ID.
func (g FixedIDGenerator) Generate() string {
	if g == "" {
		return "test-computation"
	}
	return string(g)
}
