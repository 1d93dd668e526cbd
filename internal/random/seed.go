// Package random provides seed generation helpers.
//
// It uses crypto/rand to pick fresh seeds for resets that should not replay
// a previous layout, while the automaton itself stays on a seeded PRNG.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a non-zero random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		// Zero means "use the configured seed" throughout the program.
		if seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1); seed != 0 {
			return seed, nil
		}
	}
}
