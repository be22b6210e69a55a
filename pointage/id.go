package pointage

import (
	"fmt"
	"math/rand/v2"
)

// NewID generates a record id in the PTG0001..PTG9999 shape the entry
// dialog pre-fills. Uniqueness is the server's problem; the id is just a
// short human-readable code.
func NewID() string {
	return fmt.Sprintf("PTG%04d", rand.IntN(9999)+1)
}
