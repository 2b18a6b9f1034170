package room

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const codeLength = 6

// NewCode returns a short base-36 room code drawn from a random UUID.
func NewCode() string {
	id := uuid.New()
	s := new(big.Int).SetBytes(id[:]).Text(36)
	if len(s) < codeLength {
		s = strings.Repeat("0", codeLength-len(s)) + s
	}
	return s[len(s)-codeLength:]
}
