package uml

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDGenerator hands out tokens for element ids. Tokens must be unique for the
// lifetime of the generator; the model prefixes them with the owning class id.
type IDGenerator interface {
	Next() string
}

// UUIDGenerator produces random 32-character hex tokens.
type UUIDGenerator struct{}

// Next returns a fresh random token.
func (UUIDGenerator) Next() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SequenceGenerator produces "1", "2", ... so that repeated runs over the same
// input yield byte-identical documents.
type SequenceGenerator struct {
	n int
}

// NewSequenceGenerator returns a generator starting at 1.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

// Next returns the next number in the sequence.
func (g *SequenceGenerator) Next() string {
	g.n++
	return strconv.Itoa(g.n)
}
