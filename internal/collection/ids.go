package collection

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDProvider hands out identifiers for new items and romaneios.
type IDProvider interface {
	NewID() string
}

// UUIDProvider generates random UUIDs.
type UUIDProvider struct{}

// NewID returns a new random UUID string.
func (UUIDProvider) NewID() string {
	return uuid.New().String()
}

// SequenceProvider generates predictable IDs ("<prefix>1", "<prefix>2", ...).
// It is safe for concurrent use.
type SequenceProvider struct {
	Prefix string
	next   atomic.Int64
}

// NewSequenceProvider creates a SequenceProvider starting at 1.
func NewSequenceProvider(prefix string) *SequenceProvider {
	return &SequenceProvider{Prefix: prefix}
}

// NewID returns the next ID in the sequence.
func (p *SequenceProvider) NewID() string {
	return fmt.Sprintf("%s%d", p.Prefix, p.next.Add(1))
}
