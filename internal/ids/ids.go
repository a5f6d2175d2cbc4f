package ids

import (
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Generator produces opaque unique identifiers.
type Generator interface {
	NewID() string
}

// Rand is the subset of *math/rand.Rand used for uniform choices.
type Rand interface {
	Intn(n int) int
}

// Clock returns the current time.
type Clock func() time.Time

// UUIDGenerator issues random (version 4) UUID strings.
// With a nil reader it uses the uuid package's default entropy source.
type UUIDGenerator struct {
	reader io.Reader
}

func NewUUIDGenerator(r io.Reader) *UUIDGenerator {
	return &UUIDGenerator{reader: r}
}

func (g *UUIDGenerator) NewID() string {
	if g == nil || g.reader == nil {
		return uuid.New().String()
	}
	u, err := uuid.NewRandomFromReader(g.reader)
	if err != nil {
		return uuid.New().String()
	}
	return u.String()
}

// Entropy bundles the random collaborators of one synchronization run.
type Entropy struct {
	IDs  Generator
	Rand Rand
	Now  Clock
}

// Default uses process-wide randomness and the wall clock.
func Default() Entropy {
	return Entropy{
		IDs:  NewUUIDGenerator(nil),
		Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:  time.Now,
	}
}

// Seeded returns a reproducible Entropy: identical seeds give identical ids,
// choices and timestamps.
func Seeded(seed int64) Entropy {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return Entropy{
		IDs:  NewUUIDGenerator(rand.New(rand.NewSource(seed))),
		Rand: rand.New(rand.NewSource(seed + 1)),
		Now:  func() time.Time { return epoch },
	}
}
