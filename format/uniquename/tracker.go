package uniquename

import "fmt"

// MaxSuffix is the highest numeric suffix tried before a colliding name is issued anyway.
const MaxSuffix = 100000

// Tracker hands out names that are unique within one generated build.
type Tracker struct {
	issued     map[string]bool
	collisions int
}

// NewTracker ...
func NewTracker() *Tracker {
	return &Tracker{issued: map[string]bool{}}
}

// EnsureUnique returns candidate when it was not issued yet, otherwise the first free
// "candidate.N" with 1 <= N <= MaxSuffix. If every suffix is taken the last one is issued.
func (t *Tracker) EnsureUnique(candidate string) string {
	name := candidate
	for suffix := 1; t.issued[name] && suffix <= MaxSuffix; suffix++ {
		name = fmt.Sprintf("%s.%d", candidate, suffix)
	}

	if name != candidate {
		t.collisions++
	}
	t.issued[name] = true

	return name
}

// Collisions returns how many issued names differ from their candidate.
func (t *Tracker) Collisions() int {
	return t.collisions
}
