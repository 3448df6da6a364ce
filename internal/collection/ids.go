package collection

import (
	"sync"
	"time"
)

// idGenerator issues record ids derived from creation time, bumped to stay
// strictly increasing per collection key. Two appends in the same
// millisecond therefore still get distinct ids.
type idGenerator struct {
	mu   sync.Mutex
	last map[string]int64
}

func newIDGenerator() *idGenerator {
	return &idGenerator{last: make(map[string]int64)}
}

// next returns the next id for the key.
func (g *idGenerator) next(key string) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= g.last[key] {
		id = g.last[key] + 1
	}
	g.last[key] = id
	return id
}
