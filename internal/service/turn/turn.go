// Package turn issues turn identifiers for an interview session.
package turn

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Generator hands out monotonically increasing turn IDs of the form
// "<sessionId>-turn-<n>", starting at 1.
type Generator struct {
	counter uint64
}

func New() *Generator {
	return &Generator{}
}

// Next returns the next turn ID for sessionId.
func (g *Generator) Next(sessionId string) string {
	n := atomic.AddUint64(&g.counter, 1)
	return fmt.Sprintf("%s-turn-%d", sessionId, n)
}

// Count returns how many IDs have been issued.
func (g *Generator) Count() uint64 {
	return atomic.LoadUint64(&g.counter)
}

// Sequence extracts n from a turn ID produced by Next.
func Sequence(turnId string) (uint64, bool) {
	i := strings.LastIndex(turnId, "-turn-")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(turnId[i+len("-turn-"):], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
