package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// SessionID identifies this painting session on the LAN and in export metadata.
var SessionID = uuid.NewString()

// Revision counts changes to a committed surface: commits, resets and resizes.
// It is read from the share goroutines, so it is atomic even though the canvas
// itself is single-threaded.
type Revision struct {
	n atomic.Uint64
}

func (r *Revision) Tick() uint64 {
	return r.n.Add(1)
}

func (r *Revision) Load() uint64 {
	return r.n.Load()
}
