package agent

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNoCandidates means the scorer produced nothing at all. The fallback
// discard or info should always be available, so this is a logic error.
var ErrNoCandidates = errors.New("no action candidates")

// ContradictionError reports a narrowing that would have left a tile with no
// possible identity. The game state or the caller is inconsistent and the
// game cannot continue.
type ContradictionError struct {
	Tile   uuid.UUID
	Op     string
	Before IdentitySet
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("contradiction on tile %s: %s would empty %s", e.Tile, e.Op, e.Before)
}
