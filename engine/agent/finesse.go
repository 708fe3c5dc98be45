package agent

import (
	"github.com/google/uuid"
	engine "github.com/jason-s-yu/hanabi/engine"
)

// Finesse is a suspected two-tile chain: an info touched InfoTile, and the
// giver expects Holder to blind-play TargetTile first.
type Finesse struct {
	InfoTile   uuid.UUID
	TargetTile uuid.UUID
	InfoSide   IdentitySet
	TargetSide IdentitySet

	TurnGiven int
	Giver     int
	Holder    int
	// ExpectedTurn is the turn on which Holder gets its first chance to act.
	ExpectedTurn int

	Confirmed bool
}

// NewFinesse fills in the expected turn from the seat distance.
func NewFinesse(info, target uuid.UUID, infoSide, targetSide IdentitySet, turn, giver, holder, players int) Finesse {
	return Finesse{
		InfoTile:     info,
		TargetTile:   target,
		InfoSide:     infoSide,
		TargetSide:   targetSide,
		TurnGiven:    turn,
		Giver:        giver,
		Holder:       holder,
		ExpectedTurn: turn + engine.SeatDistance(giver, holder, players),
	}
}

// IsDead reports whether both sides have been played past.
func (f *Finesse) IsDead(next engine.Progress) bool {
	return f.InfoSide.All(next.IsPast) && f.TargetSide.All(next.IsPast)
}

// Tracker holds the active finesse records of one agent, in creation order.
type Tracker struct {
	records []*Finesse
}

// Add stores f unless a record for the same tile pair already exists.
func (t *Tracker) Add(f Finesse) bool {
	for _, r := range t.records {
		if r.InfoTile == f.InfoTile && r.TargetTile == f.TargetTile {
			return false
		}
	}
	t.records = append(t.records, &f)
	return true
}

// Active returns copies of every record.
func (t *Tracker) Active() []Finesse {
	out := make([]Finesse, len(t.records))
	for i, r := range t.records {
		out[i] = *r
	}
	return out
}

func (t *Tracker) Len() int { return len(t.records) }

// ForInfoTile returns the records whose info side is tile id.
func (t *Tracker) ForInfoTile(id uuid.UUID) []Finesse {
	var out []Finesse
	for _, r := range t.records {
		if r.InfoTile == id {
			out = append(out, *r)
		}
	}
	return out
}

// Maintain confirms records whose target has been played after the expected
// turn, and drops records that are dead or disproven. It returns the newly
// confirmed and the removed records.
func (t *Tracker) Maintain(v *engine.View) (confirmed, removed []Finesse) {
	turn := v.Turn()
	kept := t.records[:0]
	for _, r := range t.records {
		switch {
		case r.IsDead(v.Next):
			removed = append(removed, *r)
			continue
		case turn > r.ExpectedTurn && !r.Confirmed:
			if !v.InPlayed(r.TargetTile) {
				removed = append(removed, *r)
				continue
			}
			r.Confirmed = true
			confirmed = append(confirmed, *r)
		}
		kept = append(kept, r)
	}
	clear(t.records[len(kept):])
	t.records = kept
	return confirmed, removed
}

// PossibleFinesseTargets returns the newest tile of every hand the viewer
// can see, except the giver's, that is playable right now. Hands are visited
// in seat order.
func PossibleFinesseTargets(v *engine.View, giver int) []engine.Tile {
	var out []engine.Tile
	for p, hand := range v.Hands {
		if p == v.Seat || p == giver || len(hand) == 0 {
			continue
		}
		newest := hand[len(hand)-1]
		if v.IsPlayable(newest.Identity) {
			out = append(out, newest)
		}
	}
	return out
}
