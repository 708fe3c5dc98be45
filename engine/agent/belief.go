package agent

import (
	"fmt"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/hanabi/engine"
)

// Belief is what the owner of a tile can deduce about it.
type Belief struct {
	ID uuid.UUID

	possible IdentitySet

	// PlayStrength accumulates play signals. It never decreases.
	PlayStrength int
	// InfoAge is the number of recorded turns since the tile last received
	// info, or -1 if it never has.
	InfoAge int
	// FirstSeen is the turn at which the tile was first tracked. Infos from
	// earlier turns say nothing about it.
	FirstSeen int
	// Reasons logs every narrowing that shrank the possible set.
	Reasons []string
}

func newBelief(id uuid.UUID, suits []engine.Suit) *Belief {
	return &Belief{ID: id, possible: FullSet(suits), InfoAge: -1}
}

// Possible returns the identities the tile could still be.
func (b *Belief) Possible() IdentitySet { return b.possible }

// narrow replaces the possible set with next. An empty result is refused.
func (b *Belief) narrow(op string, next IdentitySet, reason string) error {
	if next.Empty() {
		return &ContradictionError{Tile: b.ID, Op: op, Before: b.possible}
	}
	if next != b.possible {
		b.possible = next
		b.Reasons = append(b.Reasons, fmt.Sprintf("%s - %s - %s", op, reason, next))
	}
	return nil
}

// MustBeSuit keeps only identities of suit s.
func (b *Belief) MustBeSuit(s engine.Suit, reason string) error {
	return b.narrow(fmt.Sprintf("MustBe(%s)", s), b.possible&SuitSet(s), reason)
}

// MustBeNumber keeps only identities numbered n.
func (b *Belief) MustBeNumber(n uint8, reason string) error {
	return b.narrow(fmt.Sprintf("MustBe(%d)", n), b.possible&NumberSet(n), reason)
}

// MustBe pins the tile to id.
func (b *Belief) MustBe(id engine.Identity, reason string) error {
	return b.narrow(fmt.Sprintf("MustBe(%s)", id), b.possible&SetOf(id), reason)
}

// CannotBeSuit removes every identity of suit s.
func (b *Belief) CannotBeSuit(s engine.Suit, reason string) error {
	return b.narrow(fmt.Sprintf("CannotBe(%s)", s), b.possible&^SuitSet(s), reason)
}

// CannotBeNumber removes every identity numbered n.
func (b *Belief) CannotBeNumber(n uint8, reason string) error {
	return b.narrow(fmt.Sprintf("CannotBe(%d)", n), b.possible&^NumberSet(n), reason)
}

// CannotBe removes id.
func (b *Belief) CannotBe(id engine.Identity, reason string) error {
	return b.narrow(fmt.Sprintf("CannotBe(%s)", id), b.possible&^SetOf(id), reason)
}

// CannotBeAny removes every identity in ids.
func (b *Belief) CannotBeAny(reason string, ids ...engine.Identity) error {
	for _, id := range ids {
		if err := b.CannotBe(id, reason); err != nil {
			return err
		}
	}
	return nil
}

// CannotBeTiles removes the identity of every observed tile.
func (b *Belief) CannotBeTiles(reason string, tiles ...engine.Tile) error {
	for _, t := range tiles {
		if err := b.CannotBe(t.Identity, reason); err != nil {
			return err
		}
	}
	return nil
}

// GotInfo marks that the tile was just touched by an info.
func (b *Belief) GotInfo() { b.InfoAge = 0 }

// AgeInfo advances the info age by one turn if the tile ever had info.
func (b *Belief) AgeInfo() {
	if b.InfoAge >= 0 {
		b.InfoAge++
	}
}

// IsKnownSuit reports whether every possible identity shares one suit.
func (b *Belief) IsKnownSuit() bool {
	ids := b.possible.Identities()
	return len(ids) > 0 && b.possible&^SuitSet(ids[0].Suit) == 0
}

// IsKnownNumber reports whether every possible identity shares one number.
func (b *Belief) IsKnownNumber() bool {
	ids := b.possible.Identities()
	return len(ids) > 0 && b.possible&^NumberSet(ids[0].Number) == 0
}

// IsPossiblyPlayable reports whether some possible identity plays on next.
func (b *Belief) IsPossiblyPlayable(next engine.Progress) bool {
	return b.possible.Any(next.IsPlayable)
}

// IsDefinitelyPlayable reports whether every possible identity plays on next.
func (b *Belief) IsDefinitelyPlayable(next engine.Progress) bool {
	return b.possible.All(next.IsPlayable)
}

// IsUnplayable reports whether no possible identity plays on next.
func (b *Belief) IsUnplayable(next engine.Progress) bool {
	return !b.IsPossiblyPlayable(next)
}

// IsDead reports whether every possible identity has already been played past.
func (b *Belief) IsDead(next engine.Progress) bool {
	return b.possible.All(next.IsPast)
}

// String renders the belief for debug logs.
func (b *Belief) String() string {
	return fmt.Sprintf("%s strength=%d age=%d possible=%s", b.ID, b.PlayStrength, b.InfoAge, b.possible)
}
