package agent

import (
	"math/bits"
	"strings"

	engine "github.com/jason-s-yu/hanabi/engine"
)

// IdentitySet is a set of tile identities packed into one bit per
// (suit, number). Bit index = suit*MaxNumber + number-1.
type IdentitySet uint32

func bitOf(id engine.Identity) IdentitySet {
	return 1 << (uint(id.Suit)*engine.MaxNumber + uint(id.Number) - 1)
}

// SetOf returns the set holding exactly ids.
func SetOf(ids ...engine.Identity) IdentitySet {
	var s IdentitySet
	for _, id := range ids {
		if id.Valid() {
			s |= bitOf(id)
		}
	}
	return s
}

// FullSet returns every identity of the given suits.
func FullSet(suits []engine.Suit) IdentitySet {
	var s IdentitySet
	for _, suit := range suits {
		s |= SuitSet(suit)
	}
	return s
}

// SuitSet returns all five numbers of suit.
func SuitSet(suit engine.Suit) IdentitySet {
	if !suit.Valid() {
		return 0
	}
	return IdentitySet(1<<engine.MaxNumber-1) << (uint(suit) * engine.MaxNumber)
}

// NumberSet returns number n in every suit.
func NumberSet(n uint8) IdentitySet {
	var s IdentitySet
	if n < engine.MinNumber || n > engine.MaxNumber {
		return 0
	}
	for suit := engine.Suit(0); suit < engine.MaxSuits; suit++ {
		s |= bitOf(engine.Identity{Suit: suit, Number: n})
	}
	return s
}

// Has reports whether id is a member.
func (s IdentitySet) Has(id engine.Identity) bool { return id.Valid() && s&bitOf(id) != 0 }

// Len returns the number of members.
func (s IdentitySet) Len() int { return bits.OnesCount32(uint32(s)) }

// Empty reports whether the set has no members.
func (s IdentitySet) Empty() bool { return s == 0 }

// Identities lists the members ordered by suit then number.
func (s IdentitySet) Identities() []engine.Identity {
	out := make([]engine.Identity, 0, s.Len())
	for rest := uint32(s); rest != 0; rest &= rest - 1 {
		i := bits.TrailingZeros32(rest)
		out = append(out, engine.Identity{
			Suit:   engine.Suit(i / engine.MaxNumber),
			Number: uint8(i%engine.MaxNumber) + 1,
		})
	}
	return out
}

// All reports whether every member satisfies fn. An empty set returns true.
func (s IdentitySet) All(fn func(engine.Identity) bool) bool {
	for _, id := range s.Identities() {
		if !fn(id) {
			return false
		}
	}
	return true
}

// Any reports whether some member satisfies fn.
func (s IdentitySet) Any(fn func(engine.Identity) bool) bool {
	for _, id := range s.Identities() {
		if fn(id) {
			return true
		}
	}
	return false
}

// String lists the members in braces.
func (s IdentitySet) String() string {
	ids := s.Identities()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
