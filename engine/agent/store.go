package agent

import (
	"slices"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/hanabi/engine"
)

// Store maps tile ids to beliefs. Beliefs are created on first lookup and
// live for the rest of the game; the same pointer is returned every time.
type Store struct {
	suits   []engine.Suit
	beliefs map[uuid.UUID]*Belief
	turn    int
}

// NewStore returns an empty store whose beliefs start as every identity of suits.
func NewStore(suits []engine.Suit) *Store {
	return &Store{
		suits:   slices.Clone(suits),
		beliefs: make(map[uuid.UUID]*Belief),
	}
}

// Lookup returns the belief for id, creating it if needed.
func (s *Store) Lookup(id uuid.UUID) *Belief {
	b, ok := s.beliefs[id]
	if !ok {
		b = s.fresh(id)
		s.beliefs[id] = b
	}
	return b
}

// Peek returns the belief for id without creating one. A missing tile gets
// a fresh, unstored belief.
func (s *Store) Peek(id uuid.UUID) *Belief {
	if b, ok := s.beliefs[id]; ok {
		return b
	}
	return s.fresh(id)
}

func (s *Store) fresh(id uuid.UUID) *Belief {
	b := newBelief(id, s.suits)
	b.FirstSeen = s.turn
	return b
}

// SetTurn sets the turn stamped as FirstSeen on beliefs created from now on.
func (s *Store) SetTurn(turn int) { s.turn = turn }

// Len returns the number of tracked tiles.
func (s *Store) Len() int { return len(s.beliefs) }

// AgeAll advances the info age of every tracked tile.
func (s *Store) AgeAll() {
	for _, b := range s.beliefs {
		b.AgeInfo()
	}
}

// Eliminated returns the identities viewpoint can prove are not in its own
// hand: every copy is visible in the discard pile, the played pile or a hand
// other than viewpoint's. Tiles hidden from the view (its own seat's hand)
// are never counted. The result is ordered by suit then number.
func Eliminated(v *engine.View, viewpoint int) []engine.Identity {
	counts := make(map[engine.Identity]int)
	for _, t := range v.Discard {
		counts[t.Identity]++
	}
	for _, t := range v.Played {
		counts[t.Identity]++
	}
	for p, hand := range v.Hands {
		if p == viewpoint {
			continue
		}
		for _, t := range hand {
			counts[t.Identity]++
		}
	}

	var full IdentitySet
	for id, n := range counts {
		if n >= id.Copies() {
			full |= SetOf(id)
		}
	}
	return full.Identities()
}
