package engine

import "github.com/google/uuid"

// View is what one seat is allowed to see at a point in the game. Every
// slice is a copy; mutating a View never affects the Game.
type View struct {
	Seat       int
	NumPlayers int
	Suits      []Suit
	MaxTokens  int
	MaxFuses   int

	// OwnHand lists the ids of the viewer's own tiles, oldest first.
	OwnHand []uuid.UUID
	// Hands holds every other seat's tiles, oldest first. Hands[Seat] is nil.
	Hands [][]Tile

	Discard []Tile
	Played  []Tile
	Next    Progress
	Tokens  int
	Fuses   int
	DrawLen int

	Current int
	History []Turn
}

// View builds the snapshot for seat.
func (g *Game) View(seat int) View {
	v := View{
		Seat:       seat,
		NumPlayers: g.Rules.NumPlayers,
		Suits:      g.Rules.Suits(),
		MaxTokens:  g.Rules.MaxTokens,
		MaxFuses:   g.Rules.MaxFuses,
		Hands:      make([][]Tile, g.Rules.NumPlayers),
		Discard:    g.Discarded(),
		Played:     g.Played(),
		Next:       g.next,
		Tokens:     g.tokens,
		Fuses:      g.fuses,
		DrawLen:    len(g.draw),
		Current:    g.current,
		History:    g.History(),
	}
	for p := range g.hands {
		if p == seat {
			v.OwnHand = make([]uuid.UUID, len(g.hands[p]))
			for i, t := range g.hands[p] {
				v.OwnHand[i] = t.ID
			}
			continue
		}
		v.Hands[p] = g.Hand(p)
	}
	return v
}

// Turn returns the number of turns taken so far.
func (v *View) Turn() int { return len(v.History) }

// LastTurn returns the most recent history entry.
func (v *View) LastTurn() (Turn, bool) {
	if len(v.History) == 0 {
		return Turn{}, false
	}
	return v.History[len(v.History)-1], true
}

// NextAt returns the firework progress as it stood when history entry turn
// was taken, by undoing every successful play from that entry on.
func (v *View) NextAt(turn int) Progress {
	p := v.Next
	for _, t := range v.History[min(max(turn, 0), len(v.History)):] {
		if _, ok := t.Action.(Play); ok && t.Success && p[t.Tile.Suit] > MinNumber {
			p[t.Tile.Suit]--
		}
	}
	return p
}

// IsPlayable reports whether id can be played right now.
func (v *View) IsPlayable(id Identity) bool { return v.Next.IsPlayable(id) }

// HandIDs returns the tile ids of seat's hand, oldest first. Works for the
// viewer's own seat too.
func (v *View) HandIDs(seat int) []uuid.UUID {
	if seat == v.Seat {
		return v.OwnHand
	}
	ids := make([]uuid.UUID, len(v.Hands[seat]))
	for i, t := range v.Hands[seat] {
		ids[i] = t.ID
	}
	return ids
}

// Newest returns the most recently drawn tile id of seat's hand.
func (v *View) Newest(seat int) (uuid.UUID, bool) {
	ids := v.HandIDs(seat)
	if len(ids) == 0 {
		return uuid.Nil, false
	}
	return ids[len(ids)-1], true
}

// TryGetTile finds a tile the viewer can see in another seat's hand.
func (v *View) TryGetTile(id uuid.UUID) (Tile, bool) {
	for p, hand := range v.Hands {
		if p == v.Seat {
			continue
		}
		for _, t := range hand {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Tile{}, false
}

// WhoHas returns the seat holding tile id, or -1 when it is in no hand.
func (v *View) WhoHas(id uuid.UUID) int {
	for _, tid := range v.OwnHand {
		if tid == id {
			return v.Seat
		}
	}
	for p, hand := range v.Hands {
		for _, t := range hand {
			if t.ID == id {
				return p
			}
		}
	}
	return -1
}

// InPlayed reports whether tile id has been successfully played.
func (v *View) InPlayed(id uuid.UUID) bool {
	for _, t := range v.Played {
		if t.ID == id {
			return true
		}
	}
	return false
}

// DiscardCount returns how many copies of id sit in the discard pile.
func (v *View) DiscardCount(id Identity) int {
	n := 0
	for _, t := range v.Discard {
		if t.Identity == id {
			n++
		}
	}
	return n
}

// IsDead reports whether id can never score: its firework has moved past it,
// or every copy of some number it depends on has been discarded.
func (v *View) IsDead(id Identity) bool {
	if v.Next.IsPast(id) {
		return true
	}
	for n := v.Next.Next(id.Suit); n < id.Number; n++ {
		lower := Identity{Suit: id.Suit, Number: n}
		if v.DiscardCount(lower) >= lower.Copies() {
			return true
		}
	}
	return false
}

// SeatDistance returns (to - from) mod n.
func SeatDistance(from, to, n int) int {
	return ((to-from)%n + n) % n
}
