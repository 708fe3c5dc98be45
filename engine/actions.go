package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Apply validates and applies an action for the current seat, appends the
// resulting Turn to the history and advances to the next seat.
func (g *Game) Apply(a Action) (Turn, error) {
	if err := g.Legal(a); err != nil {
		return Turn{}, err
	}

	turn := Turn{Number: len(g.history), Action: a}
	switch act := a.(type) {
	case Play:
		turn.Tile, turn.Success = g.playTile(act.Player, act.Tile)
	case Discard:
		turn.Tile = g.discardTile(act.Player, act.Tile)
	case GiveInfo:
		turn.Targeted = g.giveInfo(act)
	default:
		return Turn{}, fmt.Errorf("%w: unhandled action %T", ErrIllegalAction, a)
	}

	g.history = append(g.history, turn)
	g.checkEnd(a.Actor())
	g.current = (g.current + 1) % g.Rules.NumPlayers
	return turn, nil
}

// removeFromHand takes tile id out of seat's hand, keeping the remaining order.
func (g *Game) removeFromHand(seat int, id uuid.UUID) Tile {
	idx := g.handIndex(seat, id)
	hand := g.hands[seat]
	t := hand[idx]
	g.hands[seat] = append(hand[:idx:idx], hand[idx+1:]...)
	return t
}

// playTile attempts to add a tile to its firework. A 5 returns a token.
// A misplay blows a fuse and sends the tile to the discard pile.
func (g *Game) playTile(seat int, id uuid.UUID) (Tile, bool) {
	t := g.removeFromHand(seat, id)
	ok := g.next.IsPlayable(t.Identity)
	if ok {
		g.next[t.Suit]++
		g.played = append(g.played, t)
		if t.Number == MaxNumber && g.tokens < g.Rules.MaxTokens {
			g.tokens++
		}
	} else {
		g.fuses++
		g.discard = append(g.discard, t)
	}
	g.drawTo(seat)
	return t, ok
}

// discardTile moves a tile to the discard pile and regains a token.
func (g *Game) discardTile(seat int, id uuid.UUID) Tile {
	t := g.removeFromHand(seat, id)
	g.discard = append(g.discard, t)
	g.tokens++
	g.drawTo(seat)
	return t
}

// giveInfo spends a token and returns the ids of the touched tiles in hand order.
// Info touching no tile is legal.
func (g *Game) giveInfo(act GiveInfo) []uuid.UUID {
	g.tokens--
	targeted := make([]uuid.UUID, 0, len(g.hands[act.Target]))
	for _, t := range g.hands[act.Target] {
		if act.Matches(t.Identity) {
			targeted = append(targeted, t.ID)
		}
	}
	return targeted
}
