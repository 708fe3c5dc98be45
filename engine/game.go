// Package engine implements the Hanabi game rules.
//
// The engine owns the authoritative game: the shuffled draw pile, every hand,
// the discard and played piles, tokens, fuses and the turn history. Players
// never touch a Game directly; they receive a View built for their seat.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	MinPlayers = 2
	MaxPlayers = 5
)

var (
	// ErrGameOver is returned when an action is applied to a finished game.
	ErrGameOver = errors.New("game is already over")
	// ErrIllegalAction wraps every rule violation reported by Legal and Apply.
	ErrIllegalAction = errors.New("illegal action")
)

// Game holds the complete state of one Hanabi game.
type Game struct {
	ID    uuid.UUID
	Rules HouseRules

	draw    []Tile // draw[0] is the top of the pile
	discard []Tile
	played  []Tile
	hands   [][]Tile // oldest tile first, newest last

	next    Progress
	tokens  int
	fuses   int
	current int
	history []Turn

	// finalSeat is the seat that emptied the draw pile, or -1 until then.
	// The game ends after that seat acts once more.
	finalSeat int
	end       EndReason
	started   bool

	rng uint64
}

// ---------------------------------------------------------------------------
// xorshift64 RNG
// ---------------------------------------------------------------------------

func (g *Game) nextRand() uint64 {
	x := g.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.rng = x
	return x
}

// randN returns a random number in [0, n).
func (g *Game) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// rngReader exposes the game RNG as an io.Reader so tile ids can be derived
// from the seed.
type rngReader struct{ g *Game }

func (r rngReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.g.nextRand()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

func (g *Game) newID() (uuid.UUID, error) {
	return uuid.NewRandomFromReader(rngReader{g})
}

// ---------------------------------------------------------------------------
// NewGame and Deal
// ---------------------------------------------------------------------------

// NewGame builds the deck for the given rules. The deck is not yet shuffled
// or dealt. The same seed always produces the same game, tile ids included.
func NewGame(seed uint64, rules HouseRules) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	g := &Game{
		Rules:     rules,
		next:      NewProgress(),
		tokens:    rules.MaxTokens,
		finalSeat: -1,
		rng:       seed,
	}
	if g.rng == 0 {
		g.rng = 1 // xorshift can't start at 0
	}

	id, err := g.newID()
	if err != nil {
		return nil, fmt.Errorf("new game id: %w", err)
	}
	g.ID = id

	g.draw = make([]Tile, 0, rules.DeckSize())
	for _, s := range rules.Suits() {
		for _, n := range DeckNumbers {
			tid, err := g.newID()
			if err != nil {
				return nil, fmt.Errorf("new tile id: %w", err)
			}
			g.draw = append(g.draw, Tile{ID: tid, Identity: Identity{Suit: s, Number: n}})
		}
	}
	// Suits beyond NumSuits can never be played; mark them finished so they
	// never count as playable.
	for s := rules.NumSuits; s < MaxSuits; s++ {
		g.next[s] = MaxNumber + 1
	}
	g.hands = make([][]Tile, rules.NumPlayers)
	return g, nil
}

// Deal shuffles the deck and deals every player their opening hand.
func (g *Game) Deal() {
	// Fisher-Yates shuffle.
	for i := len(g.draw) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.draw[i], g.draw[j] = g.draw[j], g.draw[i]
	}

	// Deal one tile to each player in turn until hands are full.
	for c := 0; c < g.Rules.handSize(); c++ {
		for p := range g.hands {
			g.drawTo(p)
		}
	}
	g.current = 0
	g.started = true
}

// drawTo moves the top of the draw pile to the newest slot of a hand.
// Does nothing when the draw pile is empty.
func (g *Game) drawTo(seat int) {
	if len(g.draw) == 0 {
		return
	}
	g.hands[seat] = append(g.hands[seat], g.draw[0])
	g.draw = g.draw[1:]
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// CurrentPlayer returns the seat that must act next.
func (g *Game) CurrentPlayer() int { return g.current }

// NumPlayers returns the number of seats.
func (g *Game) NumPlayers() int { return g.Rules.NumPlayers }

// Tokens returns the number of info tokens available.
func (g *Game) Tokens() int { return g.tokens }

// Fuses returns the number of fuses already blown.
func (g *Game) Fuses() int { return g.fuses }

// DrawLen returns the number of tiles left in the draw pile.
func (g *Game) DrawLen() int { return len(g.draw) }

// Progress returns the next needed number of every suit.
func (g *Game) Progress() Progress { return g.next }

// TurnNumber returns the number of turns taken so far.
func (g *Game) TurnNumber() int { return len(g.history) }

// History returns a copy of the turn history.
func (g *Game) History() []Turn {
	out := make([]Turn, len(g.history))
	copy(out, g.history)
	return out
}

// Hand returns a copy of the tiles held by seat, oldest first.
func (g *Game) Hand(seat int) []Tile {
	out := make([]Tile, len(g.hands[seat]))
	copy(out, g.hands[seat])
	return out
}

// Discarded returns a copy of the discard pile in discard order.
func (g *Game) Discarded() []Tile { return append([]Tile(nil), g.discard...) }

// Played returns a copy of the successfully played tiles in play order.
func (g *Game) Played() []Tile { return append([]Tile(nil), g.played...) }

// handIndex returns the position of tile id in seat's hand, or -1.
func (g *Game) handIndex(seat int, id uuid.UUID) int {
	for i, t := range g.hands[seat] {
		if t.ID == id {
			return i
		}
	}
	return -1
}
