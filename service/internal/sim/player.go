// internal/sim/player.go
package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/hanabi/engine"
	"github.com/jason-s-yu/hanabi/engine/agent"
)

// Player is one seat at the table. The runner calls Update on every seat each
// turn before asking the acting seat for its action.
type Player interface {
	Seat() int
	Update(v engine.View) error
	TakeTurn() (engine.Action, error)
}

// BotFactory builds the player for a seat.
type BotFactory func(seat int, log logrus.FieldLogger) Player

// Bot kinds accepted by NewBotFactory.
const (
	BotAgent     = "agent"
	BotFirstTile = "first"
)

// NewBotFactory returns the factory for kind.
func NewBotFactory(kind string, opts agent.Options) (BotFactory, error) {
	switch kind {
	case BotAgent, "":
		return func(seat int, log logrus.FieldLogger) Player {
			return agent.New(seat, opts, log)
		}, nil
	case BotFirstTile:
		return func(seat int, _ logrus.FieldLogger) Player {
			return NewFirstTilePlayer(seat)
		}, nil
	default:
		return nil, fmt.Errorf("unknown bot %q", kind)
	}
}

// FirstTilePlayer always plays its oldest tile. It is the baseline every
// real bot should beat.
type FirstTilePlayer struct {
	seat int
	hand []uuid.UUID
}

// NewFirstTilePlayer returns a baseline player for seat.
func NewFirstTilePlayer(seat int) *FirstTilePlayer { return &FirstTilePlayer{seat: seat} }

func (p *FirstTilePlayer) Seat() int { return p.seat }

func (p *FirstTilePlayer) Update(v engine.View) error {
	if v.Seat != p.seat {
		return fmt.Errorf("update: view is for seat %d, player is seat %d", v.Seat, p.seat)
	}
	p.hand = v.OwnHand
	return nil
}

func (p *FirstTilePlayer) TakeTurn() (engine.Action, error) {
	if len(p.hand) == 0 {
		return nil, fmt.Errorf("seat %d: empty hand", p.seat)
	}
	return engine.Play{Player: p.seat, Tile: p.hand[0]}, nil
}
