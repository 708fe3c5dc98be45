package engine

import "fmt"

// Legal reports whether a may be applied now. A nil error means legal; any
// other error wraps ErrIllegalAction (or is ErrGameOver).
func (g *Game) Legal(a Action) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if !g.started {
		return fmt.Errorf("%w: game has not been dealt", ErrIllegalAction)
	}
	if a == nil {
		return fmt.Errorf("%w: nil action", ErrIllegalAction)
	}
	if a.Actor() != g.current {
		return fmt.Errorf("%w: seat %d acted on seat %d's turn", ErrIllegalAction, a.Actor(), g.current)
	}

	switch act := a.(type) {
	case Play:
		if g.handIndex(act.Player, act.Tile) < 0 {
			return fmt.Errorf("%w: tile %s is not in seat %d's hand", ErrIllegalAction, act.Tile, act.Player)
		}
	case Discard:
		if g.tokens >= g.Rules.MaxTokens {
			return fmt.Errorf("%w: cannot discard with %d tokens", ErrIllegalAction, g.tokens)
		}
		if g.handIndex(act.Player, act.Tile) < 0 {
			return fmt.Errorf("%w: tile %s is not in seat %d's hand", ErrIllegalAction, act.Tile, act.Player)
		}
	case GiveInfo:
		if g.tokens <= 0 {
			return fmt.Errorf("%w: cannot give info with 0 tokens", ErrIllegalAction)
		}
		if act.Target == act.Player {
			return fmt.Errorf("%w: seat %d cannot give info to itself", ErrIllegalAction, act.Player)
		}
		if act.Target < 0 || act.Target >= g.Rules.NumPlayers {
			return fmt.Errorf("%w: no seat %d", ErrIllegalAction, act.Target)
		}
		switch act.Info {
		case InfoSuit:
			if int(act.Value) >= g.Rules.NumSuits {
				return fmt.Errorf("%w: suit %d not in play", ErrIllegalAction, act.Value)
			}
		case InfoNumber:
			if act.Value < MinNumber || act.Value > MaxNumber {
				return fmt.Errorf("%w: number %d out of range", ErrIllegalAction, act.Value)
			}
		default:
			return fmt.Errorf("%w: unknown info kind %d", ErrIllegalAction, act.Info)
		}
	default:
		return fmt.Errorf("%w: unknown action %T", ErrIllegalAction, a)
	}
	return nil
}

// LegalActions lists every legal action for the current seat: plays and
// discards in hand order, then suit and number info for every other seat.
func (g *Game) LegalActions() []Action {
	if g.IsOver() {
		return nil
	}
	seat := g.current
	var actions []Action
	for _, t := range g.hands[seat] {
		actions = append(actions, Play{Player: seat, Tile: t.ID})
	}
	if g.tokens < g.Rules.MaxTokens {
		for _, t := range g.hands[seat] {
			actions = append(actions, Discard{Player: seat, Tile: t.ID})
		}
	}
	if g.tokens > 0 {
		for p := 0; p < g.Rules.NumPlayers; p++ {
			if p == seat {
				continue
			}
			for _, s := range g.Rules.Suits() {
				actions = append(actions, SuitInfo(seat, p, s))
			}
			for n := uint8(MinNumber); n <= MaxNumber; n++ {
				actions = append(actions, NumberInfo(seat, p, n))
			}
		}
	}
	return actions
}
