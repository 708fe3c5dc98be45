package engine

// EndReason says why a game finished.
type EndReason uint8

const (
	NotEnded EndReason = iota
	EndFuses
	EndEmptyDrawPile
	EndPerfect
)

func (r EndReason) String() string {
	switch r {
	case EndFuses:
		return "Fuses"
	case EndEmptyDrawPile:
		return "EmptyDrawPile"
	case EndPerfect:
		return "PerfectGame"
	default:
		return "NotEnded"
	}
}

// IsOver reports whether the game has finished.
func (g *Game) IsOver() bool { return g.end != NotEnded }

// EndReason returns why the game finished, or NotEnded.
func (g *Game) EndReason() EndReason { return g.end }

// checkEnd updates the end state after seat has acted.
//
// Priority: fuses > perfect game > final round. When the draw pile runs out,
// the seat that emptied it becomes the final seat and the game ends after
// that seat's next action, giving everyone one more turn.
func (g *Game) checkEnd(seat int) {
	switch {
	case g.fuses >= g.Rules.MaxFuses:
		g.end = EndFuses
	case g.isPerfect():
		g.end = EndPerfect
	case g.finalSeat == seat:
		g.end = EndEmptyDrawPile
	case len(g.draw) == 0 && g.finalSeat < 0:
		g.finalSeat = seat
	}
}

func (g *Game) isPerfect() bool {
	for _, s := range g.Rules.Suits() {
		if g.next[s] <= MaxNumber {
			return false
		}
	}
	return true
}
