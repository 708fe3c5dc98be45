package engine

import (
	"errors"
	"testing"
)

// TestEndOnFuses verifies the third misplay ends the game.
func TestEndOnFuses(t *testing.T) {
	hr := DefaultHouseRules()
	hr.NumPlayers = 2
	g := stackedGame(t, hr,
		[][]Identity{{id(SuitRed, 4), id(SuitRed, 3)}, {id(SuitBlue, 4), id(SuitBlue, 3)}},
		[]Identity{id(SuitWhite, 4), id(SuitWhite, 3), id(SuitWhite, 2)})

	for i := 0; i < 3; i++ {
		seat := g.CurrentPlayer()
		if _, err := g.Apply(Play{Player: seat, Tile: g.Hand(seat)[0].ID}); err != nil {
			t.Fatalf("Apply %d: %v", i, err)
		}
	}
	if !g.IsOver() || g.EndReason() != EndFuses {
		t.Errorf("EndReason = %v, want Fuses", g.EndReason())
	}
	if _, err := g.Apply(NumberInfo(g.CurrentPlayer(), 0, 1)); !errors.Is(err, ErrGameOver) {
		t.Errorf("err = %v, want ErrGameOver", err)
	}
}

// TestEndOnEmptyDrawPile verifies everyone gets one more turn after the last draw.
func TestEndOnEmptyDrawPile(t *testing.T) {
	hr := DefaultHouseRules()
	hr.NumPlayers = 3
	g := stackedGame(t, hr,
		[][]Identity{{id(SuitRed, 4)}, {id(SuitBlue, 4)}, {id(SuitGreen, 4)}},
		[]Identity{id(SuitWhite, 4)})
	g.tokens = 4

	// Seat 0 discards and takes the last tile.
	if _, err := g.Apply(Discard{Player: 0, Tile: g.Hand(0)[0].ID}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if g.IsOver() {
		t.Fatal("game ended right after the last draw")
	}
	for _, seat := range []int{1, 2} {
		if _, err := g.Apply(NumberInfo(seat, 0, 1)); err != nil {
			t.Fatalf("seat %d: %v", seat, err)
		}
		if g.IsOver() {
			t.Fatalf("game ended after seat %d", seat)
		}
	}
	if _, err := g.Apply(NumberInfo(0, 1, 1)); err != nil {
		t.Fatalf("final turn: %v", err)
	}
	if g.EndReason() != EndEmptyDrawPile {
		t.Errorf("EndReason = %v, want EmptyDrawPile", g.EndReason())
	}
}

// TestEndPerfect verifies completing every firework ends the game at once.
func TestEndPerfect(t *testing.T) {
	hr := DefaultHouseRules()
	hr.NumPlayers = 2
	hr.NumSuits = 1
	g := stackedGame(t, hr,
		[][]Identity{{id(SuitRed, 5)}, {id(SuitRed, 1)}},
		[]Identity{id(SuitRed, 1)})
	g.next[SuitRed] = 5

	if _, err := g.Apply(Play{Player: 0, Tile: g.Hand(0)[0].ID}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if g.EndReason() != EndPerfect {
		t.Errorf("EndReason = %v, want PerfectGame", g.EndReason())
	}
	if g.Score() != hr.MaxScore() {
		t.Errorf("Score = %d, want %d", g.Score(), hr.MaxScore())
	}
}

// TestFusesBeatFinalRound verifies a fuse-out on the final turn reports Fuses.
func TestFusesBeatFinalRound(t *testing.T) {
	hr := DefaultHouseRules()
	hr.NumPlayers = 2
	g := stackedGame(t, hr,
		[][]Identity{{id(SuitRed, 4)}, {id(SuitBlue, 4)}},
		nil)
	g.fuses = 2
	g.finalSeat = 1
	g.current = 1

	if _, err := g.Apply(Play{Player: 1, Tile: g.Hand(1)[0].ID}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if g.EndReason() != EndFuses {
		t.Errorf("EndReason = %v, want Fuses", g.EndReason())
	}
}

// TestEndReasonString verifies the reason names used in transcripts.
func TestEndReasonString(t *testing.T) {
	want := map[EndReason]string{
		NotEnded:         "NotEnded",
		EndFuses:         "Fuses",
		EndEmptyDrawPile: "EmptyDrawPile",
		EndPerfect:       "PerfectGame",
	}
	for r, s := range want {
		if r.String() != s {
			t.Errorf("%d.String() = %q, want %q", r, r.String(), s)
		}
	}
}
