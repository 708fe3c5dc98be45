package engine

import (
	"errors"
	"testing"
)

// TestApplyPlaySuccess verifies a correct play advances the firework and draws.
func TestApplyPlaySuccess(t *testing.T) {
	hr := DefaultHouseRules()
	hr.NumPlayers = 2
	g := stackedGame(t, hr,
		[][]Identity{{id(SuitRed, 1), id(SuitBlue, 3)}, {id(SuitGreen, 2)}},
		[]Identity{id(SuitWhite, 4)})

	r1 := g.Hand(0)[0]
	turn, err := g.Apply(Play{Player: 0, Tile: r1.ID})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !turn.Success {
		t.Error("Success = false, want true")
	}
	if turn.Tile != r1 {
		t.Errorf("Tile = %v, want %v", turn.Tile, r1)
	}
	if got := g.Progress().Next(SuitRed); got != 2 {
		t.Errorf("Red next = %d, want 2", got)
	}
	hand := g.Hand(0)
	if len(hand) != 2 || hand[1].Identity != id(SuitWhite, 4) {
		t.Errorf("hand after draw = %v, want [Blue 3, White 4]", hand)
	}
	if g.CurrentPlayer() != 1 {
		t.Errorf("CurrentPlayer = %d, want 1", g.CurrentPlayer())
	}
	if g.Score() != 1 {
		t.Errorf("Score = %d, want 1", g.Score())
	}
}

// TestApplyMisplay verifies a wrong play blows a fuse and discards the tile.
func TestApplyMisplay(t *testing.T) {
	hr := DefaultHouseRules()
	hr.NumPlayers = 2
	g := stackedGame(t, hr,
		[][]Identity{{id(SuitRed, 3)}, {id(SuitGreen, 2)}},
		[]Identity{id(SuitWhite, 4)})

	turn, err := g.Apply(Play{Player: 0, Tile: g.Hand(0)[0].ID})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if turn.Success {
		t.Error("Success = true, want false")
	}
	if g.Fuses() != 1 {
		t.Errorf("Fuses = %d, want 1", g.Fuses())
	}
	if d := g.Discarded(); len(d) != 1 || d[0].Identity != id(SuitRed, 3) {
		t.Errorf("Discarded = %v, want [Red 3]", d)
	}
}

// TestApplyFiveReturnsToken verifies playing a 5 regains a token, capped at max.
func TestApplyFiveReturnsToken(t *testing.T) {
	hr := DefaultHouseRules()
	hr.NumPlayers = 2
	g := stackedGame(t, hr,
		[][]Identity{{id(SuitRed, 5), id(SuitBlue, 5)}, {id(SuitGreen, 2)}},
		nil)
	g.next[SuitRed] = 5
	g.next[SuitBlue] = 5
	g.tokens = 6

	if _, err := g.Apply(Play{Player: 0, Tile: g.Hand(0)[0].ID}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if g.Tokens() != 7 {
		t.Errorf("Tokens = %d, want 7", g.Tokens())
	}

	g.tokens = hr.MaxTokens
	g.current = 0
	if _, err := g.Apply(Play{Player: 0, Tile: g.Hand(0)[0].ID}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if g.Tokens() != hr.MaxTokens {
		t.Errorf("Tokens = %d, want %d", g.Tokens(), hr.MaxTokens)
	}
}

// TestApplyDiscard verifies a discard regains a token and draws.
func TestApplyDiscard(t *testing.T) {
	hr := DefaultHouseRules()
	hr.NumPlayers = 2
	g := stackedGame(t, hr,
		[][]Identity{{id(SuitRed, 3)}, {id(SuitGreen, 2)}},
		[]Identity{id(SuitWhite, 4)})
	g.tokens = 5

	turn, err := g.Apply(Discard{Player: 0, Tile: g.Hand(0)[0].ID})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if turn.Tile.Identity != id(SuitRed, 3) {
		t.Errorf("Tile = %v, want Red 3", turn.Tile)
	}
	if g.Tokens() != 6 {
		t.Errorf("Tokens = %d, want 6", g.Tokens())
	}
	if g.DrawLen() != 0 {
		t.Errorf("DrawLen = %d, want 0", g.DrawLen())
	}
}

// TestApplyGiveInfo verifies info spends a token and targets matching tiles in hand order.
func TestApplyGiveInfo(t *testing.T) {
	hr := DefaultHouseRules()
	hr.NumPlayers = 2
	g := stackedGame(t, hr,
		[][]Identity{{id(SuitRed, 3)}, {id(SuitGreen, 2), id(SuitRed, 2), id(SuitGreen, 4)}},
		nil)

	turn, err := g.Apply(SuitInfo(0, 1, SuitGreen))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	hand := g.Hand(1)
	if len(turn.Targeted) != 2 || turn.Targeted[0] != hand[0].ID || turn.Targeted[1] != hand[2].ID {
		t.Errorf("Targeted = %v, want ids of tiles 0 and 2", turn.Targeted)
	}
	if g.Tokens() != hr.MaxTokens-1 {
		t.Errorf("Tokens = %d, want %d", g.Tokens(), hr.MaxTokens-1)
	}
}

// TestApplyInfoTouchingNothing verifies an info that touches no tile is legal.
func TestApplyInfoTouchingNothing(t *testing.T) {
	hr := DefaultHouseRules()
	hr.NumPlayers = 2
	g := stackedGame(t, hr, [][]Identity{{id(SuitRed, 3)}, {id(SuitGreen, 2)}}, nil)

	turn, err := g.Apply(NumberInfo(0, 1, 5))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(turn.Targeted) != 0 {
		t.Errorf("Targeted = %v, want empty", turn.Targeted)
	}
}

// TestApplyHistory verifies turns are numbered in order.
func TestApplyHistory(t *testing.T) {
	g := newDealtGame(t, 3, 3)
	for i := 0; i < 3; i++ {
		seat := g.CurrentPlayer()
		if _, err := g.Apply(NumberInfo(seat, (seat+1)%3, 1)); err != nil {
			t.Fatalf("Apply %d: %v", i, err)
		}
	}
	for i, turn := range g.History() {
		if turn.Number != i {
			t.Errorf("History[%d].Number = %d", i, turn.Number)
		}
		if turn.Action.Actor() != i%3 {
			t.Errorf("History[%d] actor = %d, want %d", i, turn.Action.Actor(), i%3)
		}
	}
}

// TestApplyIllegalLeavesState verifies a rejected action changes nothing.
func TestApplyIllegalLeavesState(t *testing.T) {
	g := newDealtGame(t, 5, 2)
	before := g.Tokens()
	_, err := g.Apply(Discard{Player: 0, Tile: g.Hand(0)[0].ID})
	if !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("err = %v, want ErrIllegalAction", err)
	}
	if g.Tokens() != before || g.TurnNumber() != 0 || g.CurrentPlayer() != 0 {
		t.Error("state changed after illegal action")
	}
}
