package engine

import "fmt"

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	NumPlayers int // 2–5
	NumSuits   int // 5 or 6
	MaxTokens  int
	MaxFuses   int
	HandSize   int // 0 = derived from NumPlayers
}

// DefaultHouseRules returns the standard six-suit, five-player rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		NumPlayers: 5,
		NumSuits:   MaxSuits,
		MaxTokens:  8,
		MaxFuses:   3,
	}
}

// Validate checks that the rules describe a playable game.
func (r HouseRules) Validate() error {
	if r.NumPlayers < MinPlayers || r.NumPlayers > MaxPlayers {
		return fmt.Errorf("players must be between %d and %d, got %d", MinPlayers, MaxPlayers, r.NumPlayers)
	}
	if r.NumSuits < 1 || r.NumSuits > MaxSuits {
		return fmt.Errorf("suits must be between 1 and %d, got %d", MaxSuits, r.NumSuits)
	}
	if r.MaxTokens < 1 {
		return fmt.Errorf("max tokens must be positive, got %d", r.MaxTokens)
	}
	if r.MaxFuses < 1 {
		return fmt.Errorf("max fuses must be positive, got %d", r.MaxFuses)
	}
	if r.handSize()*r.NumPlayers > r.NumSuits*TilesPerSuit {
		return fmt.Errorf("deck too small to deal %d tiles to %d players", r.handSize(), r.NumPlayers)
	}
	return nil
}

// handSize returns the number of tiles dealt to each player:
// five with two or three players, four with four or five.
func (r HouseRules) handSize() int {
	if r.HandSize > 0 {
		return r.HandSize
	}
	if r.NumPlayers <= 3 {
		return 5
	}
	return 4
}

// Suits returns the suits in play.
func (r HouseRules) Suits() []Suit { return AllSuits(r.NumSuits) }

// DeckSize returns the total number of tiles in the deck.
func (r HouseRules) DeckSize() int { return r.NumSuits * TilesPerSuit }

// MaxScore returns the score of a perfect game.
func (r HouseRules) MaxScore() int { return r.NumSuits * MaxNumber }
