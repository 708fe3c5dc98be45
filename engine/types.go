package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Suit is the colour of a tile.
type Suit uint8

// Suit constants. The first HouseRules.NumSuits of these are in play.
const (
	SuitRed Suit = iota
	SuitGreen
	SuitBlue
	SuitYellow
	SuitWhite
	SuitRainbow
)

const (
	MaxSuits  = 6
	MinNumber = 1
	MaxNumber = 5
)

// DeckNumbers is the number distribution of a single suit.
var DeckNumbers = [...]uint8{1, 1, 1, 2, 2, 3, 3, 4, 4, 5}

// TilesPerSuit is the number of physical tiles of each suit.
const TilesPerSuit = len(DeckNumbers)

var suitNames = [MaxSuits]string{"Red", "Green", "Blue", "Yellow", "White", "Rainbow"}

func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

// Valid reports whether s is one of the known suits.
func (s Suit) Valid() bool { return s < MaxSuits }

// AllSuits returns the first n suits in declaration order.
func AllSuits(n int) []Suit {
	if n > MaxSuits {
		n = MaxSuits
	}
	out := make([]Suit, n)
	for i := range out {
		out[i] = Suit(i)
	}
	return out
}

// Identity is the face of a tile. Two tiles with the same Identity are copies.
type Identity struct {
	Suit   Suit
	Number uint8
}

// NewIdentity constructs an Identity.
func NewIdentity(s Suit, n uint8) Identity { return Identity{Suit: s, Number: n} }

// Valid reports whether the identity names a real tile face.
func (id Identity) Valid() bool {
	return id.Suit.Valid() && id.Number >= MinNumber && id.Number <= MaxNumber
}

// Copies returns how many physical tiles share this identity.
func (id Identity) Copies() int { return Copies(id.Number) }

func (id Identity) String() string { return fmt.Sprintf("%s %d", id.Suit, id.Number) }

// Copies returns how many physical tiles of one suit carry the given number:
// three 1s, a single 5, two of everything else.
func Copies(number uint8) int {
	switch number {
	case 1:
		return 3
	case MaxNumber:
		return 1
	default:
		return 2
	}
}

// Tile is a single physical tile. Its ID is stable for the whole game and is
// the only thing a player learns about the tiles in their own hand.
type Tile struct {
	ID uuid.UUID
	Identity
}

// Same reports whether two tiles are copies of each other (not the same tile).
func (t Tile) Same(other Tile) bool { return t.Identity == other.Identity }

func (t Tile) String() string { return t.Identity.String() }

// Progress holds the next number needed on each suit's firework. A suit that
// has not started needs a 1; a finished suit needs MaxNumber+1.
type Progress [MaxSuits]uint8

// NewProgress returns a Progress where every suit needs a 1.
func NewProgress() Progress {
	var p Progress
	for i := range p {
		p[i] = MinNumber
	}
	return p
}

// Next returns the number that must be played next on suit s.
func (p Progress) Next(s Suit) uint8 { return p[s] }

// IsPlayable reports whether a tile with this identity can be played now.
func (p Progress) IsPlayable(id Identity) bool { return p[id.Suit] == id.Number }

// IsPast reports whether the firework for id's suit has already moved beyond it.
func (p Progress) IsPast(id Identity) bool { return p[id.Suit] > id.Number }

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

// ActionKind discriminates the three kinds of Action.
type ActionKind uint8

const (
	ActionPlay ActionKind = iota + 1
	ActionDiscard
	ActionGiveInfo
)

func (k ActionKind) String() string {
	switch k {
	case ActionPlay:
		return "play"
	case ActionDiscard:
		return "discard"
	case ActionGiveInfo:
		return "info"
	}
	return "invalid"
}

// InfoKind says whether a GiveInfo reveals a suit or a number.
type InfoKind uint8

const (
	InfoSuit InfoKind = iota + 1
	InfoNumber
)

func (k InfoKind) String() string {
	switch k {
	case InfoSuit:
		return "suit"
	case InfoNumber:
		return "number"
	}
	return "invalid"
}

// Action is a move a player can make. The set of implementations is closed:
// Play, Discard and GiveInfo.
type Action interface {
	Kind() ActionKind
	Actor() int
	String() string
	isAction()
}

// Play attempts to add a tile from the actor's hand to its firework.
type Play struct {
	Player int
	Tile   uuid.UUID
}

func (Play) Kind() ActionKind { return ActionPlay }
func (a Play) Actor() int { return a.Player }
func (a Play) String() string { return fmt.Sprintf("Play tile %s", a.Tile) }
func (Play) isAction() {}

// Discard removes a tile from the actor's hand and regains an info token.
type Discard struct {
	Player int
	Tile   uuid.UUID
}

func (Discard) Kind() ActionKind { return ActionDiscard }
func (a Discard) Actor() int { return a.Player }
func (a Discard) String() string { return fmt.Sprintf("Discard tile %s", a.Tile) }
func (Discard) isAction() {}

// GiveInfo tells Target which of their tiles share a suit or a number.
type GiveInfo struct {
	Player int
	Target int
	Info   InfoKind
	Value  uint8
}

// SuitInfo builds a GiveInfo revealing suit s to target.
func SuitInfo(player, target int, s Suit) GiveInfo {
	return GiveInfo{Player: player, Target: target, Info: InfoSuit, Value: uint8(s)}
}

// NumberInfo builds a GiveInfo revealing number n to target.
func NumberInfo(player, target int, n uint8) GiveInfo {
	return GiveInfo{Player: player, Target: target, Info: InfoNumber, Value: n}
}

func (GiveInfo) Kind() ActionKind { return ActionGiveInfo }
func (a GiveInfo) Actor() int { return a.Player }
func (GiveInfo) isAction() {}

// Suit returns the revealed suit. Only meaningful when Info is InfoSuit.
func (a GiveInfo) Suit() Suit { return Suit(a.Value) }

// Number returns the revealed number. Only meaningful when Info is InfoNumber.
func (a GiveInfo) Number() uint8 { return a.Value }

// Matches reports whether a tile with identity id is touched by this info.
func (a GiveInfo) Matches(id Identity) bool {
	switch a.Info {
	case InfoSuit:
		return id.Suit == a.Suit()
	case InfoNumber:
		return id.Number == a.Number()
	}
	return false
}

func (a GiveInfo) String() string {
	if a.Info == InfoSuit {
		return fmt.Sprintf("Player %d has %s", a.Target, a.Suit())
	}
	return fmt.Sprintf("Player %d has %d", a.Target, a.Number())
}

// Turn is one entry of the game history.
type Turn struct {
	Number int
	Action Action
	// Targeted lists the tiles touched by a GiveInfo, in the target's hand
	// order (oldest first). Nil for other actions.
	Targeted []uuid.UUID
	// Tile is the tile played or discarded; zero for GiveInfo.
	Tile Tile
	// Success is true when a Play landed on its firework.
	Success bool
}
