package agent

// Play strength added to tiles touched by an info, lerped from the newest
// touched tile down to the oldest.
const (
	NewestInfoTileStrength = 50
	OldestInfoTileStrength = 10
)

// Strength a tile needs before the agent will play it on faith.
const (
	SafeStrengthToPlay   = 15
	DangerStrengthToPlay = 50
	// DangerFuses is the blown-fuse count at which the danger threshold applies.
	DangerFuses = 2
)

// Info scoring.
const (
	InfoPlayableFitness   = 20
	InfoUnplayableFitness = -10
	// InfoRecencyAge is how many turns must pass before a tile is worth
	// telling about again.
	InfoRecencyAge = 20
)

// Fitness values for the fixed candidate kinds.
const (
	DefinitePlayFitness    = 1000
	FinessePlayFitness     = 200
	DeadDiscardFitness     = 5
	FallbackDiscardFitness = 1
	FallbackInfoFitness    = 0
)

// Finesse weights.
const (
	FinesseInfoBonus = 30
	// FinesseConfirmedStrength is folded into an info tile once its target is played.
	FinesseConfirmedStrength = 30
	// FinesseTargetStrength marks our own newest tile when we infer we hold a
	// finesse target.
	FinesseTargetStrength = 30
)

// Options toggles optional agent behaviour.
type Options struct {
	// FinesseEnabled turns on finesse detection and finesse-driven info.
	FinesseEnabled bool
}

// DefaultOptions returns the options used by the simulator.
func DefaultOptions() Options {
	return Options{FinesseEnabled: true}
}
