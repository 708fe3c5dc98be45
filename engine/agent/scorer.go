package agent

import (
	"cmp"
	"fmt"
	"slices"

	engine "github.com/jason-s-yu/hanabi/engine"
)

// Candidate is one scored action.
type Candidate struct {
	Fitness int
	Action  engine.Action
	Reason  string
}

func (c Candidate) String() string {
	return fmt.Sprintf("%d %s (%s)", c.Fitness, c.Action, c.Reason)
}

// Scorer ranks the actions available to one seat. It only reads the store
// and the tracker.
type Scorer struct {
	Seat    int
	Opts    Options
	Store   *Store
	Tracker *Tracker
}

// kindRank orders equal-fitness candidates: plays, then info, then discards.
func kindRank(a engine.Action) int {
	switch a.Kind() {
	case engine.ActionPlay:
		return 0
	case engine.ActionGiveInfo:
		return 1
	default:
		return 2
	}
}

// Rank returns every candidate for v, best first. Ties are broken by action
// kind and then by generation order.
func (s *Scorer) Rank(v *engine.View) ([]Candidate, error) {
	var out []Candidate
	seen := make(map[engine.Action]bool)
	add := func(c Candidate) {
		if seen[c.Action] {
			return
		}
		seen[c.Action] = true
		out = append(out, c)
	}

	for _, c := range s.playCandidates(v) {
		add(c)
	}
	if v.Tokens > 0 {
		if s.Opts.FinesseEnabled {
			for _, c := range s.finesseInfoCandidates(v) {
				add(c)
			}
		}
		for _, c := range s.directInfoCandidates(v) {
			add(c)
		}
	}
	if v.Tokens < v.MaxTokens {
		for _, c := range s.discardCandidates(v) {
			add(c)
		}
	} else if c, ok := s.fallbackInfo(v); ok {
		add(c)
	}

	if len(out) == 0 {
		return nil, ErrNoCandidates
	}
	slices.SortStableFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Fitness, a.Fitness); c != 0 {
			return c
		}
		return cmp.Compare(kindRank(a.Action), kindRank(b.Action))
	})
	return out, nil
}

func (s *Scorer) playThreshold(v *engine.View) int {
	if v.Fuses >= DangerFuses {
		return DangerStrengthToPlay
	}
	return SafeStrengthToPlay
}

// finessePlay decides how an own tile that is the info side of a finesse
// should be offered. ok is false when no record applies.
func (s *Scorer) finessePlay(v *engine.View, recs []Finesse) (skip, play, ok bool) {
	if len(recs) == 0 {
		return false, false, false
	}
	turn := v.Turn()
	for _, r := range recs {
		if turn <= r.ExpectedTurn {
			return true, false, true
		}
	}
	for _, r := range recs {
		if v.InPlayed(r.TargetTile) {
			return false, true, true
		}
	}
	return false, false, false
}

func (s *Scorer) playCandidates(v *engine.View) []Candidate {
	var out []Candidate
	threshold := s.playThreshold(v)
	for _, id := range v.OwnHand {
		b := s.Store.Peek(id)
		play := engine.Play{Player: s.Seat, Tile: id}

		if b.IsDefinitelyPlayable(v.Next) {
			out = append(out, Candidate{DefinitePlayFitness, play, "definitely playable"})
			continue
		}
		if s.Opts.FinesseEnabled {
			skip, finesse, ok := s.finessePlay(v, s.Tracker.ForInfoTile(id))
			if skip {
				continue
			}
			if ok && finesse && !b.IsUnplayable(v.Next) {
				out = append(out, Candidate{FinessePlayFitness, play, "finesse target played"})
				continue
			}
		}
		if b.PlayStrength >= threshold && !b.IsUnplayable(v.Next) {
			out = append(out, Candidate{b.PlayStrength, play, fmt.Sprintf("strength %d >= %d", b.PlayStrength, threshold)})
		}
	}
	return out
}

// scoreInfo scores info against seat's hand and reports whether it would
// touch a tile that is playable now.
func scoreInfo(v *engine.View, seat int, info engine.GiveInfo) (fit int, touchesPlayable bool) {
	for _, o := range v.Hands[seat] {
		if !info.Matches(o.Identity) {
			continue
		}
		if v.IsPlayable(o.Identity) {
			fit += InfoPlayableFitness
			touchesPlayable = true
		} else {
			fit += InfoUnplayableFitness
		}
	}
	return fit, touchesPlayable
}

// bestInfo scores suit and number info for tile t in seat's hand and
// returns the better one. Number wins only when strictly better.
func (s *Scorer) bestInfo(v *engine.View, seat int, t engine.Tile) (engine.GiveInfo, int) {
	suit := engine.SuitInfo(s.Seat, seat, t.Suit)
	number := engine.NumberInfo(s.Seat, seat, t.Number)
	sf, _ := scoreInfo(v, seat, suit)
	nf, _ := scoreInfo(v, seat, number)
	if nf > sf {
		return number, nf
	}
	return suit, sf
}

// finesseInfo picks the info for q that touches no tile of seat's hand that
// is playable now. ok is false when both kinds would.
func (s *Scorer) finesseInfo(v *engine.View, seat int, q engine.Tile) (info engine.GiveInfo, fit int, ok bool) {
	suit := engine.SuitInfo(s.Seat, seat, q.Suit)
	number := engine.NumberInfo(s.Seat, seat, q.Number)
	sf, sp := scoreInfo(v, seat, suit)
	nf, np := scoreInfo(v, seat, number)
	switch {
	case !np && (sp || nf > sf):
		return number, nf, true
	case !sp:
		return suit, sf, true
	}
	return engine.GiveInfo{}, 0, false
}

type seatTile struct {
	seat int
	tile engine.Tile
}

// finesseInfoCandidates looks for Q in B's hand that follows A's playable
// newest tile P, with A, B and the scorer all different seats.
func (s *Scorer) finesseInfoCandidates(v *engine.View) []Candidate {
	var out []Candidate
	for a, handA := range v.Hands {
		if a == s.Seat || len(handA) == 0 {
			continue
		}
		p := handA[len(handA)-1]
		if !v.IsPlayable(p.Identity) || p.Number == engine.MaxNumber {
			continue
		}
		succ := engine.Identity{Suit: p.Suit, Number: p.Number + 1}
		for b, handB := range v.Hands {
			if b == s.Seat || b == a {
				continue
			}
			for _, q := range handB {
				if q.Identity != succ {
					continue
				}
				info, fit, ok := s.finesseInfo(v, b, q)
				if !ok {
					continue
				}
				out = append(out, Candidate{
					Fitness: fit + FinesseInfoBonus,
					Action:  info,
					Reason:  fmt.Sprintf("finesse %s via seat %d", q.Identity, a),
				})
			}
		}
	}
	return out
}

func (s *Scorer) directInfoCandidates(v *engine.View) []Candidate {
	var playable []seatTile
	for p, hand := range v.Hands {
		if p == s.Seat {
			continue
		}
		for _, t := range hand {
			if v.IsPlayable(t.Identity) {
				playable = append(playable, seatTile{p, t})
			}
		}
	}
	slices.SortStableFunc(playable, func(a, b seatTile) int {
		return cmp.Compare(a.tile.Number, b.tile.Number)
	})

	var out []Candidate
	for _, st := range playable {
		b := s.Store.Peek(st.tile.ID)
		if b.IsDefinitelyPlayable(v.Next) {
			continue
		}
		if b.InfoAge >= 0 && b.InfoAge <= InfoRecencyAge {
			continue
		}
		if s.copyInformed(v, st.tile) {
			continue
		}
		info, fit := s.bestInfo(v, st.seat, st.tile)
		out = append(out, Candidate{fit, info, fmt.Sprintf("%s is playable", st.tile.Identity)})
	}
	return out
}

// copyInformed reports whether another visible copy of t already had info.
func (s *Scorer) copyInformed(v *engine.View, t engine.Tile) bool {
	for p, hand := range v.Hands {
		if p == s.Seat {
			continue
		}
		for _, o := range hand {
			if o.ID != t.ID && o.Same(t) && s.Store.Peek(o.ID).InfoAge >= 0 {
				return true
			}
		}
	}
	return false
}

// knownDead reports whether the agent can prove its own tile is worthless.
func knownDead(v *engine.View, b *Belief) bool {
	return b.Possible().All(v.IsDead)
}

func (s *Scorer) discardCandidates(v *engine.View) []Candidate {
	var out []Candidate
	for _, id := range v.OwnHand {
		if knownDead(v, s.Store.Peek(id)) {
			out = append(out, Candidate{DeadDiscardFitness, engine.Discard{Player: s.Seat, Tile: id}, "known dead"})
		}
	}
	if len(v.OwnHand) > 0 {
		out = append(out, Candidate{FallbackDiscardFitness, engine.Discard{Player: s.Seat, Tile: v.OwnHand[0]}, "discard oldest"})
	}
	return out
}

// fallbackInfo tells the number of the visible tile furthest from being
// playable, so the info is unlikely to be mistaken for a play signal.
func (s *Scorer) fallbackInfo(v *engine.View) (Candidate, bool) {
	var (
		best     seatTile
		bestDist = -1 << 31
		found    bool
	)
	for p, hand := range v.Hands {
		if p == s.Seat {
			continue
		}
		for _, t := range hand {
			dist := int(t.Number) - int(v.Next.Next(t.Suit))
			if v.Next.IsPast(t.Identity) {
				dist = -1
			}
			if !found || dist > bestDist {
				best, bestDist, found = seatTile{p, t}, dist, true
			}
		}
	}
	if !found {
		return Candidate{}, false
	}
	return Candidate{
		Fitness: FallbackInfoFitness,
		Action:  engine.NumberInfo(s.Seat, best.seat, best.tile.Number),
		Reason:  "nothing better to do",
	}, true
}
