// Package agent implements the belief-tracking Hanabi bot: a per-tile store
// of possible identities, a finesse tracker and an action scorer.
package agent

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/hanabi/engine"
)

// Agent is one seat's bot. It is not safe for concurrent use.
type Agent struct {
	seat int
	opts Options
	log  logrus.FieldLogger

	store   *Store
	tracker *Tracker
	scorer  Scorer

	view     engine.View
	hasView  bool
	recorded int // history entries already recorded
}

// New returns an agent for seat. A nil logger discards output.
func New(seat int, opts Options, log logrus.FieldLogger) *Agent {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Agent{
		seat:    seat,
		opts:    opts,
		log:     log.WithField("seat", seat),
		tracker: &Tracker{},
	}
}

func (a *Agent) Seat() int { return a.seat }

// Belief returns the agent's belief about tile id, creating it if needed.
func (a *Agent) Belief(id uuid.UUID) *Belief {
	a.ensureStore(a.view.Suits)
	return a.store.Lookup(id)
}

// Finesses returns the active finesse records.
func (a *Agent) Finesses() []Finesse { return a.tracker.Active() }

func (a *Agent) ensureStore(suits []engine.Suit) {
	if a.store != nil {
		return
	}
	if len(suits) == 0 {
		suits = engine.AllSuits(engine.MaxSuits)
	}
	a.store = NewStore(suits)
	a.scorer = Scorer{Seat: a.seat, Opts: a.opts, Store: a.store, Tracker: a.tracker}
}

// Update ingests a new snapshot: elimination for every hand, then every
// history entry not yet recorded, then finesse maintenance. It must run
// before BestActions for the same turn.
func (a *Agent) Update(v engine.View) error {
	if v.Seat != a.seat {
		return fmt.Errorf("update: view is for seat %d, agent is seat %d", v.Seat, a.seat)
	}
	a.ensureStore(v.Suits)
	a.view = v
	a.hasView = true
	a.store.SetTurn(v.Turn())

	if err := a.eliminate(&a.view); err != nil {
		return fmt.Errorf("update turn %d: %w", v.Turn(), err)
	}
	if len(v.History) < a.recorded {
		return fmt.Errorf("update: history shrank from %d to %d", a.recorded, len(v.History))
	}
	for _, turn := range v.History[a.recorded:] {
		if err := a.RecordTurn(turn); err != nil {
			return fmt.Errorf("record turn %d: %w", turn.Number, err)
		}
		a.recorded++
	}
	a.maintainFinesses(&a.view)
	return nil
}

// eliminate removes fully visible identities from every hand, each from the
// point of view of the hand's owner.
func (a *Agent) eliminate(v *engine.View) error {
	for p, hand := range v.Hands {
		if p == a.seat || len(hand) == 0 {
			continue
		}
		gone := Eliminated(v, p)
		for _, t := range hand {
			if err := a.store.Lookup(t.ID).CannotBeAny(fmt.Sprintf("seat %d sees every copy", p), gone...); err != nil {
				return err
			}
		}
	}
	gone := Eliminated(v, a.seat)
	for _, id := range v.OwnHand {
		if err := a.store.Lookup(id).CannotBeAny("every copy visible", gone...); err != nil {
			return err
		}
	}
	return nil
}

// RecordTurn applies the direct consequences of one history entry: every
// tracked tile ages, and an info narrows the tiles of its target and may
// start finesse records.
//
// Entries older than the last one are judged against the fireworks of their
// own turn. Their negative info only reaches tiles already tracked when the
// info was given, and they never start finesse records.
func (a *Agent) RecordTurn(turn engine.Turn) error {
	a.ensureStore(a.view.Suits)
	a.store.AgeAll()

	info, ok := turn.Action.(engine.GiveInfo)
	if !ok {
		return nil
	}
	reason := fmt.Sprintf("turn %d: %s", turn.Number, info)
	next := a.view.NextAt(turn.Number)
	last, ok := a.view.LastTurn()
	latest := !ok || last.Number == turn.Number

	var playable []uuid.UUID
	for _, id := range turn.Targeted {
		b := a.store.Lookup(id)
		var err error
		if info.Info == engine.InfoSuit {
			err = b.MustBeSuit(info.Suit(), reason)
		} else {
			err = b.MustBeNumber(info.Number(), reason)
		}
		if err != nil {
			return err
		}
		b.GotInfo()
		if b.IsPossiblyPlayable(next) {
			playable = append(playable, id)
		}
	}
	a.addPlayStrength(playable)

	for _, id := range a.view.HandIDs(info.Target) {
		if slices.Contains(turn.Targeted, id) {
			continue
		}
		b := a.store.Lookup(id)
		// An info leaves no draw behind, so a tile first seen right after it
		// was already in the hand.
		if b.FirstSeen > turn.Number+1 {
			continue
		}
		var err error
		if info.Info == engine.InfoSuit {
			err = b.CannotBeSuit(info.Suit(), reason)
		} else {
			err = b.CannotBeNumber(info.Number(), reason)
		}
		if err != nil {
			return err
		}
	}

	switch {
	case !a.opts.FinesseEnabled:
	case latest:
		a.detectFinesses(turn, info)
	default:
		a.log.WithField("turn", turn.Number).Debug("stale info, finesse detection skipped")
	}
	return nil
}

// addPlayStrength spreads play strength over the touched tiles, newest
// strongest. tiles is in hand order, oldest first.
func (a *Agent) addPlayStrength(tiles []uuid.UUID) {
	n := len(tiles)
	if n == 0 {
		return
	}
	if n == 1 {
		a.store.Lookup(tiles[0]).PlayStrength += NewestInfoTileStrength
		return
	}
	for i := 0; i < n; i++ {
		b := a.store.Lookup(tiles[n-1-i])
		b.PlayStrength += lerp(NewestInfoTileStrength, OldestInfoTileStrength, i, n-1)
	}
}

// lerp returns floor(start + (end-start)*i/steps).
func lerp(start, end, i, steps int) int {
	d := (end - start) * i
	q := d / steps
	if d%steps != 0 && d < 0 {
		q--
	}
	return start + q
}

// detectFinesses creates records for an info that looks like a finesse.
func (a *Agent) detectFinesses(turn engine.Turn, info engine.GiveInfo) {
	v := &a.view
	log := a.log.WithField("turn", turn.Number)

	if info.Target == a.seat {
		for _, c := range PossibleFinesseTargets(v, info.Player) {
			if c.Number == engine.MaxNumber {
				continue
			}
			succ := engine.Identity{Suit: c.Suit, Number: c.Number + 1}
			holder := v.WhoHas(c.ID)
			for _, id := range turn.Targeted {
				if !a.store.Lookup(id).Possible().Has(succ) {
					continue
				}
				f := NewFinesse(id, c.ID, SetOf(succ), SetOf(c.Identity), turn.Number, info.Player, holder, v.NumPlayers)
				if a.tracker.Add(f) {
					log.WithFields(logrus.Fields{"tile": id, "target": c.ID}).Debugf("finesse on own tile as %s, seat %d to play %s", succ, holder, c.Identity)
				}
			}
		}
		return
	}

	if info.Player == a.seat {
		return
	}
	for _, id := range turn.Targeted {
		if t, ok := v.TryGetTile(id); ok && v.IsPlayable(t.Identity) {
			return
		}
	}
	for _, id := range turn.Targeted {
		t, ok := v.TryGetTile(id)
		if !ok || t.Number <= engine.MinNumber {
			continue
		}
		want := engine.Identity{Suit: t.Suit, Number: t.Number - 1}
		if !v.IsPlayable(want) {
			continue
		}

		var target engine.Tile
		found := false
		for _, c := range PossibleFinesseTargets(v, info.Player) {
			if c.Identity == want && v.WhoHas(c.ID) != info.Target {
				target, found = c, true
				break
			}
		}
		if found {
			holder := v.WhoHas(target.ID)
			f := NewFinesse(id, target.ID, SetOf(t.Identity), SetOf(want), turn.Number, info.Player, holder, v.NumPlayers)
			if a.tracker.Add(f) {
				log.WithFields(logrus.Fields{"tile": id, "target": target.ID}).Debugf("finesse seen: seat %d to play %s", holder, want)
			}
			continue
		}

		newest, ok := v.Newest(a.seat)
		if !ok || !a.store.Lookup(newest).Possible().Has(want) {
			continue
		}
		f := NewFinesse(id, newest, SetOf(t.Identity), SetOf(want), turn.Number, info.Player, a.seat, v.NumPlayers)
		if a.tracker.Add(f) {
			a.store.Lookup(newest).PlayStrength += FinesseTargetStrength
			log.WithFields(logrus.Fields{"tile": newest}).Debugf("finesse implies own newest tile is %s", want)
		}
	}
}

// maintainFinesses folds confirmed finesses into play strength and drops
// dead or disproven records.
func (a *Agent) maintainFinesses(v *engine.View) {
	confirmed, removed := a.tracker.Maintain(v)
	log := a.log.WithField("turn", v.Turn())
	for _, f := range confirmed {
		a.store.Lookup(f.InfoTile).PlayStrength += FinesseConfirmedStrength
		log.WithField("tile", f.InfoTile).Debug("finesse confirmed")
	}
	for _, f := range removed {
		log.WithField("tile", f.InfoTile).Debug("finesse removed")
	}
}

// BestActions ranks every candidate for the last view, best first. It does
// not change any state.
func (a *Agent) BestActions() ([]Candidate, error) {
	if !a.hasView {
		return nil, fmt.Errorf("best actions: %w: no view yet", ErrNoCandidates)
	}
	cands, err := a.scorer.Rank(&a.view)
	if err != nil {
		return nil, err
	}
	for i, c := range cands[:min(3, len(cands))] {
		a.log.WithFields(logrus.Fields{"turn": a.view.Turn(), "rank": i}).Debug(c.String())
	}
	return cands, nil
}

// TakeTurn returns the best-ranked action.
func (a *Agent) TakeTurn() (engine.Action, error) {
	cands, err := a.BestActions()
	if err != nil {
		return nil, err
	}
	return cands[0].Action, nil
}
