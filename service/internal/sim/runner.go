// internal/sim/runner.go
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/hanabi/engine"
)

// ErrTurnLimit aborts a game that has run far longer than any legal game can.
var ErrTurnLimit = errors.New("turn limit exceeded")

// ReasonError is the end reason recorded for a game aborted by an error.
const ReasonError = "Error"

// Settings are shared by every game of a batch.
type Settings struct {
	Rules engine.HouseRules
	Bot   BotFactory

	// Log receives game start and end records. Nil discards them.
	Log logrus.FieldLogger
	// TranscriptDir enables per-game transcripts when set.
	TranscriptDir   string
	TranscriptLevel logrus.Level
}

// Outcome is the result of one game.
type Outcome struct {
	Game       int
	Seed       uint64
	Points     int
	Reason     string
	Turns      int
	Duration   time.Duration
	Transcript string
	Err        error
}

// Errored reports whether the game was aborted.
func (o Outcome) Errored() bool { return o.Err != nil }

// turnLimit bounds the number of turns: every turn either draws a tile or
// spends a token, and tokens only come back through discards and fives.
func turnLimit(r engine.HouseRules) int {
	return 2*r.DeckSize() + r.MaxTokens + r.NumSuits + r.NumPlayers
}

// RunGame plays one game to the end. Per turn every seat receives its view,
// the acting seat chooses, and the engine applies the action. Any bot or
// engine error aborts the game and is reported in the outcome.
func RunGame(ctx context.Context, s Settings, game int, seed uint64) Outcome {
	start := time.Now()
	out := Outcome{Game: game, Seed: seed, Reason: ReasonError}
	log := s.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	log = log.WithFields(logrus.Fields{"game": game, "seed": seed})

	tr, err := OpenTranscript(s.TranscriptDir, game, s.TranscriptLevel)
	if err != nil {
		out.Err = err
		return out
	}

	err = playGame(ctx, s, seed, tr, log, &out)
	out.Duration = time.Since(start)
	if err != nil {
		out.Err = fmt.Errorf("game %d (seed %d): %w", game, seed, err)
		log.WithError(err).WithField("turns", out.Turns).Warn("game aborted")
	} else {
		log.WithFields(logrus.Fields{
			"points": out.Points,
			"reason": out.Reason,
			"turns":  out.Turns,
		}).Info("game finished")
	}

	if tr != nil {
		if err != nil {
			tr.log.WithError(err).Error("aborted")
		}
		path, terr := tr.Finish(out.Points, out.Reason)
		if terr != nil && out.Err == nil {
			out.Err = terr
		}
		out.Transcript = path
	}
	return out
}

func playGame(ctx context.Context, s Settings, seed uint64, tr *Transcript, log logrus.FieldLogger, out *Outcome) error {
	g, err := engine.NewGame(seed, s.Rules)
	if err != nil {
		return err
	}
	g.Deal()
	tr.Start(g)

	botLog := tr.Logger()
	if botLog == nil {
		botLog = log
	}
	players := make([]Player, g.NumPlayers())
	for i := range players {
		players[i] = s.Bot(i, botLog)
	}

	limit := turnLimit(s.Rules)
	for !g.IsOver() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if g.TurnNumber() >= limit {
			return ErrTurnLimit
		}
		for i, p := range players {
			if err := p.Update(g.View(i)); err != nil {
				return fmt.Errorf("seat %d update: %w", i, err)
			}
		}
		seat := g.CurrentPlayer()
		act, err := players[seat].TakeTurn()
		if err != nil {
			return fmt.Errorf("seat %d turn: %w", seat, err)
		}
		turn, err := g.Apply(act)
		if err != nil {
			return fmt.Errorf("seat %d: %w", seat, err)
		}
		tr.Turn(turn, g)
		out.Turns = g.TurnNumber()
		out.Points = g.Score()
	}
	out.Points = g.Score()
	out.Reason = g.EndReason().String()
	return nil
}
