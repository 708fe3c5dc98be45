// internal/sim/transcript.go
package sim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/hanabi/engine"
)

// Transcript writes the turn-by-turn log of one game to its own file. The
// file is named "<game>.txt" while the game runs and renamed to
// "<game>_<points>_<reason>.txt" when it is finished. A nil *Transcript
// discards everything.
type Transcript struct {
	dir  string
	game int
	f    *os.File
	log  *logrus.Logger
}

// OpenTranscript creates the transcript file for game under dir. An empty dir
// returns a nil transcript.
func OpenTranscript(dir string, game int, level logrus.Level) (*Transcript, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("transcript dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("%d.txt", game)))
	if err != nil {
		return nil, fmt.Errorf("create transcript: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	})
	return &Transcript{dir: dir, game: game, f: f, log: l}, nil
}

// Logger returns the transcript's logger so bots can write their reasoning
// into the same file. Nil transcripts return nil.
func (t *Transcript) Logger() logrus.FieldLogger {
	if t == nil {
		return nil
	}
	return t.log.WithField("game", t.game)
}

// Start records the dealt hands.
func (t *Transcript) Start(g *engine.Game) {
	if t == nil {
		return
	}
	t.log.WithFields(logrus.Fields{
		"game":    t.game,
		"id":      g.ID,
		"players": g.NumPlayers(),
		"suits":   g.Rules.NumSuits,
	}).Info("deal")
	for p := 0; p < g.NumPlayers(); p++ {
		t.log.WithField("seat", p).Infof("hand %v", g.Hand(p))
	}
}

// Turn records one applied turn together with the resulting table state.
func (t *Transcript) Turn(turn engine.Turn, g *engine.Game) {
	if t == nil {
		return
	}
	t.log.WithFields(logrus.Fields{
		"turn":   turn.Number,
		"seat":   turn.Action.Actor(),
		"tokens": g.Tokens(),
		"fuses":  g.Fuses(),
		"score":  g.Score(),
		"draw":   g.DrawLen(),
	}).Info(DescribeTurn(turn))
}

// Finish closes the file and renames it after the result. It returns the
// final path.
func (t *Transcript) Finish(points int, reason string) (string, error) {
	if t == nil {
		return "", nil
	}
	t.log.WithFields(logrus.Fields{"points": points, "reason": reason}).Info("game over")
	if err := t.f.Close(); err != nil {
		return "", fmt.Errorf("close transcript: %w", err)
	}
	final := filepath.Join(t.dir, fmt.Sprintf("%d_%d_%s.txt", t.game, points, reason))
	if err := os.Rename(t.f.Name(), final); err != nil {
		return "", fmt.Errorf("rename transcript: %w", err)
	}
	return final, nil
}

// DescribeTurn renders a history entry for humans.
func DescribeTurn(turn engine.Turn) string {
	switch a := turn.Action.(type) {
	case engine.Play:
		if turn.Success {
			return fmt.Sprintf("Player %d plays %s", a.Player, turn.Tile)
		}
		return fmt.Sprintf("Player %d misplays %s", a.Player, turn.Tile)
	case engine.Discard:
		return fmt.Sprintf("Player %d discards %s", a.Player, turn.Tile)
	case engine.GiveInfo:
		return fmt.Sprintf("Player %d tells %s (%d tiles)", a.Player, a, len(turn.Targeted))
	}
	return "unknown action"
}
