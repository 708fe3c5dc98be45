// internal/sim/sim_test.go
package sim

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/jason-s-yu/hanabi/engine"
	"github.com/jason-s-yu/hanabi/engine/agent"
)

func settings(t *testing.T, bot string, players int) Settings {
	t.Helper()
	f, err := NewBotFactory(bot, agent.DefaultOptions())
	require.NoError(t, err)
	hr := engine.DefaultHouseRules()
	hr.NumPlayers = players
	return Settings{Rules: hr, Bot: f}
}

// discarder always discards its oldest tile, which is illegal at full tokens.
type discarder struct {
	seat int
	hand []engine.Action
}

func (d *discarder) Seat() int { return d.seat }

func (d *discarder) Update(v engine.View) error {
	d.hand = d.hand[:0]
	for _, id := range v.OwnHand {
		d.hand = append(d.hand, engine.Discard{Player: d.seat, Tile: id})
	}
	return nil
}

func (d *discarder) TakeTurn() (engine.Action, error) { return d.hand[0], nil }

func TestNewBotFactory(t *testing.T) {
	f, err := NewBotFactory(BotAgent, agent.DefaultOptions())
	require.NoError(t, err)
	assert.IsType(t, &agent.Agent{}, f(2, nil))
	assert.Equal(t, 2, f(2, nil).Seat())

	f, err = NewBotFactory(BotFirstTile, agent.Options{})
	require.NoError(t, err)
	assert.IsType(t, &FirstTilePlayer{}, f(0, nil))

	_, err = NewBotFactory("random", agent.Options{})
	assert.Error(t, err)
}

func TestFirstTilePlayer(t *testing.T) {
	p := NewFirstTilePlayer(1)
	_, err := p.TakeTurn()
	assert.Error(t, err)

	g, err := engine.NewGame(5, engine.DefaultHouseRules())
	require.NoError(t, err)
	g.Deal()
	assert.Error(t, p.Update(g.View(0)))
	require.NoError(t, p.Update(g.View(1)))
	act, err := p.TakeTurn()
	require.NoError(t, err)
	assert.Equal(t, engine.Play{Player: 1, Tile: g.Hand(1)[0].ID}, act)
}

func TestRunGameAgent(t *testing.T) {
	for players := engine.MinPlayers; players <= engine.MaxPlayers; players++ {
		s := settings(t, BotAgent, players)
		o := RunGame(context.Background(), s, 3, 42)
		require.NoError(t, o.Err)
		assert.False(t, o.Errored())
		assert.Equal(t, 3, o.Game)
		assert.Equal(t, uint64(42), o.Seed)
		assert.Contains(t, []string{"Fuses", "EmptyDrawPile", "PerfectGame"}, o.Reason)
		assert.GreaterOrEqual(t, o.Points, 0)
		assert.LessOrEqual(t, o.Points, s.Rules.MaxScore())
		assert.Positive(t, o.Turns)
		assert.Empty(t, o.Transcript)
	}
}

func TestRunGameFirstTileBaseline(t *testing.T) {
	o := RunGame(context.Background(), settings(t, BotFirstTile, 3), 0, 7)
	require.NoError(t, o.Err)
	assert.Contains(t, []string{"Fuses", "EmptyDrawPile"}, o.Reason)
}

func TestRunGameIsDeterministic(t *testing.T) {
	s := settings(t, BotAgent, 4)
	a := RunGame(context.Background(), s, 0, 1234)
	b := RunGame(context.Background(), s, 0, 1234)
	assert.Equal(t, a.Points, b.Points)
	assert.Equal(t, a.Reason, b.Reason)
	assert.Equal(t, a.Turns, b.Turns)
}

func TestRunGameBotError(t *testing.T) {
	s := settings(t, BotAgent, 3)
	s.Bot = func(seat int, _ logrus.FieldLogger) Player { return &discarder{seat: seat} }
	o := RunGame(context.Background(), s, 0, 1)
	require.Error(t, o.Err)
	assert.True(t, errors.Is(o.Err, engine.ErrIllegalAction))
	assert.Equal(t, ReasonError, o.Reason)
	assert.Zero(t, o.Turns)
}

func TestRunGameInvalidRules(t *testing.T) {
	s := settings(t, BotAgent, 3)
	s.Rules.NumPlayers = 9
	o := RunGame(context.Background(), s, 0, 1)
	assert.Error(t, o.Err)
}

func TestRunGameCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := RunGame(ctx, settings(t, BotAgent, 3), 0, 1)
	assert.ErrorIs(t, o.Err, context.Canceled)
}

func TestRunGameTranscript(t *testing.T) {
	dir := t.TempDir()
	s := settings(t, BotAgent, 3)
	s.TranscriptDir = dir
	s.TranscriptLevel = logrus.DebugLevel

	o := RunGame(context.Background(), s, 9, 77)
	require.NoError(t, o.Err)
	require.NotEmpty(t, o.Transcript)
	assert.Equal(t, filepath.Join(dir, "9_"+strconv.Itoa(o.Points)+"_"+o.Reason+".txt"), o.Transcript)

	data, err := os.ReadFile(o.Transcript)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "deal")
	assert.Contains(t, text, "game over")
	assert.Contains(t, text, "Player 0")

	_, err = os.Stat(filepath.Join(dir, "9.txt"))
	assert.True(t, os.IsNotExist(err), "working file is renamed")
}

func TestDescribeTurn(t *testing.T) {
	r3 := engine.Tile{Identity: engine.NewIdentity(engine.SuitRed, 3)}
	assert.Equal(t, "Player 1 plays Red 3", DescribeTurn(engine.Turn{Action: engine.Play{Player: 1}, Tile: r3, Success: true}))
	assert.Equal(t, "Player 1 misplays Red 3", DescribeTurn(engine.Turn{Action: engine.Play{Player: 1}, Tile: r3}))
	assert.Equal(t, "Player 2 discards Red 3", DescribeTurn(engine.Turn{Action: engine.Discard{Player: 2}, Tile: r3}))
	assert.Equal(t, "Player 0 tells Player 1 has 3 (0 tiles)", DescribeTurn(engine.Turn{Action: engine.NumberInfo(0, 1, 3)}))
}

func TestRunBatch(t *testing.T) {
	s := settings(t, BotAgent, 4)
	stats := NewStats(s.Rules.MaxScore())
	outs, err := RunBatch(context.Background(), Batch{Settings: s, Games: 12, Seed: 100, Workers: 3}, stats)
	require.NoError(t, err)
	require.Len(t, outs, 12)
	for i, o := range outs {
		assert.Equal(t, i, o.Game)
		assert.Equal(t, uint64(100+i), o.Seed)
		assert.NoError(t, o.Err)
	}

	sum := stats.Summary()
	assert.Equal(t, 12, sum.Games)
	assert.Zero(t, sum.Errored)
	total := 0
	for _, n := range sum.Histogram {
		total += n
	}
	assert.Equal(t, 12, total)

	// Worker count does not change results.
	again, err := RunBatch(context.Background(), Batch{Settings: s, Games: 12, Seed: 100, Workers: 1}, nil)
	require.NoError(t, err)
	for i := range outs {
		assert.Equal(t, outs[i].Points, again[i].Points)
		assert.Equal(t, outs[i].Reason, again[i].Reason)
	}
}

func TestRunBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunBatch(ctx, Batch{Settings: settings(t, BotAgent, 3), Games: 5}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatsSummary(t *testing.T) {
	s := NewStats(25)
	for _, p := range []int{10, 20, 15, 15} {
		s.Add(Outcome{Points: p, Reason: "EmptyDrawPile"})
	}
	s.Add(Outcome{Points: 3, Reason: "Fuses"})
	s.Add(Outcome{Points: 8, Reason: ReasonError, Err: errors.New("boom")})

	sum := s.Summary()
	assert.Equal(t, 6, sum.Games)
	assert.Equal(t, 1, sum.Errored)
	assert.InDelta(t, 12.6, sum.Mean, 1e-9)
	assert.Equal(t, 15.0, sum.Median)
	assert.Equal(t, 3, sum.Min)
	assert.Equal(t, 20, sum.Max)
	assert.Len(t, sum.Histogram, 26)
	assert.Equal(t, 2, sum.Histogram[15])
	assert.Zero(t, sum.Histogram[8], "errored games are not scored")
	assert.Equal(t, map[string]int{"EmptyDrawPile": 4, "Fuses": 1, ReasonError: 1}, sum.Reasons)
	assert.Equal(t, []string{"EmptyDrawPile", ReasonError, "Fuses"}, sum.ReasonNames())

	s.Add(Outcome{Points: 11, Reason: "Fuses"})
	assert.Equal(t, 13.0, s.Summary().Median)
	assert.Equal(t, 6, sum.Games, "summaries are copies")
}

func TestStatsEmpty(t *testing.T) {
	sum := NewStats(30).Summary()
	assert.Zero(t, sum.Games)
	assert.Zero(t, sum.Mean)
	assert.Len(t, sum.Histogram, 31)
}

func TestWriteReport(t *testing.T) {
	s := NewStats(25)
	s.Add(Outcome{Points: 18, Reason: "EmptyDrawPile"})
	s.Add(Outcome{Points: 25, Reason: "PerfectGame"})
	s.Add(Outcome{Reason: ReasonError, Err: errors.New("boom")})

	var buf bytes.Buffer
	WriteReport(&buf, "4 players", s.Summary(), 0)
	out := buf.String()
	assert.Contains(t, out, "4 players")
	assert.Contains(t, out, "PerfectGame")
	assert.Contains(t, out, "EmptyDrawPile")
	assert.Contains(t, out, "21.5")
	assert.Contains(t, out, "33.3%")
}

func TestWriteChart(t *testing.T) {
	s := NewStats(25)
	s.Add(Outcome{Points: 12, Reason: "Fuses"})
	path := filepath.Join(t.TempDir(), "charts", "scores.html")
	require.NoError(t, WriteChart(path, "scores", s.Summary()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scores")
	assert.Contains(t, string(data), "<html")
}
