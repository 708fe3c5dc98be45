// Command hanabisim plays batches of Hanabi games between bots and reports
// the score distribution.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/hanabi/engine"
	"github.com/jason-s-yu/hanabi/engine/agent"
	"github.com/jason-s-yu/hanabi/service/internal/cache"
	"github.com/jason-s-yu/hanabi/service/internal/config"
	"github.com/jason-s-yu/hanabi/service/internal/sim"
	"github.com/jason-s-yu/hanabi/service/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	envFile := ".env"
	if v := os.Getenv("HANABI_ENV_FILE"); v != "" {
		envFile = v
	}
	cfg, err := config.Load(envFile)
	if err != nil {
		log.WithError(err).Error("config")
		return 2
	}

	level := cfg.LogLevel.String()
	flag.IntVar(&cfg.Games, "games", cfg.Games, "number of games to play")
	flag.IntVar(&cfg.Players, "players", cfg.Players, "players per game (2-5)")
	flag.IntVar(&cfg.Suits, "suits", cfg.Suits, "suits in play (5 or 6)")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed of the first game")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "games in flight (0 = GOMAXPROCS)")
	flag.BoolVar(&cfg.Finesse, "finesse", cfg.Finesse, "enable finesse reasoning")
	flag.StringVar(&cfg.Bot, "bot", cfg.Bot, "bot kind: agent or first")
	flag.StringVar(&level, "log-level", level, "log level")
	flag.StringVar(&cfg.TranscriptDir, "transcripts", cfg.TranscriptDir, "directory for per-game transcripts")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite results database")
	flag.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "redis url for live stats")
	flag.StringVar(&cfg.ChartPath, "chart", cfg.ChartPath, "write the score histogram as HTML to this path")
	flag.Parse()

	if cfg.LogLevel, err = logrus.ParseLevel(level); err != nil {
		log.WithError(err).Error("log level")
		return 2
	}
	log.SetLevel(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Error("config")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errored, err := simulate(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("run failed")
		return 1
	}
	if errored > 0 {
		return 1
	}
	return 0
}

// simulate runs the configured batch and hands the results to every sink.
// It returns the number of aborted games.
func simulate(ctx context.Context, cfg config.Config, log *logrus.Logger) (int, error) {
	rules := engine.DefaultHouseRules()
	rules.NumPlayers = cfg.Players
	rules.NumSuits = cfg.Suits
	if err := rules.Validate(); err != nil {
		return 0, err
	}
	bot, err := sim.NewBotFactory(cfg.Bot, agent.Options{FinesseEnabled: cfg.Finesse})
	if err != nil {
		return 0, err
	}

	pub, err := cache.NewPublisher(cfg.RedisURL)
	if err != nil {
		return 0, err
	}
	defer pub.Close()

	runID := store.NewRunID()
	runLog := log.WithField("run", runID)
	runLog.WithFields(logrus.Fields{
		"games":   cfg.Games,
		"players": cfg.Players,
		"suits":   cfg.Suits,
		"bot":     cfg.Bot,
		"finesse": cfg.Finesse,
	}).Info("starting run")

	stats := sim.NewStats(rules.MaxScore())
	batch := sim.Batch{
		Settings: sim.Settings{
			Rules:           rules,
			Bot:             bot,
			Log:             runLog,
			TranscriptDir:   cfg.TranscriptDir,
			TranscriptLevel: cfg.LogLevel,
		},
		Games:   cfg.Games,
		Seed:    cfg.Seed,
		Workers: cfg.Workers,
	}

	started := time.Now()
	progress := make(chan struct{})
	var wg sync.WaitGroup
	wg.Go(func() { publishProgress(ctx, pub, runID, stats, progress, runLog) })
	outcomes, runErr := sim.RunBatch(ctx, batch, stats)
	close(progress)
	wg.Wait()
	elapsed := time.Since(started)

	sum := stats.Summary()
	title := fmt.Sprintf("%d players, %d suits, bot %s", cfg.Players, cfg.Suits, cfg.Bot)
	sim.WriteReport(os.Stdout, title, sum, elapsed)
	if runErr != nil {
		return sum.Errored, runErr
	}

	if cfg.ChartPath != "" {
		if err := sim.WriteChart(cfg.ChartPath, title, sum); err != nil {
			return sum.Errored, err
		}
		runLog.WithField("path", cfg.ChartPath).Info("chart written")
	}

	if cfg.DBPath != "" {
		if err := persist(cfg, runID, started, sum, outcomes); err != nil {
			return sum.Errored, err
		}
		runLog.WithField("db", cfg.DBPath).Info("results saved")
	}

	if err := pub.Publish(ctx, runID, sum, true); err != nil {
		runLog.WithError(err).Warn("publish failed")
	}

	for _, o := range outcomes {
		if o.Errored() {
			runLog.WithError(o.Err).WithField("game", o.Game).Error("game errored")
		}
	}
	return sum.Errored, nil
}

func persist(cfg config.Config, runID string, started time.Time, sum sim.Summary, outcomes []sim.Outcome) error {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveRun(store.Run{
		ID:        runID,
		StartedAt: started,
		Bot:       cfg.Bot,
		Players:   cfg.Players,
		Suits:     cfg.Suits,
		Seed:      int64(cfg.Seed),
		Finesse:   cfg.Finesse,
		Games:     sum.Games,
		Errored:   sum.Errored,
		Mean:      sum.Mean,
		Median:    sum.Median,
	}); err != nil {
		return err
	}
	return db.SaveOutcomes(runID, outcomes)
}

// publishProgress pushes the running aggregates every second until done is
// closed.
func publishProgress(ctx context.Context, pub *cache.Publisher, runID string, stats *sim.Stats, done <-chan struct{}, log logrus.FieldLogger) {
	if pub == nil {
		return
	}
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := pub.Publish(ctx, runID, stats.Summary(), false); err != nil {
				log.WithError(err).Debug("progress publish failed")
			}
		}
	}
}
