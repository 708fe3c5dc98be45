// Package cache publishes live run aggregates to Redis so dashboards can poll
// them while a long batch is still running.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jason-s-yu/hanabi/service/internal/sim"
)

const (
	runsKey = "hanabi:runs"
	// keepRuns bounds the run list.
	keepRuns = 100
	runTTL   = 7 * 24 * time.Hour
)

// RunKey returns the hash key holding a run's aggregates.
func RunKey(runID string) string { return "hanabi:run:" + runID }

// Publisher writes run aggregates. A nil *Publisher is valid and does nothing.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher connects to the Redis server at url. An empty url returns a
// nil publisher.
func NewPublisher(url string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	return NewPublisherFromClient(redis.NewClient(opt)), nil
}

// NewPublisherFromClient wraps an existing client.
func NewPublisherFromClient(rdb *redis.Client) *Publisher { return &Publisher{rdb: rdb} }

// Fields renders a summary as hash fields.
func Fields(sum sim.Summary, done bool) map[string]any {
	f := map[string]any{
		"games":     sum.Games,
		"errored":   sum.Errored,
		"max_score": sum.MaxScore,
		"mean":      strconv.FormatFloat(sum.Mean, 'f', 3, 64),
		"median":    strconv.FormatFloat(sum.Median, 'f', 1, 64),
		"min":       sum.Min,
		"max":       sum.Max,
		"done":      done,
	}
	for name, n := range sum.Reasons {
		f["reason:"+name] = n
	}
	for p, n := range sum.Histogram {
		if n > 0 {
			f["points:"+strconv.Itoa(p)] = n
		}
	}
	return f
}

// Publish writes the summary for runID and records the run in the run list.
func (p *Publisher) Publish(ctx context.Context, runID string, sum sim.Summary, done bool) error {
	if p == nil {
		return nil
	}
	key := RunKey(runID)
	_, err := p.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, Fields(sum, done))
		pipe.Expire(ctx, key, runTTL)
		pipe.LRem(ctx, runsKey, 0, runID)
		pipe.LPush(ctx, runsKey, runID)
		pipe.LTrim(ctx, runsKey, 0, keepRuns-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish run %s: %w", runID, err)
	}
	return nil
}

// Close releases the connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.rdb.Close()
}
