package jobs

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"nick-exchange.backend/internal/domain/entities"
	"nick-exchange.backend/pkg/redis"
)

// Cache keys written by the refresher and read by the stats handlers
const (
	MarketStatsCacheKey  = "stats:market"
	StakingStatsCacheKey = "stats:staking"
)

type marketStatsSource interface {
	MarketStats(ctx context.Context) (*entities.MarketplaceStats, error)
}

type stakingStatsSource interface {
	Stats(ctx context.Context) (*entities.StakingStats, error)
}

// StatsRefresherJob periodically recomputes marketplace and staking stats
// and caches them in redis so stat reads do not hit aggregate queries.
type StatsRefresherJob struct {
	market   marketStatsSource
	staking  stakingStatsSource
	interval time.Duration
	stop     chan struct{}
}

func NewStatsRefresherJob(market marketStatsSource, staking stakingStatsSource) *StatsRefresherJob {
	return &StatsRefresherJob{
		market:   market,
		staking:  staking,
		interval: 30 * time.Second,
		stop:     make(chan struct{}),
	}
}

func (j *StatsRefresherJob) Start(ctx context.Context) {
	log.Println("🕐 Starting stats refresher job...")

	// warm the cache before the first tick
	j.refresh(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Stats refresher job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Stats refresher job stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

func (j *StatsRefresherJob) Stop() {
	close(j.stop)
}

func (j *StatsRefresherJob) refresh(ctx context.Context) {
	if stats, err := j.market.MarketStats(ctx); err != nil {
		log.Printf("❌ Error computing market stats: %v", err)
	} else {
		j.cache(ctx, MarketStatsCacheKey, stats)
	}

	if stats, err := j.staking.Stats(ctx); err != nil {
		log.Printf("❌ Error computing staking stats: %v", err)
	} else {
		j.cache(ctx, StakingStatsCacheKey, stats)
	}
}

func (j *StatsRefresherJob) cache(ctx context.Context, key string, stats interface{}) {
	payload, err := json.Marshal(stats)
	if err != nil {
		log.Printf("❌ Error marshaling %s: %v", key, err)
		return
	}
	// TTL outlives two refresh intervals so a slow tick does not blank the cache
	if err := redis.Set(ctx, key, payload, 3*j.interval); err != nil {
		log.Printf("❌ Error caching %s: %v", key, err)
	}
}
