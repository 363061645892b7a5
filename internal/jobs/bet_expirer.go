package jobs

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"shot-ledger/internal/cache"
	"shot-ledger/internal/models"
)

// BetExpirer voids unresolved bets that have sat open past the maximum age
type BetExpirer struct {
	db       *gorm.DB
	cache    *cache.Cache
	maxAge   time.Duration
	interval time.Duration
	stopChan chan struct{}
}

// NewBetExpirer creates a new bet expiry job
func NewBetExpirer(db *gorm.DB, derived *cache.Cache, maxAge, interval time.Duration) *BetExpirer {
	return &BetExpirer{
		db:       db,
		cache:    derived,
		maxAge:   maxAge,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the expiry loop
func (be *BetExpirer) Start() {
	log.Printf("[BetExpirer] Starting bet expiry job (max age: %v, interval: %v)", be.maxAge, be.interval)

	ticker := time.NewTicker(be.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			be.expireStaleBets()
		case <-be.stopChan:
			log.Println("[BetExpirer] Stopping bet expiry job")
			return
		}
	}
}

// Stop stops the expiry loop
func (be *BetExpirer) Stop() {
	close(be.stopChan)
}

// expireStaleBets marks every unresolved bet older than maxAge as expired
func (be *BetExpirer) expireStaleBets() {
	ctx := context.Background()
	cutoff := time.Now().Add(-be.maxAge)

	result := be.db.WithContext(ctx).
		Model(&models.Bet{}).
		Where("(outcome = '' OR outcome IS NULL) AND date_created < ?", cutoff).
		Update("outcome", models.OutcomeExpired)
	if result.Error != nil {
		log.Printf("[BetExpirer] Error expiring stale bets: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[BetExpirer] Expired %d stale bets", result.RowsAffected)
		if err := be.cache.Invalidate(ctx, cache.KeyGraph, cache.KeyEvents); err != nil {
			log.Printf("[BetExpirer] Cache invalidation failed: %v", err)
		}
	}
}
