package services

import (
	"context"
	"log"

	"gorm.io/gorm"

	"shot-ledger/internal/cache"
	"shot-ledger/internal/ledger"
	"shot-ledger/internal/metrics"
	"shot-ledger/internal/models"
)

// DataService fetches ledger snapshots and runs the derivations over them.
// The derived graph and event log are cached when a cache is configured.
type DataService struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewDataService creates a new DataService
func NewDataService(db *gorm.DB, derived *cache.Cache) *DataService {
	return &DataService{db: db, cache: derived}
}

// GetUserShotBalances nets shots between the user and each counterparty,
// over all of the user's bets regardless of outcome
func (s *DataService) GetUserShotBalances(ctx context.Context, userID uint) (*ledger.BalanceSheet, error) {
	var bets []models.Bet
	err := s.db.WithContext(ctx).
		Where("bettor_id = ? OR bettee_id = ?", userID, userID).
		Find(&bets).Error
	if err != nil {
		return nil, err
	}

	sheet := ledger.ComputeShotBalances(userID, bets)
	return &sheet, nil
}

// GetRelationshipGraph builds the node/edge/leaderboard view over all bets
func (s *DataService) GetRelationshipGraph(ctx context.Context) (*ledger.Graph, error) {
	var cached ledger.Graph
	if hit, err := s.cache.Get(ctx, cache.KeyGraph, &cached); err != nil {
		log.Printf("[DataService] graph cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}

	bets, names, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	graph, err := ledger.BuildRelationshipGraph(bets, names)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.KeyGraph, graph); err != nil {
		log.Printf("[DataService] graph cache write failed: %v", err)
	}
	return graph, nil
}

// GetEventLog synthesizes the bet timeline. Bets whose outcome cannot be
// parsed as a date lose their resolution event only; each one is logged and
// counted.
func (s *DataService) GetEventLog(ctx context.Context) (*ledger.EventLog, error) {
	var cached ledger.EventLog
	if hit, err := s.cache.Get(ctx, cache.KeyEvents, &cached); err != nil {
		log.Printf("[DataService] event log cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}

	bets, names, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	eventLog, anomalies, err := ledger.SynthesizeEventLog(bets, names)
	if err != nil {
		return nil, err
	}
	for _, anomaly := range anomalies {
		log.Printf("[DataService] dropping resolution event for bet %d: %v", anomaly.BetID, anomaly.Err)
		metrics.OutcomeParseFailures.Inc()
	}

	if err := s.cache.Set(ctx, cache.KeyEvents, eventLog); err != nil {
		log.Printf("[DataService] event log cache write failed: %v", err)
	}
	return eventLog, nil
}

// snapshot fetches all bets plus a user id to display name lookup
func (s *DataService) snapshot(ctx context.Context) ([]models.Bet, map[uint]string, error) {
	var bets []models.Bet
	if err := s.db.WithContext(ctx).Find(&bets).Error; err != nil {
		return nil, nil, err
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, nil, err
	}

	names := make(map[uint]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}

	return bets, names, nil
}
