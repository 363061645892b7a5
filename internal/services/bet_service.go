package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"shot-ledger/internal/cache"
	"shot-ledger/internal/models"
)

var (
	ErrBetNotFound         = errors.New("bet not found")
	ErrParticipantNotFound = errors.New("bettor or bettee not found")
)

// BetService handles bet-related business logic
type BetService struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewBetService creates a new BetService
func NewBetService(db *gorm.DB, derived *cache.Cache) *BetService {
	return &BetService{db: db, cache: derived}
}

// GetBetByID retrieves a bet by ID
func (s *BetService) GetBetByID(ctx context.Context, betID uint) (*models.Bet, error) {
	var bet models.Bet
	if err := s.db.WithContext(ctx).First(&bet, betID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBetNotFound
		}
		return nil, err
	}
	return &bet, nil
}

// GetBets retrieves a page of bets
func (s *BetService) GetBets(ctx context.Context, skip, limit int) ([]models.Bet, error) {
	var bets []models.Bet
	if err := s.db.WithContext(ctx).Offset(skip).Limit(limit).Find(&bets).Error; err != nil {
		return nil, err
	}
	return bets, nil
}

// CreateBet creates a bet after verifying both participants exist
func (s *BetService) CreateBet(ctx context.Context, req *models.CreateBetRequest) (*models.Bet, error) {
	if err := s.verifyParticipants(ctx, req.BettorID, req.BetteeID); err != nil {
		return nil, err
	}

	bet := models.Bet{
		BettorID:    req.BettorID,
		BetteeID:    req.BetteeID,
		Shots:       req.Shots,
		Description: req.Description,
	}
	if err := s.db.WithContext(ctx).Create(&bet).Error; err != nil {
		return nil, err
	}

	s.invalidateDerived(ctx)
	return &bet, nil
}

// UpdateBet applies the fields present in the request. Setting outcome is
// how a bet gets resolved.
func (s *BetService) UpdateBet(ctx context.Context, betID uint, req *models.UpdateBetRequest) (*models.Bet, error) {
	bet, err := s.GetBetByID(ctx, betID)
	if err != nil {
		return nil, err
	}

	if req.BettorID != nil {
		bet.BettorID = *req.BettorID
	}
	if req.BetteeID != nil {
		bet.BetteeID = *req.BetteeID
	}
	if req.BettorID != nil || req.BetteeID != nil {
		if err := s.verifyParticipants(ctx, bet.BettorID, bet.BetteeID); err != nil {
			return nil, err
		}
	}
	if req.Shots != nil {
		bet.Shots = *req.Shots
	}
	if req.Description != nil {
		bet.Description = *req.Description
	}
	if req.Outcome != nil {
		bet.Outcome = *req.Outcome
	}

	if err := s.db.WithContext(ctx).Save(bet).Error; err != nil {
		return nil, err
	}

	s.invalidateDerived(ctx)
	return bet, nil
}

// DeleteBet removes a bet
func (s *BetService) DeleteBet(ctx context.Context, betID uint) error {
	bet, err := s.GetBetByID(ctx, betID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(bet).Error; err != nil {
		return err
	}

	s.invalidateDerived(ctx)
	return nil
}

// verifyParticipants checks both sides of a bet reference existing users
func (s *BetService) verifyParticipants(ctx context.Context, bettorID, betteeID uint) error {
	ids := []uint{bettorID, betteeID}
	if bettorID == betteeID {
		ids = ids[:1]
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrParticipantNotFound
	}
	return nil
}

func (s *BetService) invalidateDerived(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.KeyGraph, cache.KeyEvents); err != nil {
		logCacheError("BetService", err)
	}
}

func logCacheError(component string, err error) {
	log.Printf("[%s] derived cache invalidation failed: %v", component, err)
}
