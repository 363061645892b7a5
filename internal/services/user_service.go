package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shot-ledger/internal/cache"
	"shot-ledger/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailRegistered = errors.New("email already registered")
)

// UserService handles user-related business logic
type UserService struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewUserService creates a new UserService
func NewUserService(db *gorm.DB, derived *cache.Cache) *UserService {
	return &UserService{db: db, cache: derived}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves a page of users
func (s *UserService) GetUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a user; emails are unique
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{Name: req.Name, Email: req.Email}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates a user's name and email. Names feed the derived graph,
// so the derived cache is invalidated.
func (s *UserService) UpdateUser(ctx context.Context, userID uint, req *models.CreateUserRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}

	s.invalidateDerived(ctx)
	return user, nil
}

// DeleteUser removes a user
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(user).Error; err != nil {
		return err
	}

	s.invalidateDerived(ctx)
	return nil
}

// GetUserBetsOwed retrieves bets where the user is the bettor (owes shots)
func (s *UserService) GetUserBetsOwed(ctx context.Context, userID uint) ([]models.Bet, error) {
	var bets []models.Bet
	if err := s.db.WithContext(ctx).Where("bettor_id = ?", userID).Find(&bets).Error; err != nil {
		return nil, err
	}
	return bets, nil
}

// GetUserBetsOwned retrieves bets where the user is the bettee (is owed shots)
func (s *UserService) GetUserBetsOwned(ctx context.Context, userID uint) ([]models.Bet, error) {
	var bets []models.Bet
	if err := s.db.WithContext(ctx).Where("bettee_id = ?", userID).Find(&bets).Error; err != nil {
		return nil, err
	}
	return bets, nil
}

// GetUserBetSummary retrieves both sides of a user's bets with counterparty
// names resolved
func (s *UserService) GetUserBetSummary(ctx context.Context, userID uint) (*models.BetSummary, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var owed []models.Bet
	if err := s.db.WithContext(ctx).Preload("Bettee").Where("bettor_id = ?", userID).Find(&owed).Error; err != nil {
		return nil, err
	}

	var owned []models.Bet
	if err := s.db.WithContext(ctx).Preload("Bettor").Where("bettee_id = ?", userID).Find(&owned).Error; err != nil {
		return nil, err
	}

	summary := &models.BetSummary{
		User:      *user,
		BetsOwed:  make([]models.BetSummaryEntry, 0, len(owed)),
		BetsOwned: make([]models.BetSummaryEntry, 0, len(owned)),
	}

	for _, bet := range owed {
		entry := summaryEntry(bet)
		if bet.Bettee != nil {
			entry.BetteeName = bet.Bettee.Name
		}
		summary.BetsOwed = append(summary.BetsOwed, entry)
	}
	for _, bet := range owned {
		entry := summaryEntry(bet)
		if bet.Bettor != nil {
			entry.BettorName = bet.Bettor.Name
		}
		summary.BetsOwned = append(summary.BetsOwned, entry)
	}

	return summary, nil
}

// GetRelatedUsers retrieves every user who shares at least one bet with the
// given user, excluding the user themselves
func (s *UserService) GetRelatedUsers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	var bets []models.Bet
	if err := s.db.WithContext(ctx).Where("bettor_id = ? OR bettee_id = ?", userID, userID).Find(&bets).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var relatedIDs []uint
	for _, bet := range bets {
		for _, id := range []uint{bet.BettorID, bet.BetteeID} {
			if id != userID && !seen[id] {
				seen[id] = true
				relatedIDs = append(relatedIDs, id)
			}
		}
	}

	users := make([]models.User, 0, len(relatedIDs))
	if len(relatedIDs) == 0 {
		return users, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", relatedIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) invalidateDerived(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.KeyGraph, cache.KeyEvents); err != nil {
		logCacheError("UserService", err)
	}
}

func summaryEntry(bet models.Bet) models.BetSummaryEntry {
	return models.BetSummaryEntry{
		ID:          bet.ID,
		DateCreated: bet.DateCreated,
		Shots:       bet.Shots,
		Description: bet.Description,
		Outcome:     bet.Outcome,
		BettorID:    bet.BettorID,
		BetteeID:    bet.BetteeID,
	}
}
