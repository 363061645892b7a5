package models

import (
	"time"
)

// Bet represents a wager of shots between two users. The bettor owes the
// bettee the staked shots if the bet resolves against them.
type Bet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`
	BettorID    uint      `gorm:"not null;index" json:"bettor_id"`
	Bettor      *User     `gorm:"foreignKey:BettorID" json:"-"`
	BetteeID    uint      `gorm:"not null;index" json:"bettee_id"`
	Bettee      *User     `gorm:"foreignKey:BetteeID" json:"-"`
	Shots       int       `gorm:"not null" json:"shots"`
	Description string    `gorm:"type:text" json:"description"`
	Outcome     string    `gorm:"size:64" json:"outcome"`
}

// TableName specifies the table name for Bet model
func (Bet) TableName() string {
	return "bets"
}

// ParsedOutcome returns the bet's outcome as a tagged variant.
func (b *Bet) ParsedOutcome() (Outcome, error) {
	return ParseOutcome(b.Outcome)
}

// CreateBetRequest is the payload for creating a bet
type CreateBetRequest struct {
	BettorID    uint   `json:"bettor_id" binding:"required"`
	BetteeID    uint   `json:"bettee_id" binding:"required"`
	Shots       int    `json:"shots" binding:"required,gt=0"`
	Description string `json:"description"`
}

// UpdateBetRequest is the payload for updating a bet. Only the fields
// present in the request are applied.
type UpdateBetRequest struct {
	BettorID    *uint   `json:"bettor_id"`
	BetteeID    *uint   `json:"bettee_id"`
	Shots       *int    `json:"shots"`
	Description *string `json:"description"`
	Outcome     *string `json:"outcome"`
}

// BetSummaryEntry is one bet in a user's bet summary, annotated with the
// counterparty's name.
type BetSummaryEntry struct {
	ID          uint      `json:"id"`
	DateCreated time.Time `json:"date_created"`
	Shots       int       `json:"shots"`
	Description string    `json:"description"`
	Outcome     string    `json:"outcome"`
	BettorID    uint      `json:"bettor_id"`
	BetteeID    uint      `json:"bettee_id"`
	BettorName  string    `json:"bettor_name,omitempty"`
	BetteeName  string    `json:"bettee_name,omitempty"`
}

// BetSummary groups a user's bets by side, with counterparty names resolved
type BetSummary struct {
	User      User              `json:"user"`
	BetsOwed  []BetSummaryEntry `json:"bets_owed"`
	BetsOwned []BetSummaryEntry `json:"bets_owned"`
}
