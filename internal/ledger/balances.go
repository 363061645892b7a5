// Package ledger derives aggregate views from a snapshot of bet records:
// per-user shot balances, the relationship graph with its leaderboard, and
// the chronological event log. Every function is a pure transformation over
// the slices it is given; callers fetch the snapshot and must not mutate it
// concurrently.
package ledger

import (
	"shot-ledger/internal/models"
)

// BalanceSheet nets shots between one user and each counterparty.
type BalanceSheet struct {
	// Outward maps counterparty id to shots the subject owes them
	Outward map[uint]int `json:"outward"`
	// Inward maps counterparty id to shots owed to the subject
	Inward       map[uint]int `json:"inward"`
	TotalOutward int          `json:"total_outward"`
	TotalInward  int          `json:"total_inward"`
}

// ComputeShotBalances nets shots between userID and every counterparty over
// the given bets. Resolved and unresolved bets both count: this is the gross
// lifetime view, unlike the leaderboard which only counts open bets. Bets
// where userID appears on neither side are ignored, so passing the full bet
// set is safe.
func ComputeShotBalances(userID uint, bets []models.Bet) BalanceSheet {
	sheet := BalanceSheet{
		Outward: make(map[uint]int),
		Inward:  make(map[uint]int),
	}

	for _, bet := range bets {
		// A self-bet lands on both sides of the sheet.
		if bet.BettorID == userID {
			sheet.Outward[bet.BetteeID] += bet.Shots
			sheet.TotalOutward += bet.Shots
		}
		if bet.BetteeID == userID {
			sheet.Inward[bet.BettorID] += bet.Shots
			sheet.TotalInward += bet.Shots
		}
	}

	return sheet
}
