package ledger

import (
	"fmt"
	"sort"
	"time"

	"shot-ledger/internal/models"
)

// GraphNode is one user appearing in at least one bet
type GraphNode struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// GraphEdge is one bet, pointing from the bettor to the bettee
type GraphEdge struct {
	From        uint      `json:"from"`
	To          uint      `json:"to"`
	Value       int       `json:"value"`
	Reason      string    `json:"reason"`
	Outcome     string    `json:"outcome"`
	DateCreated time.Time `json:"dateCreated"`
	ID          uint      `json:"id"`
}

// LeaderboardEntry ranks a user by shots currently owed to them
type LeaderboardEntry struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	TotalShotsOwed   int    `json:"totalShotsOwed"`
	TotalShotsOwedTo int    `json:"totalShotsOwedTo"`
}

// Graph is the full relationship view over all bets
type Graph struct {
	Nodes       []GraphNode        `json:"nodes"`
	Edges       []GraphEdge        `json:"edges"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// BuildRelationshipGraph converts the full bet set into nodes, one edge per
// bet, and a leaderboard. Leaderboard running totals only count unresolved
// bets; any non-empty outcome, void sentinels included, zeroes a bet's
// contribution. A bet referencing a user id missing from names is a
// referential-integrity fault and fails the whole build.
func BuildRelationshipGraph(bets []models.Bet, names map[uint]string) (*Graph, error) {
	graph := &Graph{
		Nodes:       make([]GraphNode, 0),
		Edges:       make([]GraphEdge, 0, len(bets)),
		Leaderboard: make([]LeaderboardEntry, 0),
	}

	seen := make(map[uint]bool)
	shotsOwedBy := make(map[uint]int)
	shotsOwedTo := make(map[uint]int)

	addNode := func(id uint) error {
		if seen[id] {
			return nil
		}
		name, ok := names[id]
		if !ok {
			return fmt.Errorf("bet references unknown user %d", id)
		}
		seen[id] = true
		graph.Nodes = append(graph.Nodes, GraphNode{ID: id, Name: name})
		return nil
	}

	for _, bet := range bets {
		if err := addNode(bet.BettorID); err != nil {
			return nil, err
		}
		if err := addNode(bet.BetteeID); err != nil {
			return nil, err
		}

		graph.Edges = append(graph.Edges, GraphEdge{
			From:        bet.BettorID,
			To:          bet.BetteeID,
			Value:       bet.Shots,
			Reason:      bet.Description,
			Outcome:     bet.Outcome,
			DateCreated: bet.DateCreated,
			ID:          bet.ID,
		})

		// Resolved bets keep their edge but drop out of the running totals
		if outcome, _ := bet.ParsedOutcome(); outcome.Resolved() {
			continue
		}
		shotsOwedBy[bet.BettorID] += bet.Shots
		shotsOwedTo[bet.BetteeID] += bet.Shots
	}

	for _, node := range graph.Nodes {
		graph.Leaderboard = append(graph.Leaderboard, LeaderboardEntry{
			ID:               node.ID,
			Name:             node.Name,
			TotalShotsOwed:   shotsOwedBy[node.ID],
			TotalShotsOwedTo: shotsOwedTo[node.ID],
		})
	}

	// Ties keep the first-seen node order
	sort.SliceStable(graph.Leaderboard, func(i, j int) bool {
		return graph.Leaderboard[i].TotalShotsOwedTo > graph.Leaderboard[j].TotalShotsOwedTo
	})

	return graph, nil
}
