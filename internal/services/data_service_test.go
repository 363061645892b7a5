package services

import (
	"context"
	"testing"

	"shot-ledger/internal/ledger"
	"shot-ledger/internal/models"
)

func TestGetUserShotBalances(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db, "Alice", "Bob")
	betService := NewBetService(db, nil)
	dataService := NewDataService(db, nil)
	ctx := context.Background()

	if _, err := betService.CreateBet(ctx, &models.CreateBetRequest{
		BettorID: users[0].ID, BetteeID: users[1].ID, Shots: 3,
	}); err != nil {
		t.Fatalf("CreateBet failed: %v", err)
	}

	sheet, err := dataService.GetUserShotBalances(ctx, users[0].ID)
	if err != nil {
		t.Fatalf("GetUserShotBalances failed: %v", err)
	}

	if sheet.Outward[users[1].ID] != 3 || sheet.TotalOutward != 3 {
		t.Errorf("unexpected outward balances: %+v", sheet)
	}
	if len(sheet.Inward) != 0 || sheet.TotalInward != 0 {
		t.Errorf("unexpected inward balances: %+v", sheet)
	}

	// Resolving the bet must not change the balance view
	bets, err := betService.GetBets(ctx, 0, 100)
	if err != nil {
		t.Fatalf("GetBets failed: %v", err)
	}
	outcome := "2024-01-01T10:00:00Z"
	if _, err := betService.UpdateBet(ctx, bets[0].ID, &models.UpdateBetRequest{Outcome: &outcome}); err != nil {
		t.Fatalf("UpdateBet failed: %v", err)
	}

	sheet, err = dataService.GetUserShotBalances(ctx, users[0].ID)
	if err != nil {
		t.Fatalf("GetUserShotBalances failed: %v", err)
	}
	if sheet.TotalOutward != 3 {
		t.Errorf("balances must ignore resolution, got %+v", sheet)
	}
}

func TestGetUserShotBalancesAbsentUser(t *testing.T) {
	db := setupTestDB(t)
	dataService := NewDataService(db, nil)

	sheet, err := dataService.GetUserShotBalances(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetUserShotBalances failed: %v", err)
	}
	if len(sheet.Outward) != 0 || len(sheet.Inward) != 0 || sheet.TotalOutward != 0 || sheet.TotalInward != 0 {
		t.Errorf("expected empty sheet for absent user, got %+v", sheet)
	}
}

func TestGetRelationshipGraph(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db, "Alice", "Bob")
	betService := NewBetService(db, nil)
	dataService := NewDataService(db, nil)
	ctx := context.Background()

	if _, err := betService.CreateBet(ctx, &models.CreateBetRequest{
		BettorID: users[0].ID, BetteeID: users[1].ID, Shots: 3,
	}); err != nil {
		t.Fatalf("CreateBet failed: %v", err)
	}

	graph, err := dataService.GetRelationshipGraph(ctx)
	if err != nil {
		t.Fatalf("GetRelationshipGraph failed: %v", err)
	}

	if len(graph.Nodes) != 2 || len(graph.Edges) != 1 {
		t.Fatalf("unexpected graph shape: %d nodes, %d edges", len(graph.Nodes), len(graph.Edges))
	}
	if graph.Leaderboard[0].Name != "Bob" || graph.Leaderboard[0].TotalShotsOwedTo != 3 {
		t.Errorf("unexpected leaderboard head: %+v", graph.Leaderboard[0])
	}
}

func TestGetEventLogWithMalformedOutcome(t *testing.T) {
	db := setupTestDB(t)
	users := seedUsers(t, db, "Alice", "Bob")
	betService := NewBetService(db, nil)
	dataService := NewDataService(db, nil)
	ctx := context.Background()

	good, err := betService.CreateBet(ctx, &models.CreateBetRequest{
		BettorID: users[0].ID, BetteeID: users[1].ID, Shots: 3, Description: "clean",
	})
	if err != nil {
		t.Fatalf("CreateBet failed: %v", err)
	}
	bad, err := betService.CreateBet(ctx, &models.CreateBetRequest{
		BettorID: users[1].ID, BetteeID: users[0].ID, Shots: 2, Description: "garbled",
	})
	if err != nil {
		t.Fatalf("CreateBet failed: %v", err)
	}

	goodOutcome := "2024-05-05T21:30:00Z"
	if _, err := betService.UpdateBet(ctx, good.ID, &models.UpdateBetRequest{Outcome: &goodOutcome}); err != nil {
		t.Fatalf("UpdateBet failed: %v", err)
	}
	badOutcome := "totally won this one"
	if _, err := betService.UpdateBet(ctx, bad.ID, &models.UpdateBetRequest{Outcome: &badOutcome}); err != nil {
		t.Fatalf("UpdateBet failed: %v", err)
	}

	eventLog, err := dataService.GetEventLog(ctx)
	if err != nil {
		t.Fatalf("GetEventLog failed: %v", err)
	}

	// Two creations plus one resolution; the garbled bet degrades quietly
	if len(eventLog.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(eventLog.Events))
	}
	for _, event := range eventLog.Events {
		if event.Type == ledger.EventTypeBetResolution && event.ID != good.ID {
			t.Errorf("unexpected resolution event: %+v", event)
		}
	}
}

func TestGetEventLogEmpty(t *testing.T) {
	db := setupTestDB(t)
	dataService := NewDataService(db, nil)

	eventLog, err := dataService.GetEventLog(context.Background())
	if err != nil {
		t.Fatalf("GetEventLog failed: %v", err)
	}
	if len(eventLog.Events) != 0 {
		t.Errorf("expected empty event log, got %+v", eventLog)
	}
}
