package ledger

import (
	"testing"
	"time"

	"shot-ledger/internal/models"
)

func TestSynthesizeEventLogCreationOnly(t *testing.T) {
	created := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)
	bets := []models.Bet{
		{ID: 1, BettorID: 1, BetteeID: 2, Shots: 3, Description: "first to finish", DateCreated: created},
	}

	eventLog, anomalies, err := SynthesizeEventLog(bets, testNames)
	if err != nil {
		t.Fatalf("SynthesizeEventLog failed: %v", err)
	}
	if len(anomalies) != 0 {
		t.Fatalf("expected no anomalies, got %v", anomalies)
	}
	if len(eventLog.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(eventLog.Events))
	}

	event := eventLog.Events[0]
	if event.Type != EventTypeBetCreation {
		t.Errorf("expected %s, got %s", EventTypeBetCreation, event.Type)
	}
	if !event.EventDate.Equal(created) {
		t.Errorf("expected event date %v, got %v", created, event.EventDate)
	}
	want := "Alice bet Bob 3 shot(s): first to finish"
	if event.Description != want {
		t.Errorf("expected description %q, got %q", want, event.Description)
	}
}

func TestSynthesizeEventLogResolution(t *testing.T) {
	bets := []models.Bet{
		{
			ID: 1, BettorID: 1, BetteeID: 2, Shots: 3,
			DateCreated: time.Date(2023, 12, 24, 9, 0, 0, 0, time.UTC),
			Outcome:     "2024-01-01T10:00:00Z",
		},
	}

	eventLog, anomalies, err := SynthesizeEventLog(bets, testNames)
	if err != nil {
		t.Fatalf("SynthesizeEventLog failed: %v", err)
	}
	if len(anomalies) != 0 {
		t.Fatalf("expected no anomalies, got %v", anomalies)
	}
	if len(eventLog.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(eventLog.Events))
	}

	// Most recent first: the resolution happened after the creation
	resolution := eventLog.Events[0]
	if resolution.Type != EventTypeBetResolution {
		t.Fatalf("expected resolution first, got %s", resolution.Type)
	}
	want := "Alice called 3 shot(s) on Bob"
	if resolution.Description != want {
		t.Errorf("expected description %q, got %q", want, resolution.Description)
	}
	wantDate := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !resolution.EventDate.Equal(wantDate) {
		t.Errorf("expected event date %v, got %v", wantDate, resolution.EventDate)
	}
	if eventLog.Events[1].Type != EventTypeBetCreation {
		t.Errorf("expected creation second, got %s", eventLog.Events[1].Type)
	}
}

func TestSynthesizeEventLogVoidOutcomesEmitNoResolution(t *testing.T) {
	bets := []models.Bet{
		{ID: 1, BettorID: 1, BetteeID: 2, Shots: 3, Outcome: models.OutcomeIncomplete},
		{ID: 2, BettorID: 2, BetteeID: 1, Shots: 1, Outcome: models.OutcomeExpired},
	}

	eventLog, anomalies, err := SynthesizeEventLog(bets, testNames)
	if err != nil {
		t.Fatalf("SynthesizeEventLog failed: %v", err)
	}
	if len(anomalies) != 0 {
		t.Fatalf("void sentinels are not anomalies, got %v", anomalies)
	}
	for _, event := range eventLog.Events {
		if event.Type == EventTypeBetResolution {
			t.Errorf("void outcome produced a resolution event: %+v", event)
		}
	}
	if len(eventLog.Events) != 2 {
		t.Errorf("expected 2 creation events, got %d", len(eventLog.Events))
	}
}

func TestSynthesizeEventLogMalformedOutcomeDegrades(t *testing.T) {
	bets := []models.Bet{
		{ID: 1, BettorID: 1, BetteeID: 2, Shots: 3, Outcome: "definitely not a date"},
		{ID: 2, BettorID: 2, BetteeID: 1, Shots: 1, Outcome: "2024-02-02T08:15:00Z"},
	}

	eventLog, anomalies, err := SynthesizeEventLog(bets, testNames)
	if err != nil {
		t.Fatalf("SynthesizeEventLog failed: %v", err)
	}

	// Bet 1 degrades to creation-only; bet 2 is untouched
	if len(anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(anomalies))
	}
	if anomalies[0].BetID != 1 || anomalies[0].Outcome != "definitely not a date" {
		t.Errorf("unexpected anomaly: %+v", anomalies[0])
	}

	resolutions := 0
	for _, event := range eventLog.Events {
		if event.Type == EventTypeBetResolution {
			resolutions++
			if event.ID != 2 {
				t.Errorf("resolution event for wrong bet: %+v", event)
			}
		}
	}
	if resolutions != 1 {
		t.Errorf("expected 1 resolution event, got %d", resolutions)
	}
	if len(eventLog.Events) != 3 {
		t.Errorf("expected 3 events, got %d", len(eventLog.Events))
	}
}

func TestSynthesizeEventLogOrdering(t *testing.T) {
	bets := []models.Bet{
		{ID: 1, BettorID: 1, BetteeID: 2, Shots: 1, DateCreated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Outcome: "2024-03-01T12:00:00Z"},
		{ID: 2, BettorID: 2, BetteeID: 3, Shots: 2, DateCreated: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, BettorID: 3, BetteeID: 1, Shots: 3, DateCreated: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}

	eventLog, _, err := SynthesizeEventLog(bets, testNames)
	if err != nil {
		t.Fatalf("SynthesizeEventLog failed: %v", err)
	}

	for i := 1; i < len(eventLog.Events); i++ {
		prev, cur := eventLog.Events[i-1], eventLog.Events[i]
		if prev.EventDate.Before(cur.EventDate) {
			t.Errorf("events out of order: %v before %v", prev.EventDate, cur.EventDate)
		}
	}
}

func TestSynthesizeEventLogUnknownUser(t *testing.T) {
	bets := []models.Bet{
		{ID: 1, BettorID: 99, BetteeID: 2, Shots: 3},
	}

	if _, _, err := SynthesizeEventLog(bets, testNames); err == nil {
		t.Fatal("expected an error for a dangling user reference")
	}
}

func TestSynthesizeEventLogEmpty(t *testing.T) {
	eventLog, anomalies, err := SynthesizeEventLog(nil, testNames)
	if err != nil {
		t.Fatalf("SynthesizeEventLog failed: %v", err)
	}
	if len(eventLog.Events) != 0 || len(anomalies) != 0 {
		t.Errorf("expected empty log, got %+v / %v", eventLog, anomalies)
	}
}
