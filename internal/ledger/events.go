package ledger

import (
	"fmt"
	"sort"
	"time"

	"shot-ledger/internal/models"
)

// Event types in the synthesized log
const (
	EventTypeBetCreation   = "bet_creation"
	EventTypeBetResolution = "bet_resolution"
)

// Event is one discrete entry in the timeline. ID is the originating bet's id,
// so a resolved bet shares its id across two events.
type Event struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	EventDate   time.Time `json:"event_date"`
	Description string    `json:"description"`
}

// EventLog is the timeline of bet events, most recent first
type EventLog struct {
	Events []Event `json:"events"`
}

// OutcomeAnomaly records a settled bet whose stored outcome could not be
// parsed as a date. Its resolution event is dropped; nothing else is.
type OutcomeAnomaly struct {
	BetID   uint
	Outcome string
	Err     error
}

// SynthesizeEventLog turns every bet into a creation event plus, for settled
// bets with a parseable timestamp, a resolution event. Malformed settle
// timestamps are returned as anomalies instead of aborting. The log is
// sorted by event date, most recent first. A bet referencing a user id
// missing from names fails the whole synthesis.
func SynthesizeEventLog(bets []models.Bet, names map[uint]string) (*EventLog, []OutcomeAnomaly, error) {
	events := make([]Event, 0, len(bets))
	var anomalies []OutcomeAnomaly

	for _, bet := range bets {
		bettorName, ok := names[bet.BettorID]
		if !ok {
			return nil, nil, fmt.Errorf("bet %d references unknown user %d", bet.ID, bet.BettorID)
		}
		betteeName, ok := names[bet.BetteeID]
		if !ok {
			return nil, nil, fmt.Errorf("bet %d references unknown user %d", bet.ID, bet.BetteeID)
		}

		events = append(events, Event{
			ID:          bet.ID,
			Type:        EventTypeBetCreation,
			EventDate:   bet.DateCreated,
			Description: fmt.Sprintf("%s bet %s %d shot(s): %s", bettorName, betteeName, bet.Shots, bet.Description),
		})

		outcome, err := bet.ParsedOutcome()
		if outcome.State != models.OutcomeSettled {
			continue
		}
		if err != nil {
			anomalies = append(anomalies, OutcomeAnomaly{BetID: bet.ID, Outcome: bet.Outcome, Err: err})
			continue
		}

		events = append(events, Event{
			ID:          bet.ID,
			Type:        EventTypeBetResolution,
			EventDate:   outcome.SettledAt,
			Description: fmt.Sprintf("%s called %d shot(s) on %s", bettorName, bet.Shots, betteeName),
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate.After(events[j].EventDate)
	})

	return &EventLog{Events: events}, anomalies, nil
}
