package models

import (
	"fmt"
	"time"
)

// OutcomeState classifies a bet's stored outcome string
type OutcomeState int

const (
	// OutcomeUnresolved means the bet is still open (empty outcome)
	OutcomeUnresolved OutcomeState = iota
	// OutcomeVoid means the bet resolved without a payout
	OutcomeVoid
	// OutcomeSettled means the bet resolved at a recorded time
	OutcomeSettled
)

// Void sentinels stored verbatim in the outcome column
const (
	OutcomeIncomplete = "incomplete"
	OutcomeExpired    = "expired"
)

// Settle timestamps are stored with trailing characters (seconds/offset)
// past the minute that are dropped, not parsed.
const (
	settledLayout  = "2006-01-02T15:04"
	settledTrailer = 4
)

// Outcome is the tagged form of the tri-state outcome column.
type Outcome struct {
	State OutcomeState
	// Reason holds the void sentinel when State is OutcomeVoid
	Reason string
	// SettledAt is valid when State is OutcomeSettled and parsing succeeded
	SettledAt time.Time
}

// ParseOutcome classifies a raw outcome string. A non-empty, non-sentinel
// value is always a settlement; if its timestamp cannot be parsed the
// returned outcome is still settled, alongside a non-nil error, so callers
// decide whether presence or the timestamp is what they need.
func ParseOutcome(raw string) (Outcome, error) {
	switch raw {
	case "":
		return Outcome{State: OutcomeUnresolved}, nil
	case OutcomeIncomplete, OutcomeExpired:
		return Outcome{State: OutcomeVoid, Reason: raw}, nil
	}

	if len(raw) <= settledTrailer {
		return Outcome{State: OutcomeSettled}, fmt.Errorf("outcome %q too short for a settle timestamp", raw)
	}

	settledAt, err := time.Parse(settledLayout, raw[:len(raw)-settledTrailer])
	if err != nil {
		return Outcome{State: OutcomeSettled}, fmt.Errorf("parse settle timestamp %q: %w", raw, err)
	}

	return Outcome{State: OutcomeSettled, SettledAt: settledAt}, nil
}

// Resolved reports whether the bet is no longer open. This is presence-based:
// void and settled outcomes both count as resolved.
func (o Outcome) Resolved() bool {
	return o.State != OutcomeUnresolved
}
