// internal/debate/event.go
// Wire schema for the orchestrator's streamed events.
package debate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventType tags a decoded stream event.
type EventType string

const (
	EventBullToken       EventType = "bull_token"
	EventBearToken       EventType = "bear_token"
	EventRefereeToken    EventType = "referee_token"
	EventBullComplete    EventType = "bull_complete"
	EventBearComplete    EventType = "bear_complete"
	EventRefereeComplete EventType = "referee_complete"
	EventStatus          EventType = "status"
	EventSystem          EventType = "system"
	EventHedera          EventType = "hedera"
	EventError           EventType = "error"
	EventDone            EventType = "done"
)

// TxRef is an opaque reference to a ledger transaction executed by the
// backend (HCS log or wager transfer).
type TxRef struct {
	TxID        string   `json:"tx_id"`
	TxType      string   `json:"tx_type"`
	Status      string   `json:"status"`
	HashscanURL string   `json:"hashscan_url"`
	Amount      *float64 `json:"amount,omitempty"`
	Simulation  bool     `json:"simulation,omitempty"`
}

// Event is one decoded frame from the debate stream. Which fields are
// populated depends on Type; everything else is left at its zero value.
type Event struct {
	Type EventType `json:"type"`

	// token events
	Token string `json:"token,omitempty"`
	Round *int   `json:"round,omitempty"`

	// complete events
	Content         string   `json:"content,omitempty"`
	Confidence      *int     `json:"confidence,omitempty"`
	KeyPoints       []string `json:"key_points,omitempty"`
	Winner          string   `json:"winner,omitempty"`
	ConfidenceScore *int     `json:"confidence_score,omitempty"`
	WagerAmount     *float64 `json:"wager_amount,omitempty"`
	KeyFactors      []string `json:"key_factors,omitempty"`

	// status events
	Status string `json:"status,omitempty"`

	// system events
	Data map[string]any `json:"data,omitempty"`

	// hedera events
	HCSTx   *TxRef `json:"hcs_tx,omitempty"`
	WagerTx *TxRef `json:"wager_tx,omitempty"`
}

// ParseEvent decodes a frame payload. A failure here is recoverable: the
// caller logs it and moves on to the next frame.
func ParseEvent(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("parse event: %w", err)
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("parse event: missing type tag")
	}
	return ev, nil
}

// Speaker returns the speaker a token or complete event belongs to,
// or "" for non-speaker events.
func (e Event) Speaker() Speaker {
	switch e.Type {
	case EventBullToken, EventBullComplete:
		return SpeakerBull
	case EventBearToken, EventBearComplete:
		return SpeakerBear
	case EventRefereeToken, EventRefereeComplete:
		return SpeakerReferee
	}
	return ""
}

// StatusSpeaker maps a liveness status value like "bull_analyzing" or
// "referee_evaluating" to its speaker. Non-speaker statuses
// (fetching_market_data, round_complete, ...) return "".
func (e Event) StatusSpeaker() Speaker {
	name, _, ok := strings.Cut(e.Status, "_")
	if !ok {
		return ""
	}
	switch Speaker(name) {
	case SpeakerBull, SpeakerBear, SpeakerReferee:
		return Speaker(name)
	}
	return ""
}
