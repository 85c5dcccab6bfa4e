// internal/debate/event_test.go
package debate

import "testing"

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, ev Event)
	}{
		{
			name:    "bull token",
			payload: `{"type":"bull_token","token":"Hello","round":1}`,
			check: func(t *testing.T, ev Event) {
				if ev.Type != EventBullToken || ev.Token != "Hello" {
					t.Errorf("got %+v", ev)
				}
				if ev.Round == nil || *ev.Round != 1 {
					t.Errorf("round = %v, want 1", ev.Round)
				}
				if ev.Speaker() != SpeakerBull {
					t.Errorf("speaker = %q", ev.Speaker())
				}
			},
		},
		{
			name:    "referee token has no round",
			payload: `{"type":"referee_token","token":"Weighing..."}`,
			check: func(t *testing.T, ev Event) {
				if ev.Round != nil {
					t.Errorf("round = %v, want nil", ev.Round)
				}
				if ev.Speaker() != SpeakerReferee {
					t.Errorf("speaker = %q", ev.Speaker())
				}
			},
		},
		{
			name:    "bear complete",
			payload: `{"type":"bear_complete","content":"Down bad","confidence":64,"key_points":["rsi","macro"],"round":2}`,
			check: func(t *testing.T, ev Event) {
				if ev.Confidence == nil || *ev.Confidence != 64 {
					t.Errorf("confidence = %v", ev.Confidence)
				}
				if len(ev.KeyPoints) != 2 {
					t.Errorf("key_points = %v", ev.KeyPoints)
				}
			},
		},
		{
			name:    "referee complete",
			payload: `{"type":"referee_complete","content":"Bull wins","winner":"Bull","confidence_score":81,"wager_amount":12.5,"key_factors":["volume"]}`,
			check: func(t *testing.T, ev Event) {
				if ev.Winner != "Bull" || ev.ConfidenceScore == nil || *ev.ConfidenceScore != 81 {
					t.Errorf("got %+v", ev)
				}
				if ev.WagerAmount == nil || *ev.WagerAmount != 12.5 {
					t.Errorf("wager_amount = %v", ev.WagerAmount)
				}
			},
		},
		{
			name:    "hedera",
			payload: `{"type":"hedera","content":"executed","hcs_tx":{"tx_id":"0.0.5@9","tx_type":"HCS_LOG","status":"SUCCESS","hashscan_url":"https://hashscan.io/t","simulation":true},"wager_tx":{"tx_id":"0.0.5@10","tx_type":"HBAR_TRANSFER","status":"SUCCESS","hashscan_url":"https://hashscan.io/w","amount":12.5}}`,
			check: func(t *testing.T, ev Event) {
				if ev.HCSTx == nil || ev.HCSTx.TxID != "0.0.5@9" || !ev.HCSTx.Simulation {
					t.Errorf("hcs_tx = %+v", ev.HCSTx)
				}
				if ev.WagerTx == nil || ev.WagerTx.Amount == nil || *ev.WagerTx.Amount != 12.5 {
					t.Errorf("wager_tx = %+v", ev.WagerTx)
				}
			},
		},
		{
			name:    "system with data",
			payload: `{"type":"system","content":"Fetched market data for HBAR","data":{"price":0.0812,"rsi":61.2}}`,
			check: func(t *testing.T, ev Event) {
				if ev.Data["price"] != 0.0812 {
					t.Errorf("data = %v", ev.Data)
				}
			},
		},
		{
			name:    "done",
			payload: `{"type":"done","status":"completed"}`,
			check: func(t *testing.T, ev Event) {
				if ev.Type != EventDone {
					t.Errorf("type = %q", ev.Type)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseEvent(tt.payload)
			if err != nil {
				t.Fatalf("ParseEvent() failed: %v", err)
			}
			tt.check(t, ev)
		})
	}
}

func TestParseEventErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"truncated json", `{"type":"bull_token","token":`},
		{"not json", `[DONE]`},
		{"missing type", `{"token":"hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEvent(tt.payload); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestStatusSpeaker(t *testing.T) {
	tests := []struct {
		status string
		want   Speaker
	}{
		{"bull_analyzing", SpeakerBull},
		{"bear_analyzing", SpeakerBear},
		{"referee_evaluating", SpeakerReferee},
		{"fetching_market_data", ""},
		{"completed", ""},
		{"", ""},
	}

	for _, tt := range tests {
		ev := Event{Type: EventStatus, Status: tt.status}
		if got := ev.StatusSpeaker(); got != tt.want {
			t.Errorf("StatusSpeaker(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
