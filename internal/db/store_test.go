// internal/db/store_test.go
package db

import (
	"os"
	"testing"

	"alphaduel/internal/debate"
)

func TestStore(t *testing.T) {
	// Use temp dir for test
	os.Setenv("XDG_DATA_HOME", t.TempDir())

	store, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	confidence := 70
	score := 78
	wager := 25.0
	sess := debate.Session{
		Status: debate.StatusCompleted,
		Symbol: "HBAR",
		Query:  "will it break resistance",
		Messages: []debate.Message{
			{Type: debate.MessageSystem, Content: "Fetched market data for HBAR"},
			{Type: debate.MessageBull, Content: "Up only", Round: 1, Confidence: &confidence},
			{Type: debate.MessageReferee, Content: "Bull wins", Winner: "Bull", ConfidenceScore: &score},
		},
		Summary: &debate.Summary{
			Winner:          "Bull",
			ConfidenceScore: &score,
			WagerAmount:     &wager,
			HCSTx:           &debate.TxRef{TxID: "0.0.12345@99"},
		},
	}

	id, err := store.SaveSession(sess)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session ID")
	}

	rec, err := store.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession() failed: %v", err)
	}
	if rec.Winner != "Bull" || rec.ConfidenceScore != 78 || rec.WagerAmount != 25.0 {
		t.Errorf("record = %+v", rec)
	}
	if rec.HCSTxID != "0.0.12345@99" {
		t.Errorf("HCS tx id = %s", rec.HCSTxID)
	}

	messages, err := store.GetMessages(id)
	if err != nil {
		t.Fatalf("GetMessages() failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[1].MsgType != "bull" || messages[1].Round != 1 {
		t.Errorf("bull row = %+v", messages[1])
	}

	records, err := store.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 session, got %d", len(records))
	}
}
