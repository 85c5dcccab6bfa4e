// internal/export/markdown.go
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"alphaduel/internal/debate"
)

// ExportSession generates a formatted markdown transcript from a session.
func ExportSession(sess debate.Session) string {
	var sb strings.Builder

	sb.WriteString("# AlphaDuel: ")
	sb.WriteString(sess.Symbol)
	sb.WriteString("\n\n")

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("**Query:** %s\n\n", sess.Query))
	sb.WriteString(fmt.Sprintf("**Status:** %s\n\n", sess.Status))

	if sess.Summary != nil {
		sb.WriteString("## Verdict\n\n")
		if sess.Summary.Winner != "" {
			sb.WriteString(fmt.Sprintf("**Winner:** %s\n\n", sess.Summary.Winner))
		}
		if sess.Summary.ConfidenceScore != nil {
			sb.WriteString(fmt.Sprintf("**Confidence:** %d%%\n\n", *sess.Summary.ConfidenceScore))
		}
		if sess.Summary.WagerAmount != nil {
			sb.WriteString(fmt.Sprintf("**Wager:** %.2f HBAR\n\n", *sess.Summary.WagerAmount))
		}
		writeTxRef(&sb, "HCS log", sess.Summary.HCSTx)
		writeTxRef(&sb, "Wager transfer", sess.Summary.WagerTx)
	}

	sb.WriteString("## Transcript\n\n")

	for _, msg := range sess.Messages {
		sb.WriteString(fmt.Sprintf("### %s\n\n", messageHeading(msg)))
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")

		if len(msg.KeyPoints) > 0 {
			sb.WriteString("Key points:\n\n")
			for _, p := range msg.KeyPoints {
				sb.WriteString(fmt.Sprintf("- %s\n", p))
			}
			sb.WriteString("\n")
		}
		if len(msg.KeyFactors) > 0 {
			sb.WriteString("Key factors:\n\n")
			for _, f := range msg.KeyFactors {
				sb.WriteString(fmt.Sprintf("- %s\n", f))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported %s*\n", time.Now().Format("2006-01-02 15:04:05")))

	return sb.String()
}

func writeTxRef(sb *strings.Builder, label string, tx *debate.TxRef) {
	if tx == nil {
		return
	}
	if tx.HashscanURL != "" {
		sb.WriteString(fmt.Sprintf("**%s:** [`%s`](%s)", label, tx.TxID, tx.HashscanURL))
	} else {
		sb.WriteString(fmt.Sprintf("**%s:** `%s`", label, tx.TxID))
	}
	if tx.Simulation {
		sb.WriteString(" *(simulated)*")
	}
	sb.WriteString("\n\n")
}

func messageHeading(msg debate.Message) string {
	switch msg.Type {
	case debate.MessageBull:
		h := "🐂 Bull"
		if msg.Round > 0 {
			h += fmt.Sprintf(" (round %d)", msg.Round)
		}
		if msg.Confidence != nil {
			h += fmt.Sprintf(" — %d%% confident", *msg.Confidence)
		}
		return h
	case debate.MessageBear:
		h := "🐻 Bear"
		if msg.Round > 0 {
			h += fmt.Sprintf(" (round %d)", msg.Round)
		}
		if msg.Confidence != nil {
			h += fmt.Sprintf(" — %d%% confident", *msg.Confidence)
		}
		return h
	case debate.MessageReferee:
		return "⚖️ Referee"
	case debate.MessageHedera:
		return "Ledger"
	case debate.MessageError:
		return "Error"
	default:
		return "System"
	}
}

// WriteToFile exports a session to a markdown file and returns its path.
func WriteToFile(sess debate.Session, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	filename := fmt.Sprintf("alphaduel-%s-%s.md",
		strings.ToLower(sess.Symbol),
		time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(ExportSession(sess)), 0644); err != nil {
		return "", err
	}
	return path, nil
}
