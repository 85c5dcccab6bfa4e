// internal/ui/transcript.go
package ui

import (
	"fmt"
	"strings"

	"alphaduel/internal/debate"
)

// RenderTranscript renders the message list of a session snapshot.
func RenderTranscript(sess debate.Session) string {
	var sb strings.Builder

	for _, msg := range sess.Messages {
		style := SpeakerStyle(string(msg.Type))
		sb.WriteString(style.Render(messageHeader(msg)))
		sb.WriteString("\n")

		for _, line := range strings.Split(msg.Content, "\n") {
			sb.WriteString("  ")
			if msg.Type == debate.MessageError {
				sb.WriteString(ErrorStyle.Render(line))
			} else {
				sb.WriteString(line)
			}
			sb.WriteString("\n")
		}

		if len(msg.KeyPoints) > 0 {
			for _, p := range msg.KeyPoints {
				sb.WriteString(DimStyle.Render("  • " + p))
				sb.WriteString("\n")
			}
		}

		if msg.Type == debate.MessageHedera {
			writeTxLine(&sb, "HCS", msg.HCSTx)
			writeTxLine(&sb, "Wager", msg.WagerTx)
		}

		sb.WriteString("\n")
	}

	if card := renderVerdict(sess); card != "" {
		sb.WriteString(card)
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeTxLine(sb *strings.Builder, label string, tx *debate.TxRef) {
	if tx == nil {
		return
	}
	line := fmt.Sprintf("  %s %s", label, tx.TxID)
	if tx.Simulation {
		line += " (simulated)"
	}
	if tx.HashscanURL != "" {
		line += "  " + tx.HashscanURL
	}
	sb.WriteString(DimStyle.Render(line))
	sb.WriteString("\n")
}

func messageHeader(msg debate.Message) string {
	switch msg.Type {
	case debate.MessageBull:
		return speakerHeader("Bull", msg)
	case debate.MessageBear:
		return speakerHeader("Bear", msg)
	case debate.MessageReferee:
		if msg.Winner != "" {
			return fmt.Sprintf("Referee — winner: %s", msg.Winner)
		}
		return "Referee"
	case debate.MessageHedera:
		return "Hedera"
	case debate.MessageError:
		return "Error"
	default:
		return "System"
	}
}

func speakerHeader(name string, msg debate.Message) string {
	h := name
	if msg.Round > 0 {
		h += fmt.Sprintf(" · round %d", msg.Round)
	}
	if msg.Confidence != nil {
		h += fmt.Sprintf(" · %d%%", *msg.Confidence)
	} else {
		h += " · …"
	}
	return h
}

// renderVerdict renders the summary card once a verdict exists.
func renderVerdict(sess debate.Session) string {
	sum := sess.Summary
	if sum == nil || sum.Winner == "" {
		return ""
	}

	var lines []string
	lines = append(lines, TitleStyle.Render("VERDICT"))
	lines = append(lines, fmt.Sprintf("Winner: %s", SpeakerStyle(strings.ToLower(sum.Winner)).Render(sum.Winner)))
	if sum.ConfidenceScore != nil {
		lines = append(lines, fmt.Sprintf("Confidence: %d%%", *sum.ConfidenceScore))
	}
	if sum.WagerAmount != nil {
		lines = append(lines, fmt.Sprintf("Wager: %.2f HBAR", *sum.WagerAmount))
	}
	if sum.HCSTx != nil {
		lines = append(lines, DimStyle.Render("HCS: "+sum.HCSTx.TxID))
	}
	if sum.WagerTx != nil {
		lines = append(lines, DimStyle.Render("Transfer: "+sum.WagerTx.TxID))
	}

	return VerdictBox.Render(strings.Join(lines, "\n"))
}

// speakerLabel names the speaker for the liveness line.
func speakerLabel(s debate.Speaker) string {
	switch s {
	case debate.SpeakerBull:
		return "Bull"
	case debate.SpeakerBear:
		return "Bear"
	case debate.SpeakerReferee:
		return "Referee"
	default:
		return ""
	}
}
