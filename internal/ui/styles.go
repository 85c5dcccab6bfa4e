// internal/ui/styles.go
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Green   = lipgloss.Color("#00FF00")
	Red     = lipgloss.Color("#FF6B6B")
	Gold    = lipgloss.Color("#FFD700")
	Magenta = lipgloss.Color("#FF00FF")
	Cyan    = lipgloss.Color("#00FFFF")
	SkyBlue = lipgloss.Color("#87CEEB")
	Dim     = lipgloss.Color("#555555")
	White   = lipgloss.Color("#FFFFFF")

	// Speaker colors
	BullColor    = Green
	BearColor    = Red
	RefereeColor = Gold
	HederaColor  = Magenta
	SystemColor  = SkyBlue

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan)

	SystemStyle = lipgloss.NewStyle().
			Foreground(SkyBlue)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(Dim)

	// Verdict card
	VerdictBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gold).
			Padding(0, 1)

	// Input area
	InputBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Dim)
)

// SpeakerStyle returns the style for a transcript message source.
func SpeakerStyle(source string) lipgloss.Style {
	switch source {
	case "bull":
		return lipgloss.NewStyle().Foreground(BullColor).Bold(true)
	case "bear":
		return lipgloss.NewStyle().Foreground(BearColor).Bold(true)
	case "referee":
		return lipgloss.NewStyle().Foreground(RefereeColor).Bold(true)
	case "hedera":
		return lipgloss.NewStyle().Foreground(HederaColor).Bold(true)
	case "system":
		return SystemStyle
	case "error":
		return ErrorStyle
	default:
		return lipgloss.NewStyle().Foreground(White)
	}
}
