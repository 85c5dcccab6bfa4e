// Package commands handles slash command parsing for the alphaduel TUI.
package commands

import (
	"strconv"
	"strings"
)

// Command interface for all command types
type Command interface {
	Type() string
}

// Help returns help text
type Help struct{}

func (Help) Type() string { return "help" }

// SetSymbol changes the symbol for the next debate
type SetSymbol struct {
	Symbol string
}

func (SetSymbol) Type() string { return "symbol" }

// SetRounds changes the number of debate rounds (1-3)
type SetRounds struct {
	Rounds int
}

func (SetRounds) Type() string { return "rounds" }

// Reset cancels the current session and clears the transcript
type Reset struct{}

func (Reset) Type() string { return "reset" }

// Export exports the current transcript to markdown
type Export struct{}

func (Export) Type() string { return "export" }

// Quit exits the program
type Quit struct{}

func (Quit) Type() string { return "quit" }

// ParseError represents a command parsing error
type ParseError struct {
	Message string
}

func (ParseError) Type() string { return "error" }

// Parse parses user input and returns the appropriate Command.
// Returns nil if the input is not a slash command (a plain debate query).
func Parse(input string) Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/help":
		return Help{}

	case "/symbol":
		if len(args) == 0 {
			return ParseError{Message: "/symbol requires a symbol, e.g. /symbol BTC"}
		}
		return SetSymbol{Symbol: strings.ToUpper(args[0])}

	case "/rounds":
		if len(args) == 0 {
			return ParseError{Message: "/rounds requires a number between 1 and 3"}
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > 3 {
			return ParseError{Message: "/rounds requires a number between 1 and 3"}
		}
		return SetRounds{Rounds: n}

	case "/reset":
		return Reset{}

	case "/export":
		return Export{}

	case "/quit", "/q":
		return Quit{}

	default:
		return ParseError{Message: "unknown command: " + cmd}
	}
}

// HelpText returns the help text for all available commands.
func HelpText() string {
	return `Available commands:
  /help           - Show this help
  /symbol <SYM>   - Set the symbol for the next debate (e.g. /symbol BTC)
  /rounds <1-3>   - Set the number of debate rounds
  /reset          - Cancel the current debate and clear the transcript
  /export         - Export the transcript to markdown
  /quit           - Exit

Anything else is sent to the arena as a debate question.`
}
