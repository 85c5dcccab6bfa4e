// internal/ui/app.go
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"alphaduel/internal/commands"
	"alphaduel/internal/db"
	"alphaduel/internal/debate"
	"alphaduel/internal/export"
	"alphaduel/internal/session"
)

// sessionMsg carries a fresh session snapshot from the controller.
type sessionMsg debate.Session

// Model is the top-level bubbletea model for the debate arena.
type Model struct {
	controller *session.Controller
	store      *db.Store // nil when history is disabled
	symbols    []string  // backend-supported symbols, empty if unknown

	symbol string
	rounds int

	width, height int
	ready         bool

	input textinput.Model
	vp    viewport.Model
	spin  spinner.Model

	sess     debate.Session
	archived bool
	notice   string
}

// New creates the arena model.
func New(controller *session.Controller, store *db.Store, symbol string, rounds int, symbols []string) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask the arena… (/help for commands)"
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Gold)

	return Model{
		controller: controller,
		store:      store,
		symbols:    symbols,
		symbol:     symbol,
		rounds:     rounds,
		input:      ti,
		spin:       sp,
		sess:       controller.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.listen())
}

// listen waits for the next published snapshot.
func (m Model) listen() tea.Cmd {
	updates := m.controller.Updates()
	return func() tea.Msg {
		return sessionMsg(<-updates)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.controller.Reset()
			return m, tea.Quit
		case "enter":
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := max(msg.Height-6, 3)
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.vp.MouseWheelEnabled = true
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.refresh()
		return m, nil

	case sessionMsg:
		m.sess = debate.Session(msg)
		m.maybeArchive()
		m.refresh()
		return m, m.listen()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit handles the enter key: slash commands or a new debate query.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()
	m.notice = ""

	cmd := commands.Parse(text)
	if cmd == nil {
		m.archived = false
		m.controller.Start(text, m.symbol)
		return m, nil
	}

	switch c := cmd.(type) {
	case commands.Help:
		m.notice = commands.HelpText()
	case commands.SetSymbol:
		if !m.symbolSupported(c.Symbol) {
			m.notice = fmt.Sprintf("unsupported symbol: %s", c.Symbol)
			break
		}
		m.symbol = c.Symbol
		m.notice = fmt.Sprintf("symbol set to %s", c.Symbol)
	case commands.SetRounds:
		m.rounds = c.Rounds
		m.controller.SetMaxRounds(c.Rounds)
		m.notice = fmt.Sprintf("debates will run %d round(s)", c.Rounds)
	case commands.Reset:
		m.controller.Reset()
		m.archived = false
	case commands.Export:
		path, err := export.WriteToFile(m.sess, "")
		if err != nil {
			m.notice = fmt.Sprintf("export failed: %v", err)
		} else {
			m.notice = "exported to " + path
		}
	case commands.Quit:
		m.controller.Reset()
		return m, tea.Quit
	case commands.ParseError:
		m.notice = c.Message
	}

	m.refresh()
	return m, nil
}

// symbolSupported validates against the backend's list when we have one.
func (m Model) symbolSupported(symbol string) bool {
	if len(m.symbols) == 0 {
		return true
	}
	for _, s := range m.symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// maybeArchive saves a completed session once.
func (m *Model) maybeArchive() {
	if m.store == nil || m.archived {
		return
	}
	if m.sess.Status != debate.StatusCompleted {
		return
	}
	if _, err := m.store.SaveSession(m.sess); err != nil {
		m.notice = fmt.Sprintf("archive failed: %v", err)
		return
	}
	m.archived = true
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(RenderTranscript(m.sess))
	m.vp.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("ALPHADUEL"))
	sb.WriteString(DimStyle.Render(fmt.Sprintf("  %s · %d round(s)", m.symbol, m.rounds)))
	sb.WriteString("\n")
	sb.WriteString(m.vp.View())
	sb.WriteString("\n")
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString(InputBox.Width(max(m.width-2, 10)).Render(m.input.View()))

	if m.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(DimStyle.Render(m.notice))
	}

	return sb.String()
}

func (m Model) statusLine() string {
	switch m.sess.Status {
	case debate.StatusLoading:
		return m.spin.View() + DimStyle.Render(" contacting the arena…")
	case debate.StatusDebating:
		if label := speakerLabel(m.sess.CurrentSpeaker); label != "" {
			return m.spin.View() + SpeakerStyle(string(m.sess.CurrentSpeaker)).Render(" "+label) + DimStyle.Render(" is speaking…")
		}
		return m.spin.View() + DimStyle.Render(" debating…")
	case debate.StatusCompleted:
		return DimStyle.Render("debate complete")
	case debate.StatusError:
		return ErrorStyle.Render("debate failed")
	default:
		return DimStyle.Render("idle")
	}
}
