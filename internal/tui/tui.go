package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/gofish/internal/deck"
	"github.com/lox/gofish/internal/game"
)

// Screen is the part of the session being shown
type Screen int

const (
	ScreenName Screen = iota
	ScreenPlay
	ScreenGameOver
)

// EngineFactory builds an engine for the player name entered on the name screen
type EngineFactory func(playerName string) (*game.Engine, error)

const (
	namePlaceholder   = "Enter your name"
	askPlaceholder    = "Enter the card you want to ask for (e.g. dog)"
	replayPlaceholder = "Play again? y/n"
	nameWarning       = "Please enter your name!"
	replayWarning     = "Please answer y or n."
)

// Model is the Bubble Tea model for a Go Fish session. All engine calls happen
// inside Update, so the engine is only ever touched from one goroutine.
type Model struct {
	newEngine EngineFactory
	engine    *game.Engine
	logger    *log.Logger

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	screen      Screen
	gameLog     []string
	warning     string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width  int
	height int
}

// NewModel creates the model. defaultName pre-fills the name screen.
func NewModel(factory EngineFactory, logger *log.Logger, defaultName string) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = namePlaceholder
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 50
	ti.PromptStyle = lipgloss.NewStyle().Foreground(promptColour).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "
	ti.SetValue(defaultName)

	return &Model{
		newEngine:   factory,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		screen:      ScreenName,
		gameLog:     []string{},
		focusedPane: 1,
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// OnEvent implements game.EventSubscriber by appending to the log pane
func (m *Model) OnEvent(event game.Event) {
	m.AddLogEntry(event.Message)
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.quit()
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				value := m.input.Value()
				m.input.SetValue("")
				if cmd := m.submit(value); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.logger.Info("Quitting")
	return tea.Sequence(tea.ClearScreen, tea.Quit)
}

// submit routes the entered text to the current screen. A non-nil command
// ends the session.
func (m *Model) submit(value string) tea.Cmd {
	m.warning = ""
	switch m.screen {
	case ScreenName:
		m.startSession(value)
	case ScreenPlay:
		m.playHumanTurn(value)
	case ScreenGameOver:
		return m.answerReplay(value)
	}
	return nil
}

func (m *Model) startSession(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		m.warning = nameWarning
		return
	}

	engine, err := m.newEngine(name)
	if err != nil {
		m.logger.Warn("Could not start game", "error", err)
		m.warning = nameWarning
		return
	}
	m.engine = engine
	m.engine.Events().Subscribe(m)
	m.logger.Info("Session started", "player", name)

	m.screen = ScreenPlay
	m.input.Placeholder = askPlaceholder
	m.engine.Welcome()
	m.promptHuman()
}

// promptHuman shows the human's hand, passing their turn when they have no
// cards to ask with
func (m *Model) promptHuman() {
	if m.engine.Human().HandSize() == 0 {
		if _, err := m.engine.SkipHumanTurn(); err != nil {
			m.logger.Error("Failed to pass empty-handed turn", "error", err)
			return
		}
		m.playComputerTurn()
		return
	}
	m.engine.AnnounceHand()
}

func (m *Model) playHumanTurn(input string) {
	res, err := m.engine.HumanTurnInput(input)
	if errors.Is(err, game.ErrInvalidChoice) {
		m.logger.Debug("Rejected request", "input", input)
		return
	}
	if err != nil {
		m.logger.Error("Unexpected turn error", "error", err)
		return
	}
	if res.Winner != nil {
		m.endGame(res.Winner)
		return
	}
	m.playComputerTurn()
}

func (m *Model) playComputerTurn() {
	res, err := m.engine.ComputerTurn()
	if err != nil {
		m.logger.Error("Unexpected computer turn error", "error", err)
		return
	}
	if res.Winner != nil {
		m.endGame(res.Winner)
		return
	}
	m.promptHuman()
}

func (m *Model) endGame(winner *game.Player) {
	m.screen = ScreenGameOver
	m.input.Placeholder = replayPlaceholder
	m.AddLogEntry(fmt.Sprintf("%s wins! Do you want to play again? (y/n)", winner.Name))
}

func (m *Model) answerReplay(answer string) tea.Cmd {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		m.engine.StartNewGame()
		m.screen = ScreenPlay
		m.input.Placeholder = askPlaceholder
		m.promptHuman()
		return nil
	case "n", "no":
		return m.quit()
	default:
		m.warning = replayWarning
		return nil
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.screen == ScreenName {
		return m.renderNameScreen()
	}

	header := HeaderStyle.Render(" Go Fish ")
	headerHeight := lipgloss.Height(header)

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paneBorder).
		Width(atLeastOne(m.width - 2))
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(focusBorder)
	}
	actionPane := actionStyle.Render(actionContent)

	bodyHeight := atLeastOne(m.height - headerHeight - actionHeight - 4)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paneBorder).
		Width(sidebarWidth).
		Height(bodyHeight).
		Render(sidebarContent)

	logWidth := atLeastOne(m.width - sidebarWidth - 4)
	m.logViewport.Width = logWidth
	m.logViewport.Height = bodyHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paneBorder).
		Width(logWidth).
		Height(bodyHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(focusBorder)
	}
	logPane := logStyle.Render(m.logViewport.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, actionPane)
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func (m *Model) renderNameScreen() string {
	var content strings.Builder
	content.WriteString(HeaderStyle.Render(" Go Fish Game "))
	content.WriteString("\n\n")
	content.WriteString("Enter your name:\n")
	content.WriteString(m.input.View())
	content.WriteString("\n")
	if m.warning != "" {
		content.WriteString(WarningStyle.Render(m.warning))
		content.WriteString("\n")
	}
	content.WriteString(InfoStyle.Render("Enter to start • Ctrl+C to quit"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content.String())
}

// renderSidebarPane shows the human's hand grouped by kind and the table counts
func (m *Model) renderSidebarPane() string {
	var content strings.Builder
	human := m.engine.Human()
	computer := m.engine.Computer()

	content.WriteString(HandInfoStyle.Render(human.Name))
	content.WriteString("\n")
	for _, line := range handSummary(human) {
		content.WriteString("  ")
		content.WriteString(CardStyle.Render(line))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(fmt.Sprintf("%s: %d cards", computer.Name, computer.HandSize())))
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(fmt.Sprintf("Deck: %d cards", m.engine.DeckRemaining())))
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(fmt.Sprintf("Game: %d", m.engine.Round())))
	return content.String()
}

// handSummary lists held kinds in canonical order with their counts
func handSummary(p *game.Player) []string {
	var lines []string
	for _, a := range deck.Animals() {
		if n := p.Count(a); n > 0 {
			lines = append(lines, fmt.Sprintf("%-10s x%d", a, n))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "(no cards)")
	}
	return lines
}

func (m *Model) renderActionPane() string {
	var content strings.Builder

	switch m.screen {
	case ScreenPlay:
		content.WriteString(HandInfoStyle.Render("Enter the card you want to ask for:"))
	case ScreenGameOver:
		if w := m.engine.Winner(); w != nil {
			content.WriteString(SuccessStyle.Render(fmt.Sprintf("%s wins! Do you want to play again?", w.Name)))
		}
	}
	content.WriteString("\n")
	content.WriteString(m.input.View())
	content.WriteString("\n")

	if m.warning != "" {
		content.WriteString(ErrorStyle.Render(m.warning))
		content.WriteString("\n")
	}

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

// AddLogEntry adds an entry to the game log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns a copy of the game log
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// Screen returns the current screen
func (m *Model) Screen() Screen { return m.screen }

// Warning returns the warning shown under the input, if any
func (m *Model) Warning() string { return m.warning }

// Engine returns the running engine, or nil before a name was entered
func (m *Model) Engine() *game.Engine { return m.engine }
