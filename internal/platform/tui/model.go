package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
)

// Model is the Bubble Tea model for a survivors session.
type Model struct {
	game       *survivors.Game
	screen     *core.Screen
	view       viewport
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	held       heldInput
	keys       GameKeyMap
	mapper     *KeyMapper
	help       help.Model
	logger     *log.Logger
	phase      survivors.Phase
	autoFire   bool
	mouseFire  bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model driving game.
func NewModel(game *survivors.Game, cfg core.RuntimeConfig, logger *log.Logger) *Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	keys := DefaultGameKeyMap()
	snap := game.Snapshot()
	screenH := max(1, cfg.ScreenH-1) // Last row is the help line

	return &Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, screenH),
		view:       newViewport(cfg.ScreenW, screenH, snap.Width, snap.Height),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		held:       newHeldInput(cfg.TickRate / 6),
		keys:       keys,
		mapper:     NewKeyMapper(keys),
		help:       help.New(),
		logger:     logger,
	}
}

// Init seeds the game and starts the tick loop.
func (m *Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.phase = m.game.Phase()
	m.inputFrame.Aim = m.game.Snapshot().Player.Pos
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Fire):
		m.autoFire = !m.autoFire
		return m, nil
	}

	if dir, ok := m.mapper.Direction(msg); ok {
		m.held.Press(dir)
		return m, nil
	}

	if m.mapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse aims with the pointer and fires while the left button is down.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.inputFrame.Aim = m.view.ToWorld(msg.X, msg.Y)

	if msg.Button != tea.MouseButtonLeft {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.mouseFire = true
	case tea.MouseActionRelease:
		m.mouseFire = false
	}
}

// handleResize rescales the arena. The world is independent of the
// terminal size, so the session continues untouched.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	screenH := max(1, msg.Height-1)
	m.screen.Resize(msg.Width, screenH)

	snap := m.game.Snapshot()
	m.view = newViewport(msg.Width, screenH, snap.Width, snap.Height)
	m.help.Width = msg.Width
}

// handleTick runs one simulation step.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	m.held.Tick()
	m.inputFrame.Move = m.held.Move()
	m.inputFrame.Fire = m.autoFire || m.mouseFire

	phase := m.game.Step(m.inputFrame)
	if phase != m.phase {
		m.logger.Debug("phase changed", "from", m.phase, "to", phase, "tick", m.game.Tick())
		if phase != survivors.PhasePlaying {
			m.held.Release()
			m.mouseFire = false
		}
		m.phase = phase
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("survivors_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m *Model) render() {
	DrawGame(m.screen, m.game.Snapshot(), m.view, m.inputFrame.Aim, m.autoFire)
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for game.
func Run(game *survivors.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer motion aims without a button held
	)

	_, err := p.Run()
	return err
}
