// Package tui provides the Bubble Tea front end of the 2048 client.
// It renders the engine's published board and feeds resolved input back
// into the engine.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Dispatcher is the part of the engine the UI drives.
type Dispatcher interface {
	Dispatch(a core.Action) error
	State() core.BoardState
	Pending() int
}

// ResolutionMsg carries one engine resolution into the Bubble Tea loop.
type ResolutionMsg engine.Resolution

// Model is the Bubble Tea model of the game screen.
type Model struct {
	engine  Dispatcher
	events  <-chan engine.Resolution
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	theme   Theme

	state    core.BoardState
	pending  int
	lastErr  error
	width    int
	height   int
	quitting bool
}

// NewModel creates a model reading resolutions from events.
func NewModel(d Dispatcher, events <-chan engine.Resolution) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	h := help.New()
	h.ShowAll = false

	m := Model{
		engine:  d,
		events:  events,
		keys:    DefaultKeyMap(),
		help:    h,
		spinner: s,
		theme:   DefaultTheme(),
		state:   d.State(),
		pending: d.Pending(),
	}
	m.spinner.Style = m.theme.Busy
	return m
}

// Init starts listening for engine resolutions.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForResolution(), m.spinner.Tick)
}

// waitForResolution returns a command that waits for the next resolution.
func (m Model) waitForResolution() tea.Cmd {
	return func() tea.Msg {
		if m.events == nil {
			return nil
		}
		res, ok := <-m.events
		if !ok {
			return nil
		}
		return ResolutionMsg(res)
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ResolutionMsg:
		m.state = msg.State
		m.lastErr = msg.Err
		m.pending = m.engine.Pending()
		return m, m.waitForResolution()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if action, ok := resolveKeyMsg(msg); ok {
		m.dispatch(action)
	}
	return m, nil
}

// handleMouse activates the new game control on a left click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if newGameHit(msg.X, msg.Y) {
		m.dispatch(core.Reset())
	}
	return m, nil
}

func (m *Model) dispatch(a core.Action) {
	if err := m.engine.Dispatch(a); err != nil {
		m.lastErr = err
		return
	}
	m.pending = m.engine.Pending()
}

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Run subscribes to eng, starts it, and runs the game screen until the
// player quits or ctx is cancelled. The engine is closed on return.
func Run(ctx context.Context, eng *engine.Engine) error {
	events := make(chan engine.Resolution, 16)
	done := make(chan struct{})

	unsubscribe := eng.Subscribe(func(r engine.Resolution) {
		select {
		case events <- r:
		case <-done:
		}
	})
	defer eng.Close()
	defer unsubscribe()
	defer close(done)

	if err := eng.Start(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(
		NewModel(eng, events),
		tea.WithContext(ctx),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks on the new game control
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
