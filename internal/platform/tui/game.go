package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pawpark/internal/core"
	"github.com/vovakirdan/pawpark/internal/games/catch"
)

// nudgeCells is how far one arrow key press moves the dog.
const nudgeCells = 3

// GameModel hosts one catch session. The session lives as long as the
// screen; leaving the screen closes it and commits the bones.
type GameModel struct {
	ctx     context.Context
	svc     *Services
	session *catch.Session
	screen  *core.Screen
	keys    GameKeyMap
	help    help.Model

	// gen tags the ticks of the current run.
	gen   int
	drag  bool
	dragX int

	width  int
	height int
}

// NewGameModel mounts a session sized for a width by height terminal. The
// bottom line is kept for the key help.
func NewGameModel(ctx context.Context, svc *Services, width, height int) GameModel {
	rows := max(0, height-1)
	return GameModel{
		ctx:     ctx,
		svc:     svc,
		session: svc.NewCatchSession(ctx, width, rows),
		screen:  core.NewScreen(width, rows),
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
}

// Init starts the first run.
func (m GameModel) Init() tea.Cmd {
	m.session.Start()
	return m.schedule()
}

func (m GameModel) schedule() tea.Cmd {
	geo := m.session.Geometry()
	return tea.Batch(
		spawnCmd(m.gen, geo.SpawnInterval),
		simCmd(m.gen, geo.TickInterval),
	)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil
	case spawnMsg:
		if msg.gen != m.gen || m.session.State() != catch.StateRunning {
			return m, nil
		}
		m.session.SpawnTick()
		return m, spawnCmd(m.gen, m.session.Geometry().SpawnInterval)
	case simMsg:
		if msg.gen != m.gen || m.session.State() != catch.StateRunning {
			return m, nil
		}
		if _, ended := m.session.SimTick(m.ctx); ended {
			m.gen++
			m.drag = false
			return m, nil
		}
		return m, simCmd(m.gen, m.session.Geometry().TickInterval)
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := nudgeCells * m.session.Geometry().CellW

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Close(m.ctx)
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.session.Close(m.ctx)
		m.gen++
		return m, navigate(ScreenHub)
	case key.Matches(msg, m.keys.Left):
		m.session.Nudge(-step)
	case key.Matches(msg, m.keys.Right):
		m.session.Nudge(step)
	case key.Matches(msg, m.keys.Restart):
		if m.session.Restart() {
			m.gen++
			return m, m.schedule()
		}
	}
	return m, nil
}

// handleMouse maps a drag across the terminal onto the player controller.
// Columns convert to field units at the cell width.
func (m GameModel) handleMouse(msg tea.MouseMsg) GameModel {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		m.drag = true
		m.dragX = msg.X
		m.session.Begin()
	case tea.MouseActionMotion:
		if !m.drag {
			return m
		}
		m.session.Move(float64(msg.X-m.dragX) * m.session.Geometry().CellW)
	case tea.MouseActionRelease:
		m.drag = false
	}
	return m
}

func (m GameModel) resize(width, height int) GameModel {
	m.width, m.height = width, height
	rows := max(0, height-1)
	m.screen.Resize(width, rows)
	m.session.Resize(catch.TerminalGeometry(m.svc.Catch, width, rows))
	m.help.Width = width
	return m
}

// View renders the field, the game-over panel once the run has ended, and
// the key help.
func (m GameModel) View() string {
	geo := m.session.Geometry()
	catch.Render(m.screen, m.session.Snapshot(), geo)
	if !geo.Measured() {
		m.screen.DrawTextCentered(m.screen.Height()/2, "Make the window wider to play")
	}
	if out, ended := m.session.Outcome(); ended {
		drawGameOver(m.screen, out)
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// drawGameOver draws the end-of-run panel in the middle of the field.
func drawGameOver(s *core.Screen, out catch.Outcome) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Bones caught  %d", out.Collected),
		fmt.Sprintf("Total bones   %d", out.Total),
	}
	if out.Best > 0 {
		lines = append(lines, fmt.Sprintf("Best run      %d", out.Best))
	}
	if !out.Committed() {
		lines = append(lines, "", "Could not save your bones")
	}
	lines = append(lines, "", "r: play again   esc: hub")

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := core.NewRect((s.Width()-w-4)/2, (s.Height()-len(lines)-2)/2, w+4, len(lines)+2)
	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box)

	for i, l := range lines {
		color := core.ColorBrightWhite
		switch {
		case i == 0:
			color = core.ColorYellow
		case l == "Could not save your bones":
			color = core.ColorOrange
		}
		x := box.X + 2 + (w-len([]rune(l)))/2
		s.DrawTextColor(x, box.Y+1+i, l, color)
	}
}
