package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pawpark/internal/core"
)

// Screen identifies one of the pawpark screens.
type Screen int

// Screens.
const (
	ScreenHub Screen = iota
	ScreenGame
	ScreenMarket
	ScreenWardrobe
	ScreenGuess
	ScreenScores
)

func (s Screen) String() string {
	switch s {
	case ScreenGame:
		return "game"
	case ScreenMarket:
		return "market"
	case ScreenWardrobe:
		return "wardrobe"
	case ScreenGuess:
		return "guess"
	case ScreenScores:
		return "scores"
	default:
		return "hub"
	}
}

// ParseScreen maps a command name onto a screen.
func ParseScreen(name string) (Screen, error) {
	switch name {
	case "", "hub":
		return ScreenHub, nil
	case "play", "game":
		return ScreenGame, nil
	case "shop", "market":
		return ScreenMarket, nil
	case "skins", "wardrobe":
		return ScreenWardrobe, nil
	case "guess":
		return ScreenGuess, nil
	case "scores":
		return ScreenScores, nil
	}
	return ScreenHub, fmt.Errorf("tui: unknown screen %q", name)
}

// navMsg asks the app to switch screens.
type navMsg struct{ to Screen }

func navigate(to Screen) tea.Cmd {
	return func() tea.Msg { return navMsg{to: to} }
}

// App is the top-level model: it owns the active screen and switches between
// screens on request. One App serves one player.
type App struct {
	ctx     context.Context
	svc     *Services
	current Screen
	active  tea.Model
	width   int
	height  int
}

// NewApp creates an app that opens on start.
func NewApp(ctx context.Context, svc *Services, start Screen, width, height int) App {
	m := App{ctx: ctx, svc: svc, width: width, height: height}
	m.current = start
	m.active = m.build(start)
	return m
}

func (m App) build(s Screen) tea.Model {
	switch s {
	case ScreenGame:
		return NewGameModel(m.ctx, m.svc, m.width, m.height)
	case ScreenMarket:
		return NewMarketModel(m.ctx, m.svc, m.width)
	case ScreenWardrobe:
		return NewWardrobeModel(m.ctx, m.svc, m.width)
	case ScreenGuess:
		return NewGuessModel(m.ctx, m.svc, m.width)
	case ScreenScores:
		return NewScoreboardModel(m.ctx, m.svc.History, m.svc.Player, m.width, m.height)
	default:
		return NewHubModel(m.ctx, m.svc, m.width, m.height)
	}
}

// Init initializes the first screen.
func (m App) Init() tea.Cmd {
	return m.active.Init()
}

// Update routes messages to the active screen.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case navMsg:
		m.svc.Logger.Debug("screen change", "from", m.current, "to", msg.to, "player", m.svc.Player)
		m.current = msg.to
		m.active = m.build(msg.to)
		return m, m.active.Init()
	}

	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, cmd
}

// View renders the active screen.
func (m App) View() string {
	return m.active.View()
}

// Current returns the active screen.
func (m App) Current() Screen {
	return m.current
}

// Run runs the app in the local terminal until the player quits. A session
// still running at exit is closed so its bones are kept.
func Run(ctx context.Context, svc *Services, start Screen, rc core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewApp(ctx, svc, start, rc.ScreenW, rc.ScreenH),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	svc.CloseActive(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
