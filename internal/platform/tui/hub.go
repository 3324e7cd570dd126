package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pawpark/internal/games/catch"
	"github.com/vovakirdan/pawpark/internal/pets"
	"github.com/vovakirdan/pawpark/internal/progression"
)

// HubModel is the home screen: the kennel with every dog, their needs and
// the supplies, plus the way into every other screen.
type HubModel struct {
	ctx      context.Context
	svc      *Services
	keys     HubKeyMap
	help     help.Model
	progress progression.Progress
	cursor   int
	status   statusLine
	width    int
	height   int
}

// NewHubModel creates the hub.
func NewHubModel(ctx context.Context, svc *Services, width, height int) HubModel {
	h := help.New()
	h.Width = width
	m := HubModel{
		ctx:    ctx,
		svc:    svc,
		keys:   DefaultHubKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.progress = svc.Repo.Snapshot(ctx)
	return m
}

// Init initializes the hub.
func (m HubModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the hub.
func (m HubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case flashMsg:
		m.status.expire(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m HubModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(progression.Catalog)) % len(progression.Catalog)
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(progression.Catalog)
	case key.Matches(msg, m.keys.Feed):
		return m.care(progression.Food)
	case key.Matches(msg, m.keys.Water):
		return m.care(progression.Water)
	case key.Matches(msg, m.keys.Play):
		return m, navigate(ScreenGame)
	case key.Matches(msg, m.keys.Market):
		return m, navigate(ScreenMarket)
	case key.Matches(msg, m.keys.Skins):
		return m, navigate(ScreenWardrobe)
	case key.Matches(msg, m.keys.Guess):
		return m, navigate(ScreenGuess)
	case key.Matches(msg, m.keys.Scores):
		return m, navigate(ScreenScores)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// care feeds or waters the selected dog.
func (m HubModel) care(supply progression.Supply) (tea.Model, tea.Cmd) {
	pet := progression.Catalog[m.cursor]

	var err error
	if supply == progression.Food {
		_, _, err = m.svc.Care.Feed(m.ctx, pet.ID)
	} else {
		_, _, err = m.svc.Care.Water(m.ctx, pet.ID)
	}

	var cmd tea.Cmd
	switch {
	case err == nil && supply == progression.Food:
		cmd = m.status.set(fmt.Sprintf("%s enjoyed the food", pet.Name), true)
	case err == nil:
		cmd = m.status.set(fmt.Sprintf("%s had a drink", pet.Name), true)
	case errors.Is(err, pets.ErrLocked):
		cmd = m.status.set(fmt.Sprintf("%s lives in the market for now", pet.Name), false)
	case errors.Is(err, pets.ErrOutOfStock):
		cmd = m.status.set(fmt.Sprintf("Out of %s, buy more in the market", supply), false)
	default:
		cmd = m.status.set("Could not save, try again", false)
	}
	m.progress = m.svc.Repo.Snapshot(m.ctx)
	return m, cmd
}

func (m HubModel) unlocked(id progression.PetID) bool {
	for _, u := range m.progress.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// View renders the hub.
func (m HubModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(centerText("PAWPARK", m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("%s   food %d   water %d",
		boneStyle.Render(fmt.Sprintf("bones %d", m.progress.Bones)),
		m.progress.Food, m.progress.Water), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.kennelView()),
		"  ",
		panelStyle.Render(m.petView()),
	), m.width))
	b.WriteString("\n\n")

	if s := m.status.View(); s != "" {
		b.WriteString(centerText(s, m.width))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HubModel) kennelView() string {
	var b strings.Builder
	b.WriteString("Kennel\n")
	for i, p := range progression.Catalog {
		line := p.Name
		if !m.unlocked(p.ID) {
			line = dimStyle.Render(fmt.Sprintf("%s (%d)", p.Name, p.Price))
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m HubModel) petView() string {
	pet := progression.Catalog[m.cursor]
	skin := m.progress.Equipped[pet.ID]
	sprite := catch.SpriteFor(pet.ID, skin)

	var b strings.Builder
	b.WriteString(cursorStyle.Render(pet.Name))
	b.WriteString("\n\n")
	for _, l := range sprite.Lines {
		b.WriteString(colorStyles[sprite.Color].Render(l))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if !m.unlocked(pet.ID) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Adopt for %d bones", pet.Price)))
		return b.String()
	}
	needs := m.svc.Care.Needs(pet.ID)
	fmt.Fprintf(&b, "hunger %s %3d\n", meter(needs.Hunger), needs.Hunger)
	fmt.Fprintf(&b, "thirst %s %3d", meter(needs.Thirst), needs.Thirst)
	return b.String()
}
