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
	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/skins"
)

// WardrobeModel lets the player pick the skin each dog wears.
type WardrobeModel struct {
	ctx     context.Context
	svc     *Services
	entries []skins.Entry
	cursor  int
	keys    ListKeyMap
	help    help.Model
	status  statusLine
	width   int
}

// NewWardrobeModel creates the wardrobe screen.
func NewWardrobeModel(ctx context.Context, svc *Services, width int) WardrobeModel {
	return WardrobeModel{
		ctx:     ctx,
		svc:     svc,
		entries: skins.List(ctx, svc.Repo),
		keys:    DefaultListKeyMap(),
		help:    help.New(),
		width:   width,
	}
}

// Init initializes the wardrobe.
func (m WardrobeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the wardrobe.
func (m WardrobeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			return m, navigate(ScreenHub)
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor - 1 + len(m.entries)) % len(m.entries)
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % len(m.entries)
		case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
			return m.toggle()
		}
	case flashMsg:
		m.status.expire(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

// toggle switches the selected dog between its base and alternate skin.
func (m WardrobeModel) toggle() (tea.Model, tea.Cmd) {
	e := m.entries[m.cursor]
	next := progression.SkinAlt
	if e.Equipped == progression.SkinAlt {
		next = progression.SkinBase
	}

	err := skins.Equip(m.ctx, m.svc.Repo, e.Pet.ID, next)
	m.entries = skins.List(m.ctx, m.svc.Repo)

	switch {
	case errors.Is(err, skins.ErrSkinNotOwned):
		return m, m.status.set(fmt.Sprintf("Win %s's alt skin in the daily guess", e.Pet.Name), false)
	case err != nil:
		return m, m.status.set("Could not save, try again", false)
	}
	return m, m.status.set(fmt.Sprintf("%s now wears %s", e.Pet.Name, next), true)
}

// View renders the wardrobe.
func (m WardrobeModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("WARDROBE", m.width)))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, e := range m.entries {
		skin := string(e.Equipped)
		if !e.HasAlt() {
			skin += dimStyle.Render("  (alt locked)")
		}
		line := fmt.Sprintf("%-11s %s", e.Pet.Name, skin)
		if i == m.cursor {
			list.WriteString(cursorStyle.Render("> ") + line)
		} else {
			list.WriteString("  " + line)
		}
		if i < len(m.entries)-1 {
			list.WriteString("\n")
		}
	}

	e := m.entries[m.cursor]
	var preview strings.Builder
	for _, skin := range []progression.Skin{progression.SkinBase, progression.SkinAlt} {
		sprite := catch.SpriteFor(e.Pet.ID, skin)
		preview.WriteString(dimStyle.Render(string(skin)))
		preview.WriteString("\n")
		for _, l := range sprite.Lines {
			preview.WriteString(colorStyles[sprite.Color].Render(l))
			preview.WriteString("\n")
		}
	}

	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(list.String()),
		"  ",
		panelStyle.Render(strings.TrimSuffix(preview.String(), "\n")),
	), m.width))
	b.WriteString("\n\n")

	if s := m.status.View(); s != "" {
		b.WriteString(centerText(s, m.width))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}
