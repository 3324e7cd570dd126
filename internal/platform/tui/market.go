package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/shop"
)

// marketItem is one row of the market: a supply or a dog.
type marketItem struct {
	label  string
	price  int
	supply progression.Supply
	pet    progression.PetID
}

func marketItems() []marketItem {
	items := []marketItem{
		{label: "Food", price: shop.SupplyPrice, supply: progression.Food},
		{label: "Water", price: shop.SupplyPrice, supply: progression.Water},
	}
	for _, p := range progression.Catalog {
		if p.Price == 0 {
			continue
		}
		items = append(items, marketItem{label: p.Name, price: p.Price, pet: p.ID})
	}
	return items
}

// MarketModel sells supplies and dogs for bones.
type MarketModel struct {
	ctx      context.Context
	svc      *Services
	items    []marketItem
	cursor   int
	progress progression.Progress
	keys     ListKeyMap
	help     help.Model
	status   statusLine
	width    int
}

// NewMarketModel creates the market screen.
func NewMarketModel(ctx context.Context, svc *Services, width int) MarketModel {
	return MarketModel{
		ctx:      ctx,
		svc:      svc,
		items:    marketItems(),
		progress: svc.Repo.Snapshot(ctx),
		keys:     DefaultListKeyMap(),
		help:     help.New(),
		width:    width,
	}
}

// Init initializes the market.
func (m MarketModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the market.
func (m MarketModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			return m, navigate(ScreenHub)
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % len(m.items)
		case key.Matches(msg, m.keys.Select):
			return m.buy()
		}
	case flashMsg:
		m.status.expire(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MarketModel) buy() (tea.Model, tea.Cmd) {
	item := m.items[m.cursor]

	var (
		r   shop.Receipt
		err error
	)
	if item.pet != "" {
		r, err = m.svc.Shop.BuyPet(m.ctx, item.pet)
	} else {
		r, err = m.svc.Shop.BuySupply(m.ctx, item.supply)
	}
	m.progress = m.svc.Repo.Snapshot(m.ctx)

	var cmd tea.Cmd
	switch {
	case errors.Is(err, progression.ErrInsufficientBones):
		cmd = m.status.set(fmt.Sprintf("Not enough bones: %s costs %d", item.label, item.price), false)
	case err != nil:
		cmd = m.status.set("Could not save, try again", false)
	case r.Owned:
		cmd = m.status.set(fmt.Sprintf("%s is already yours", item.label), true)
	case item.pet != "":
		cmd = m.status.set(fmt.Sprintf("%s joined the kennel!", item.label), true)
	default:
		cmd = m.status.set(fmt.Sprintf("Bought %s, %d in stock", strings.ToLower(item.label), r.Stock), true)
	}
	return m, cmd
}

func (m MarketModel) owns(id progression.PetID) bool {
	for _, u := range m.progress.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

// View renders the market.
func (m MarketModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("MARKET", m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(boneStyle.Render(fmt.Sprintf("bones %d", m.progress.Bones)), m.width))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, item := range m.items {
		price := fmt.Sprintf("%4d", item.price)
		extra := ""
		switch {
		case item.supply == progression.Food:
			extra = fmt.Sprintf("stock %d", m.progress.Food)
		case item.supply == progression.Water:
			extra = fmt.Sprintf("stock %d", m.progress.Water)
		case m.owns(item.pet):
			extra = "owned"
		}
		line := fmt.Sprintf("%-11s %s  %s", item.label, price, dimStyle.Render(extra))
		if i == m.cursor {
			list.WriteString(cursorStyle.Render("> ") + line)
		} else {
			list.WriteString("  " + line)
		}
		if i < len(m.items)-1 {
			list.WriteString("\n")
		}
	}
	b.WriteString(centerText(panelStyle.Render(list.String()), m.width))
	b.WriteString("\n\n")

	if s := m.status.View(); s != "" {
		b.WriteString(centerText(s, m.width))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}
