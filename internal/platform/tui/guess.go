package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pawpark/internal/guess"
	"github.com/vovakirdan/pawpark/internal/progression"
)

const gridSide = 3

// countdownMsg refreshes the cooldown display.
type countdownMsg struct{}

func countdownCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{}
	})
}

// GuessModel is the daily guess: a 3x3 grid hiding a prize skin.
type GuessModel struct {
	ctx     context.Context
	svc     *Services
	status  guess.Status
	loadErr error
	cursor  int
	misses  map[int]bool
	hit     int
	message statusLine
	keys    ListKeyMap
	help    help.Model
	width   int
}

// NewGuessModel opens the guess game, starting a round when one is due.
func NewGuessModel(ctx context.Context, svc *Services, width int) GuessModel {
	m := GuessModel{
		ctx:    ctx,
		svc:    svc,
		misses: make(map[int]bool),
		hit:    -1,
		keys:   DefaultListKeyMap(),
		help:   help.New(),
		width:  width,
	}
	m.load()
	return m
}

func (m *GuessModel) load() {
	m.status, m.loadErr = m.svc.Guess.Load(m.ctx)
	m.misses = make(map[int]bool)
	m.hit = -1

	prize := petName(m.status.Prize)
	switch m.status.Pending {
	case guess.ResultWin:
		m.message = statusLine{text: fmt.Sprintf("You won %s's alt skin!", prize), ok: true}
	case guess.ResultLose:
		m.message = statusLine{text: "No luck last time. Come back tomorrow."}
	}
}

// Init starts the cooldown display.
func (m GuessModel) Init() tea.Cmd {
	return countdownCmd()
}

// Update handles messages for the guess screen.
func (m GuessModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case countdownMsg:
		if m.status.Locked && m.status.Remaining(m.svc.Clock.Now()) == 0 {
			m.load()
		}
		return m, countdownCmd()
	case flashMsg:
		m.message.expire(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m GuessModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m, navigate(ScreenHub)
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor - gridSide + guess.Cells) % guess.Cells
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + gridSide) % guess.Cells
	case key.Matches(msg, m.keys.Left):
		m.cursor = m.cursor - m.cursor%gridSide + (m.cursor%gridSide+gridSide-1)%gridSide
	case key.Matches(msg, m.keys.Right):
		m.cursor = m.cursor - m.cursor%gridSide + (m.cursor%gridSide+1)%gridSide
	case key.Matches(msg, m.keys.Select):
		return m.pick(m.cursor)
	default:
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			m.cursor = int(s[0] - '1')
			return m.pick(m.cursor)
		}
	}
	return m, nil
}

func (m GuessModel) pick(cell int) (tea.Model, tea.Cmd) {
	if m.status.Locked || m.misses[cell] {
		return m, nil
	}

	p, err := m.svc.Guess.Pick(m.ctx, cell)
	switch {
	case errors.Is(err, guess.ErrCooldown):
		m.load()
		return m, nil
	case err != nil:
		return m, m.message.set("Could not save, try again", false)
	}

	m.status.AttemptsLeft = p.AttemptsLeft
	if p.Result != guess.ResultNone {
		m.status.Locked = true
		m.status.NextAt = p.NextAt
	}

	prize := petName(p.Prize)
	switch {
	case p.Hit:
		m.hit = cell
		return m, m.message.set(fmt.Sprintf("Found it! %s's alt skin is yours", prize), true)
	case p.Result == guess.ResultLose:
		m.misses[cell] = true
		return m, m.message.set("Out of tries. Come back tomorrow.", false)
	default:
		m.misses[cell] = true
		return m, m.message.set(fmt.Sprintf("Empty. %d try left", p.AttemptsLeft), false)
	}
}

// View renders the guess grid or the cooldown.
func (m GuessModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("DAILY GUESS", m.width)))
	b.WriteString("\n")

	if m.loadErr != nil {
		b.WriteString(centerText(warnStyle.Render("Could not open the guess game"), m.width))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
		return b.String()
	}

	b.WriteString(centerText(fmt.Sprintf("Prize: %s's alt skin", petName(m.status.Prize)), m.width))
	b.WriteString("\n")
	if m.status.Locked {
		left := guess.FormatRemaining(m.status.Remaining(m.svc.Clock.Now()))
		b.WriteString(centerText(dimStyle.Render("Next round in "+left), m.width))
	} else {
		b.WriteString(centerText(fmt.Sprintf("Tries left: %d", m.status.AttemptsLeft), m.width))
	}
	b.WriteString("\n\n")

	var grid strings.Builder
	for row := range gridSide {
		cells := make([]string, gridSide)
		for col := range gridSide {
			i := row*gridSide + col
			mark := fmt.Sprintf(" %d ", i+1)
			switch {
			case i == m.hit:
				mark = goodStyle.Render(" ★ ")
			case m.misses[i]:
				mark = dimStyle.Render(" · ")
			case m.status.Locked:
				mark = dimStyle.Render(" ? ")
			}
			if i == m.cursor && !m.status.Locked {
				mark = cursorStyle.Render("[") + mark + cursorStyle.Render("]")
			} else {
				mark = " " + mark + " "
			}
			cells[col] = mark
		}
		grid.WriteString(strings.Join(cells, " "))
		if row < gridSide-1 {
			grid.WriteString("\n\n")
		}
	}
	b.WriteString(centerText(panelStyle.Render(grid.String()), m.width))
	b.WriteString("\n\n")

	if s := m.message.View(); s != "" {
		b.WriteString(centerText(s, m.width))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func petName(id progression.PetID) string {
	if p, ok := progression.Lookup(id); ok {
		return p.Name
	}
	return string(id)
}
