// Package tui hosts the pawpark screens in Bubble Tea: the hub, the catch
// game, the market, the wardrobe, the daily guess and the scoreboard. The
// same models run in a local terminal and behind the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// spawnMsg and simMsg drive the two periodic processes of a catch run. gen
// identifies the run that scheduled them; messages from an earlier run are
// dropped so a restarted or ended session never sees a residual tick.
type (
	spawnMsg struct{ gen int }
	simMsg   struct{ gen int }
)

func spawnCmd(gen int, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return spawnMsg{gen: gen}
	})
}

func simCmd(gen int, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return simMsg{gen: gen}
	})
}

// flashMsg clears a transient status line.
type flashMsg struct{ id int }

func flashCmd(id int) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashMsg{id: id}
	})
}
