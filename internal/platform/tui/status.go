package tui

import tea "github.com/charmbracelet/bubbletea"

// statusLine is a message under a menu that clears itself after a moment.
type statusLine struct {
	text string
	ok   bool
	id   int
}

func (s *statusLine) set(text string, ok bool) tea.Cmd {
	s.id++
	s.text, s.ok = text, ok
	return flashCmd(s.id)
}

func (s *statusLine) expire(msg flashMsg) {
	if msg.id == s.id {
		s.text = ""
	}
}

func (s statusLine) View() string {
	if s.text == "" {
		return ""
	}
	if s.ok {
		return goodStyle.Render(s.text)
	}
	return warnStyle.Render(s.text)
}
