// SPDX-License-Identifier: EPL-2.0

// Package tui is a terminal front end that drives an engine from a
// bubbletea tick loop and shows the voice table.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/voxmix"
	"github.com/ik5/voxmix/voice"
)

// Track is one playlist entry opened at startup and on reload.
type Track struct {
	Name string
	Loop bool
}

type tickMsg time.Time

// Model renders the voice pool and forwards keys to the engine. The engine
// is only touched from Update, so it needs no locking.
type Model struct {
	engine   *voxmix.Engine
	playlist []Track
	interval time.Duration

	voices  []voice.Status
	ticks   int
	pushed  int
	lastErr error
	quit    bool
}

// New builds a model. Call Start to open the playlist before running it.
func New(engine *voxmix.Engine, playlist []Track, interval time.Duration) Model {
	return Model{
		engine:   engine,
		playlist: playlist,
		interval: interval,
		voices:   engine.Voices(),
	}
}

// Start opens every playlist track. Failures are kept for display and do
// not stop the remaining tracks.
func (m Model) Start() Model {
	for _, tr := range m.playlist {
		if _, err := m.engine.Open(tr.Name, tr.Loop); err != nil {
			m.lastErr = err
		}
	}
	m.voices = m.engine.Voices()

	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m = m.step()
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// step runs one engine tick and refreshes the voice table.
func (m Model) step() Model {
	m.ticks++

	pushed, err := m.engine.Tick()
	if pushed {
		m.pushed++
	}
	if err != nil {
		m.lastErr = err
	}
	m.voices = m.engine.Voices()

	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c", "esc":
		m.quit = true
		return m, tea.Quit

	case "m":
		m.engine.SetDeviceMuted(!m.engine.DeviceMuted())

	case "r":
		m = m.Start()
		return m, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		id := int(key[0] - '1')
		if err := m.engine.Close(id); err != nil {
			m.lastErr = err
		}
	}
	m.voices = m.engine.Voices()

	return m, nil
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool { return m.quit }

// Pushed is the number of blocks sent to the device so far.
func (m Model) Pushed() int { return m.pushed }

// Err is the most recent open or decode error.
func (m Model) Err() error { return m.lastErr }

func (m Model) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("voxmix"))
	b.WriteString(fmt.Sprintf("  engine %s", m.engine.ID().String()[:8]))
	if m.engine.DeviceMuted() {
		b.WriteString("  " + mutedStyle.Render("MUTED"))
	}
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-3s %-28s %-7s %-5s %6s %10s", "#", "name", "source", "loop", "loops", "frames")))
	b.WriteString("\n")

	for _, v := range m.voices {
		if v.Free {
			b.WriteString(freeStyle.Render(fmt.Sprintf("%-3d %-28s", v.ID+1, "-")))
			b.WriteString("\n")
			continue
		}

		line := fmt.Sprintf("%-3d %-28s %-7s %-5t %6d %10d",
			v.ID+1, truncate(v.Name, 28), v.Source, v.Loop, v.Loops, v.Frames)
		b.WriteString(activeStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\nticks %d  blocks %d\n", m.ticks, m.pushed))
	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("last error: "+m.lastErr.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render("1-9 stop voice • m mute • r reload playlist • q quit"))
	b.WriteString("\n")

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
