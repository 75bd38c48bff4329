package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// rawViewer is a full-screen scrollable view of one raw model response.
type rawViewer struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newRawViewer(title, content string) rawViewer {
	return rawViewer{title: title, content: content}
}

func (m rawViewer) Init() tea.Cmd { return nil }

func (m rawViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		height := msg.Height - 2 // title and footer
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m rawViewer) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(formatter.Header(m.title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("%3.f%% · ↑/↓ scroll · q quit", m.viewport.ScrollPercent()*100)))
	return b.String()
}

func runInspector(title, raw string) error {
	p := tea.NewProgram(newRawViewer(title, raw), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
