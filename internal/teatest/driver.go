// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs each returned Cmd inline, so a
// test sees the model's state after every key without starting a
// tea.Program or a terminal.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxChain bounds how many Cmd results are fed back into one Send.
const maxChain = 50

// cmdWait is how long a Cmd may block before its result is dropped.
// Timer-based Cmds never finish inside a test step.
const cmdWait = 10 * time.Millisecond

// Driver holds a model and the outcome of the messages sent to it.
type Driver struct {
	t     *testing.T
	Model tea.Model

	// Quit is set once the model returns tea.Quit.
	Quit bool
}

// New wraps model. Pass WithSize for models that render nothing until
// they know the window size.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, Model: model}
	d.run(model.Init())
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type Option func(*Driver)

func WithSize(w, h int) Option {
	return func(d *Driver) { d.Resize(w, h) }
}

// Send feeds msg to the model, then runs whatever Cmds follow from it.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quit {
		return
	}
	next, cmd := d.Model.Update(msg)
	d.Model = next
	d.run(cmd)
}

func (d *Driver) Resize(w, h int) {
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// Press sends a named key such as "q", "down" or "ctrl+c".
func (d *Driver) Press(key string) {
	d.t.Helper()
	d.Send(keyMsg(key))
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) run(cmd tea.Cmd) {
	for i := 0; cmd != nil; i++ {
		if i == maxChain {
			d.t.Logf("teatest: stopped after %d chained commands", maxChain)
			return
		}
		msg := await(cmd)
		switch msg := msg.(type) {
		case nil:
			return
		case tea.QuitMsg:
			d.Quit = true
			return
		case tea.BatchMsg:
			for _, sub := range msg {
				d.run(sub)
			}
			return
		default:
			var next tea.Model
			next, cmd = d.Model.Update(msg)
			d.Model = next
		}
	}
}

func await(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdWait):
		return nil
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}
