package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// counterModel counts '+' presses, echoes 'e' through a Cmd and quits on 'q'.
type counterModel struct {
	count  int
	echoed []string
	width  int
}

func (m counterModel) Init() tea.Cmd {
	return func() tea.Msg { return echoMsg("init") }
}

func (m counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case echoMsg:
		m.echoed = append(m.echoed, string(msg))
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			m.count++
		case "e":
			return m, tea.Batch(
				func() tea.Msg { return echoMsg("a") },
				func() tea.Msg { return echoMsg("b") },
			)
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m counterModel) View() string {
	return "\x1b[1mcount\x1b[0m"
}

func TestDriver_DrainsInitBatchAndQuit(t *testing.T) {
	d := New(t, counterModel{}, WithSize(80, 24))
	d.DrainInit()
	d.Type("++e")

	m := d.Model.(counterModel)
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 2, m.count)
	assert.Equal(t, []string{"init", "a", "b"}, m.echoed)
	assert.Equal(t, "count", d.View())

	d.PressKey('q')
	assert.True(t, d.Quitting)

	d.PressKey('+')
	assert.Equal(t, 2, d.Model.(counterModel).count, "keys after quit are ignored")
}

func TestWithCmdTimeout(t *testing.T) {
	d := New(t, counterModel{}, WithCmdTimeout(time.Second))
	assert.Equal(t, time.Second, d.cmdTimeout)
}
