package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/cli/formatter"
	"github.com/alexanderramin/pdsops/internal/recommend"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type reviewKeyMap struct {
	Accept  key.Binding
	Dismiss key.Binding
	Skip    key.Binding
	Quit    key.Binding
}

func newReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Accept:  key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "accept")),
		Dismiss: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		Skip:    key.NewBinding(key.WithKeys("s", "right"), key.WithHelp("s", "skip")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Dismiss, k.Skip, k.Quit}
}

func (k reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// reviewActionMsg reports the result of acting on the current recommendation.
type reviewActionMsg struct {
	line string
	err  error
}

// reviewModel steps through recommendations one at a time. Accepting
// proposes a decision; dismissing counts as failure feedback for the rule.
type reviewModel struct {
	ctx   context.Context
	app   *App
	owner string
	recs  []recommend.Recommendation
	names map[string]string

	cursor int
	busy   bool
	err    error
	log    []string

	keys reviewKeyMap
	help help.Model
}

func newReviewModel(ctx context.Context, a *App, owner string, recs []recommend.Recommendation, names map[string]string) *reviewModel {
	return &reviewModel{
		ctx:   ctx,
		app:   a,
		owner: owner,
		recs:  recs,
		names: names,
		keys:  newReviewKeyMap(),
		help:  help.New(),
	}
}

func (m *reviewModel) Init() tea.Cmd { return nil }

func (m *reviewModel) done() bool { return m.cursor >= len(m.recs) }

func (m *reviewModel) current() recommend.Recommendation { return m.recs[m.cursor] }

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case reviewActionMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.log = append(m.log, msg.line)
		return m, m.advance()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.busy || m.done() {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Accept):
			m.busy = true
			return m, m.accept(m.current())
		case key.Matches(msg, m.keys.Dismiss):
			m.busy = true
			return m, m.dismiss(m.current())
		case key.Matches(msg, m.keys.Skip):
			m.log = append(m.log, fmt.Sprintf("skipped   %s", m.current().RuleKey))
			return m, m.advance()
		}
	}
	return m, nil
}

func (m *reviewModel) advance() tea.Cmd {
	m.cursor++
	if m.done() {
		return tea.Quit
	}
	return nil
}

func (m *reviewModel) accept(rec recommend.Recommendation) tea.Cmd {
	decisions, ctx, owner := m.app.Decisions, m.ctx, m.owner
	return func() tea.Msg {
		d, err := decisions.Propose(ctx, rec, owner, "")
		if err != nil {
			return reviewActionMsg{err: err}
		}
		return reviewActionMsg{line: fmt.Sprintf("accepted  %s -> decision %s", rec.RuleKey, d.ID)}
	}
}

func (m *reviewModel) dismiss(rec recommend.Recommendation) tea.Cmd {
	feedback, ctx := m.app.Feedback, m.ctx
	return func() tea.Msg {
		row, err := feedback.RecordFeedback(ctx, app.FeedbackRequest{RuleKey: rec.RuleKey, WasSuccessful: false})
		if err != nil {
			return reviewActionMsg{err: err}
		}
		return reviewActionMsg{line: fmt.Sprintf("dismissed %s (confidence %.0f%%)", rec.RuleKey, row.SuccessRate*100)}
	}
}

func (m *reviewModel) View() string {
	if m.done() {
		return m.Summary()
	}

	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("Review %d/%d", m.cursor+1, len(m.recs))))
	b.WriteString("\n\n")
	b.WriteString(formatter.FormatRecommendation(m.current(), m.names))
	if m.busy {
		b.WriteString("\n" + formatter.Dim("saving..."))
	}
	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("error: "+m.err.Error()))
	}
	b.WriteString("\n\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

// Summary lists what was done to each recommendation reviewed so far.
func (m *reviewModel) Summary() string {
	if len(m.log) == 0 {
		return formatter.Dim("No recommendations reviewed.") + "\n"
	}
	var b strings.Builder
	for _, line := range m.log {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}
