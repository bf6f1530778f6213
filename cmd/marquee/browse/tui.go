package browsecmder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/papercomputeco/marquee/pkg/cliui"
	"github.com/papercomputeco/marquee/pkg/recommend"
)

// Bounds of the top-N selector.
const (
	minTopN = 1
	maxTopN = 10
)

const defaultWidth = 100

var (
	browseTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1DB954"))
	browseMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	browseNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	browseErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type browseKeyMap struct {
	Search   key.Binding
	Surprise key.Binding
	More     key.Binding
	Fewer    key.Binding
	Quit     key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Surprise, k.More, k.Fewer, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Search, k.Surprise}, {k.More, k.Fewer, k.Quit}}
}

func defaultBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Search:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "recommend")),
		Surprise: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "surprise me")),
		More:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "more")),
		Fewer:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "fewer")),
		Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// resultMsg carries a finished query back to the model.
type resultMsg struct {
	result   *recommend.Result
	err      error
	surprise bool
}

type browseModel struct {
	ctx         context.Context
	recommender *recommend.Recommender
	picker      *recommend.Picker

	input    textinput.Model
	keys     browseKeyMap
	help     help.Model
	topN     int
	width    int
	loading  bool
	surprise bool
	notice   string
	err      error
	result   *recommend.Result
}

func newBrowseModel(ctx context.Context, r *recommend.Recommender, picker *recommend.Picker, topN int) browseModel {
	input := textinput.New()
	input.Placeholder = "Enter a movie name"
	input.Prompt = "🎬 "
	input.CharLimit = 200
	input.Focus()

	return browseModel{
		ctx:         ctx,
		recommender: r,
		picker:      picker,
		input:       input,
		keys:        defaultBrowseKeyMap(),
		help:        help.New(),
		topN:        clampTopN(topN),
		width:       defaultWidth,
	}
}

// clampTopN keeps n inside the selector range.
func clampTopN(n int) int {
	return min(max(n, minTopN), maxTopN)
}

func (m browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(msg.Width-10, 20))
		return m, nil

	case resultMsg:
		return m.applyResult(msg), nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Search):
			next, cmd := m.submit()
			return next, cmd
		case key.Matches(msg, m.keys.Surprise):
			next, cmd := m.surpriseMe()
			return next, cmd
		case key.Matches(msg, m.keys.More):
			return m.adjustTopN(1), nil
		case key.Matches(msg, m.keys.Fewer):
			return m.adjustTopN(-1), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m browseModel) adjustTopN(delta int) browseModel {
	m.topN = clampTopN(m.topN + delta)
	return m
}

// submit starts a recommendation query for the current input. Empty input
// only shows a notice.
func (m browseModel) submit() (browseModel, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.notice = cliui.MsgEmptyQuery
		m.err = nil
		return m, nil
	}

	m.loading = true
	m.notice = ""
	m.err = nil
	ctx, r, topN := m.ctx, m.recommender, m.topN
	return m, func() tea.Msg {
		result, err := r.Recommend(ctx, query, topN)
		return resultMsg{result: result, err: err}
	}
}

func (m browseModel) surpriseMe() (browseModel, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	m.loading = true
	m.notice = ""
	m.err = nil
	ctx, r, picker, topN := m.ctx, m.recommender, m.picker, m.topN
	return m, func() tea.Msg {
		result, err := r.Surprise(ctx, picker, topN)
		return resultMsg{result: result, err: err, surprise: true}
	}
}

func (m browseModel) applyResult(msg resultMsg) browseModel {
	m.loading = false
	m.surprise = msg.surprise

	switch {
	case errors.Is(msg.err, recommend.ErrNotFound):
		m.notice = cliui.MsgNotFound
		m.result = nil
	case msg.err != nil:
		m.err = msg.err
		m.result = nil
	default:
		m.result = msg.result
		if msg.surprise {
			m.input.SetValue(msg.result.Match.PrimaryTitle)
		}
	}
	return m
}

func (m browseModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m browseModel) render() string {
	var b strings.Builder

	b.WriteString(browseTitleStyle.Render("🍿 marquee"))
	b.WriteString(browseMutedStyle.Render("  find movies like the ones you love"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n\n",
		browseMutedStyle.Render("Recommendations:"),
		topNGauge(m.topN),
	)

	switch {
	case m.loading:
		b.WriteString(browseMutedStyle.Render(cliui.MsgCurating))
		b.WriteString("\n")
	case m.notice != "":
		b.WriteString(browseNoticeStyle.Render(m.notice))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(browseErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.result != nil:
		b.WriteString(m.renderResult())
	}

	b.WriteString("\n")
	b.WriteString(browseMutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m browseModel) renderResult() string {
	var b strings.Builder
	if m.surprise {
		fmt.Fprintf(&b, "%s %s\n",
			cliui.KeyStyle.Render("Surprise Pick:"),
			cliui.CardTitleStyle.Render(m.result.Match.PrimaryTitle),
		)
	}

	if len(m.result.Recommendations) == 0 {
		b.WriteString(browseMutedStyle.Render("No other movies in the catalog."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(cliui.CardTitleStyle.Render(cliui.MsgRecommended))
	b.WriteString("\n")
	b.WriteString(cliui.CardGrid(cliui.ResultMovies(m.result), m.width))
	b.WriteString("\n")
	return b.String()
}

// topNGauge renders the selector, e.g. "●●●●●●○○○○ 6".
func topNGauge(n int) string {
	return fmt.Sprintf("%s%s %d",
		strings.Repeat("●", n),
		strings.Repeat("○", maxTopN-n),
		n,
	)
}
