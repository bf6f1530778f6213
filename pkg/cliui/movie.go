package cliui

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/papercomputeco/marquee/pkg/catalog"
	"github.com/papercomputeco/marquee/pkg/recommend"
)

// User-facing messages shared by every front end.
const (
	MsgEmptyQuery  = "Please type a movie name first"
	MsgNotFound    = "Movie not found. Try another name!"
	MsgCurating    = "Curating your playlist..."
	MsgRecommended = "Recommended For You"
)

// CardColumns is the number of cards per row in grid layouts.
const CardColumns = 3

var (
	CardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1DB954"))
	StarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	cardStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// Stars renders a rating as filled and empty stars, e.g. "★★★★☆".
func Stars(m catalog.Movie) string {
	n := m.Stars()
	return strings.Repeat("★", n) + strings.Repeat("☆", catalog.MaxStars-n)
}

// Year renders the release year, or Unknown when missing.
func Year(m catalog.Movie) string {
	if m.StartYear <= 0 {
		return catalog.Unknown
	}
	return strconv.Itoa(m.StartYear)
}

// Runtime renders the runtime in minutes, or Unknown when missing.
func Runtime(m catalog.Movie) string {
	if m.RuntimeMinutes <= 0 {
		return catalog.Unknown
	}
	return fmt.Sprintf("%d mins", m.RuntimeMinutes)
}

// Card renders one movie as a bordered card of the given outer width.
func Card(m catalog.Movie, width int) string {
	inner := max(width-4, 10)
	fit := func(s string) string { return ansi.Truncate(s, inner, "…") }

	lines := []string{
		CardTitleStyle.Render(fit(m.PrimaryTitle)),
		StarStyle.Render(Stars(m)),
		fit("Genres: " + m.Genres),
		fit("Directed by: " + m.Directors),
		DimStyle.Render(fit(Year(m) + " · " + Runtime(m))),
	}
	return cardStyle.Width(inner + 4).Render(strings.Join(lines, "\n"))
}

// CardGrid lays out movies in rows of CardColumns cards fitted to width.
func CardGrid(movies []catalog.Movie, width int) string {
	if len(movies) == 0 {
		return ""
	}

	cardWidth := max(width/CardColumns, 24)
	var rows []string
	for start := 0; start < len(movies); start += CardColumns {
		end := min(start+CardColumns, len(movies))
		cards := make([]string, 0, end-start)
		for _, m := range movies[start:end] {
			cards = append(cards, Card(m, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ResultMovies returns the recommended movies of r in rank order.
func ResultMovies(r *recommend.Result) []catalog.Movie {
	movies := make([]catalog.Movie, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		movies[i] = rec.Movie
	}
	return movies
}

// ResultMarkdown renders a result as a markdown table.
func ResultMarkdown(r *recommend.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", MsgRecommended)
	fmt.Fprintf(&b, "Because you searched **%s** (matched *%s*).\n\n",
		escapeMarkdown(r.Query), escapeMarkdown(r.Match.PrimaryTitle))

	if len(r.Recommendations) == 0 {
		b.WriteString("_No other movies in the catalog._\n")
		return b.String()
	}

	b.WriteString("| # | Title | Rating | Genres | Directors | Year | Runtime | Score |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for i, rec := range r.Recommendations {
		m := rec.Movie
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %.3f |\n",
			i+1,
			escapeMarkdown(m.PrimaryTitle),
			Stars(m),
			escapeMarkdown(m.Genres),
			escapeMarkdown(m.Directors),
			Year(m),
			Runtime(m),
			rec.Score,
		)
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
