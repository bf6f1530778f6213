package cmdutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/papercomputeco/marquee/pkg/cliui"
	"github.com/papercomputeco/marquee/pkg/recommend"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 120

// WriteResult prints r as cards, or as rendered markdown when markdown is set.
func WriteResult(w io.Writer, r *recommend.Result, markdown bool) error {
	if markdown {
		rendered, err := cliui.RenderMarkdown(cliui.ResultMarkdown(r))
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err = fmt.Fprint(w, rendered)
		return err
	}

	fmt.Fprintf(w, "\n  %s %s\n\n",
		cliui.KeyStyle.Render("Because you searched:"),
		cliui.ValueStyle.Render(r.Match.PrimaryTitle),
	)

	if len(r.Recommendations) == 0 {
		fmt.Fprintf(w, "  %s\n", cliui.DimStyle.Render("No other movies in the catalog."))
		return nil
	}

	fmt.Fprintf(w, "  %s\n\n", cliui.CardTitleStyle.Render(cliui.MsgRecommended))
	fmt.Fprintln(w, cliui.CardGrid(cliui.ResultMovies(r), cliui.Width(w, defaultWidth)))
	return nil
}

// WriteQueryError prints the friendly message for query errors the user can
// fix and returns err unchanged.
func WriteQueryError(w io.Writer, err error) error {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		fmt.Fprintf(w, "  %s %s\n", cliui.FailMark, cliui.WarnStyle.Render(cliui.MsgNotFound))
	case errors.Is(err, recommend.ErrInvalidArgument):
		fmt.Fprintf(w, "  %s %s\n", cliui.FailMark, cliui.WarnStyle.Render(err.Error()))
	}
	return err
}
