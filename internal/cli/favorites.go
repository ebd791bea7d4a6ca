package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/cfx/internal/app"
	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/rileyhilliard/cfx/internal/monitor"
	"github.com/rileyhilliard/cfx/internal/ui"
	"github.com/rileyhilliard/cfx/internal/util"
)

// favoritesList prints the saved favorites, newest first.
func favoritesList(w io.Writer, a *app.App) error {
	favorites := a.Lists().Favorites

	if machineMode {
		return WriteJSONSuccess(w, favorites)
	}

	if len(favorites) == 0 {
		fmt.Fprintln(w, "No favorites yet.")
		fmt.Fprintln(w, "\nAdd one with: cfx favorites add <code>")
		return nil
	}
	fmt.Fprintln(w, monitor.RenderResultsTable(favorites))
	return nil
}

// favoritesAdd looks up a server and saves it as a favorite.
func favoritesAdd(ctx context.Context, w io.Writer, a *app.App, input string) error {
	snap, added, err := a.AddFavorite(ctx, input)
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]interface{}{"server": snap, "added": added})
	}

	if !added {
		fmt.Fprintf(w, "%s '%s' is already a favorite\n", ui.SymbolSkipped, snap.Name)
		return nil
	}
	fmt.Fprintf(w, "%s Added '%s' to favorites\n", ui.SymbolSuccess, snap.Name)
	return nil
}

// favoritesRemove removes a favorite by id, or asks which one on a terminal.
func favoritesRemove(w io.Writer, a *app.App, id string) error {
	favorites := a.Lists().Favorites

	if id == "" {
		if len(favorites) == 0 {
			return errors.New(errors.ErrNotFound,
				"No favorites saved",
				"Nothing to remove.")
		}
		if !interactive() {
			return errors.New(errors.ErrEmptyInput,
				"No favorite given",
				"Usage: cfx favorites remove <id>")
		}

		options := make([]huh.Option[string], len(favorites))
		for i, f := range favorites {
			options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", f.Name, f.ID), f.ID)
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Select favorite to remove").
					Options(options...).
					Value(&id),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't get your selection",
				"Try again or use: cfx favorites remove <id>")
		}
	}

	if !a.RemoveFavorite(id) {
		return errors.New(errors.ErrNotFound,
			fmt.Sprintf("Favorite '%s' not found", id),
			"See saved favorites with: cfx favorites list")
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]string{"removed": id})
	}
	fmt.Fprintf(w, "%s Removed '%s' from favorites\n", ui.SymbolSuccess, id)
	return nil
}

// favoritesClear removes every favorite after confirmation.
func favoritesClear(w io.Writer, a *app.App, yes bool) error {
	count := len(a.Lists().Favorites)
	if count == 0 {
		return reportCleared(w, "favorite", "favorites", 0)
	}

	confirmed, err := confirm(fmt.Sprintf("Remove all %d favorites?", count), yes)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(w, "Cancelled.")
		return nil
	}

	a.ClearFavorites()
	return reportCleared(w, "favorite", "favorites", count)
}

// recentList prints the recent searches, newest first.
func recentList(w io.Writer, a *app.App) error {
	recent := a.Lists().Recent

	if machineMode {
		return WriteJSONSuccess(w, recent)
	}

	if len(recent) == 0 {
		fmt.Fprintln(w, "No recent searches.")
		return nil
	}
	for _, code := range recent {
		fmt.Fprintln(w, code)
	}
	return nil
}

// recentClear forgets the recent searches after confirmation.
func recentClear(w io.Writer, a *app.App, yes bool) error {
	count := len(a.Lists().Recent)
	if count == 0 {
		return reportCleared(w, "recent search", "recent searches", 0)
	}

	confirmed, err := confirm(fmt.Sprintf("Forget all %d recent searches?", count), yes)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(w, "Cancelled.")
		return nil
	}

	a.ClearRecent()
	return reportCleared(w, "recent search", "recent searches", count)
}

// confirm asks a yes/no question. --yes and non-interactive runs skip the
// prompt; non-interactive runs without --yes are refused.
func confirm(title string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !interactive() {
		return false, errors.New(errors.ErrConfig,
			"Refusing to clear without confirmation",
			"Pass --yes to confirm when not running in a terminal.")
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("This cannot be undone").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't get your input",
			"Try again, or pass --yes.")
	}
	return ok, nil
}

func reportCleared(w io.Writer, singular, plural string, count int) error {
	if machineMode {
		return WriteJSONSuccess(w, map[string]int{"cleared": count})
	}
	if count == 0 {
		fmt.Fprintf(w, "No %s to clear.\n", plural)
		return nil
	}
	fmt.Fprintf(w, "%s Cleared %s\n", ui.SymbolSuccess, util.Count(count, singular, plural))
	return nil
}
