package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/cfx/internal/app"
	"github.com/rileyhilliard/cfx/internal/monitor"
	"github.com/rileyhilliard/cfx/internal/server"
	"github.com/rileyhilliard/cfx/internal/ui"
)

// resultsOutput is the --json payload of search and browse.
type resultsOutput struct {
	Query   string            `json:"query"`
	Count   int               `json:"count"`
	Results []server.Snapshot `json:"results"`
}

// searchCommand runs a free-text search and prints the matches.
func searchCommand(ctx context.Context, w io.Writer, a *app.App, query string) error {
	results, err := a.Search(ctx, query)
	if err != nil {
		return err
	}
	return printResults(w, strings.TrimSpace(query), results, limitFlag)
}

// browseCommand lists the directory, optionally filtered.
func browseCommand(ctx context.Context, w io.Writer, a *app.App, filter string) error {
	results, err := a.Browse(ctx, filter)
	if err != nil {
		return err
	}
	return printResults(w, strings.TrimSpace(filter), results, limitFlag)
}

// printResults prints at most limit results; limit <= 0 prints all.
func printResults(w io.Writer, query string, results []server.Snapshot, limit int) error {
	total := len(results)
	if limit > 0 && total > limit {
		results = results[:limit]
	}

	if machineMode {
		return WriteJSONSuccess(w, resultsOutput{Query: query, Count: total, Results: results})
	}

	fmt.Fprintln(w, monitor.RenderResultsTable(results))
	if len(results) < total {
		fmt.Fprintln(w, ui.MutedStyle().Render(fmt.Sprintf("Showing %d of %d. Use --limit 0 to see all.", len(results), total)))
	}
	return nil
}
