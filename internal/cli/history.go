package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/starpath/pkg/errors"
	"github.com/matzehuels/starpath/pkg/store"
)

func (c *CLI) historyCommand() *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently planned routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return errs.New(errs.ErrCodeInvalidInput, "--limit must be positive")
			}
			return c.runHistory(cmd.Context(), cmd.OutOrStdout(), limit, jsonOut)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "number of routes to list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print routes as JSON")

	return cmd
}

func (c *CLI) runHistory(ctx context.Context, w io.Writer, limit int, jsonOut bool) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	routes, err := runner.History(ctx, limit)
	if err != nil {
		return err
	}

	if jsonOut {
		if routes == nil {
			routes = []store.Route{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(routes)
	}

	if len(routes) == 0 {
		printInfo("No routes recorded yet")
		return nil
	}
	fmt.Fprintln(w, historyTable(routes, time.Now()))
	return nil
}

// historyTable renders routes as a bordered table.
func historyTable(routes []store.Route, now time.Time) string {
	rows := make([][]string, len(routes))
	for i, r := range routes {
		path, cost := "—", "—"
		if r.Found {
			path = strings.Join(r.Path, " → ")
			cost = fmt.Sprintf("%g", r.Cost)
		}
		rows[i] = []string{r.Source, r.Target, cost, path, formatRelativeTime(r.CreatedAt, now)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("From", "To", "Cost", "Route", "When").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if !routes[row].Found {
				return base.Foreground(colorDim)
			}
			switch col {
			case 2:
				return base.Foreground(colorCyan)
			case 4:
				return base.Foreground(colorGray)
			}
			return base
		}).
		Render()
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
