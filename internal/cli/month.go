package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/waktu-solat/internal/display"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
	"github.com/smokyabdulrahman/waktu-solat/internal/view"
)

var flagMonthSearch string

func newMonthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month [1-12]",
		Short: "Show a month of the zone's table",
		Long: `Show one month of the zone's yearly table, today highlighted.

The month defaults to the current one when the table covers this year, and
to January otherwise. --search keeps only rows whose text contains the term,
ignoring case.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMonth,
	}
	cmd.Flags().StringVarP(&flagMonthSearch, "search", "s", "", "Only show rows containing this text")
	return cmd
}

// parseMonth reads a 1-12 month argument as a 0-11 index.
func parseMonth(arg string) (int, error) {
	m, err := strconv.Atoi(arg)
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("invalid month %q: must be 1-12", arg)
	}
	return m - 1, nil
}

// monthJSON is the JSON output structure for the month command.
type monthJSON struct {
	Zone    string          `json:"zone"`
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Label   string          `json:"label"`
	Search  string          `json:"search,omitempty"`
	Headers []string        `json:"headers"`
	Rows    []monthJSONLine `json:"rows"`
}

type monthJSONLine struct {
	Date  string   `json:"date"`
	Cells []string `json:"cells"`
	Today bool     `json:"today,omitempty"`
}

func runMonth(cmd *cobra.Command, args []string) error {
	month := -1
	if len(args) == 1 {
		m, err := parseMonth(args[0])
		if err != nil {
			return err
		}
		month = m
	}

	d, err := newDeps(cmd, cmd.ErrOrStderr(), false, nil)
	if err != nil {
		return err
	}

	sched, err := d.loadZone(cmd.Context())
	if err != nil {
		return err
	}

	today := schedule.DateOf(now())
	cursor := view.NewCursor(sched.Year(), today)
	if month >= 0 {
		cursor = cursor.Set(month)
	}

	lines := view.Apply(sched, view.Filter{Month: cursor.Month, Search: flagMonthSearch}, today)
	headers := view.Headers(d.loader.Layout(), view.Width(lines))

	out := cmd.OutOrStdout()
	if FlagJSON {
		doc := monthJSON{
			Zone:    sched.Zone,
			Year:    cursor.Year,
			Month:   cursor.Month + 1,
			Label:   cursor.Label(),
			Search:  flagMonthSearch,
			Headers: headers,
			Rows:    make([]monthJSONLine, 0, len(lines)),
		}
		for _, l := range lines {
			doc.Rows = append(doc.Rows, monthJSONLine{
				Date:  l.Row.Date.String(),
				Cells: view.Cells(l.Row, len(headers)),
				Today: l.Today,
			})
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s  %s\n", display.Bold(cursor.Label()), zoneLabel(sched.Zone))
	if flagMonthSearch != "" {
		fmt.Fprintf(out, "  %s\n", display.Gray(fmt.Sprintf("carian: %q", flagMonthSearch)))
	}
	fmt.Fprintln(out)

	tbl := display.NewTable(headers)
	for _, l := range lines {
		tbl.AddRow(view.Cells(l.Row, len(headers)))
	}
	tbl.SetHighlightRow(view.TodayIndex(lines))
	tbl.SetPlaceholder("Tiada padanan.")
	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}
