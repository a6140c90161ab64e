package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/waktu-solat/internal/display"
	"github.com/smokyabdulrahman/waktu-solat/internal/prayer"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
	"github.com/smokyabdulrahman/waktu-solat/internal/zones"
)

// Columns of the JAKIM export ahead of the prayer times.
const (
	hijriColumn   = 1
	weekdayColumn = 2
)

// rowInfo is the descriptive part of a row.
type rowInfo struct {
	Date    schedule.Date
	Hijri   string
	Weekday string
}

// describeRow reads the Hijri date and weekday when the table uses the
// JAKIM column layout.
func describeRow(row schedule.Row, layout schedule.Layout) rowInfo {
	info := rowInfo{Date: row.Date}
	if layout != schedule.DefaultLayout() || len(row.Fields) <= weekdayColumn {
		return info
	}
	info.Hijri = row.Fields[hijriColumn]
	info.Weekday = row.Fields[weekdayColumn]
	return info
}

func runToday(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd, cmd.ErrOrStderr(), false, nil)
	if err != nil {
		return err
	}

	sched, err := d.loadZone(cmd.Context())
	if err != nil {
		return err
	}

	t := now()
	row, ok := sched.Day(schedule.DateOf(t))
	if !ok {
		return fmt.Errorf("no entry for %s in the %s table", schedule.DateOf(t), sched.Zone)
	}

	prayers := prayer.ParseRow(row, t.Location())
	st, resolved := prayer.Resolve(sched, t)
	layout := prayer.TimeLayout(d.cfg.TimeFormat)
	info := describeRow(row, d.loader.Layout())

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printTodayJSON(out, sched.Zone, info, prayers, st, resolved, layout)
	}

	printTodayRich(out, sched.Zone, info, prayers, st, resolved, layout)
	return nil
}

// zoneLabel renders "SGR01 · Selangor" when the zone is in the catalogue.
func zoneLabel(code string) string {
	if z, ok := zones.Lookup(code); ok {
		return z.Code + " · " + z.State
	}
	return code
}

// printTodayRich renders the colored terminal output for today's row.
func printTodayRich(out io.Writer, zone string, info rowInfo, prayers []prayer.Prayer, st prayer.State, resolved bool, layout string) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold("Waktu Solat"))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %s\n", zoneLabel(zone))
	if z, ok := zones.Lookup(zone); ok {
		fmt.Fprintf(out, "  %s\n", display.Gray(z.Areas))
	}
	fmt.Fprintf(out, "  %s\n", formatDate(info))
	if info.Hijri != "" {
		fmt.Fprintf(out, "  %s\n", info.Hijri)
	}
	fmt.Fprintln(out)

	maxNameLen := 0
	for _, p := range prayers {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	for _, p := range prayers {
		line := fmt.Sprintf("  %s  %s", padRight(p.Name, maxNameLen), p.Time.Format(layout))

		switch {
		case resolved && p.Name == st.Active:
			// Active period: dimmed.
			fmt.Fprintln(out, display.Dim(line))
		case resolved && p.Name == st.Next.Name && p.Time.Equal(st.Next.Time):
			// Next prayer: accent color + countdown.
			suffix := fmt.Sprintf("  <- seterusnya dalam %s", st.Remaining)
			fmt.Fprintln(out, display.Accent(line)+display.Accent(suffix))
		default:
			fmt.Fprintln(out, line)
		}
	}

	if resolved {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Sedang dalam waktu: %s\n", display.Bold(st.Active))
		if schedule.DateOf(st.Next.Time) != info.Date {
			fmt.Fprintf(out, "  Waktu seterusnya: %s esok, %s\n", st.Next.Name, st.Next.Time.Format(layout))
		}
	}

	fmt.Fprintln(out)
}

// formatDate renders the date with its weekday when known, e.g.
// "Rabu, 2025-10-15".
func formatDate(info rowInfo) string {
	if info.Weekday != "" {
		return info.Weekday + ", " + info.Date.String()
	}
	return info.Date.String()
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Zone    todayJSONZone     `json:"zone"`
	Date    todayJSONDate     `json:"date"`
	Timings map[string]string `json:"timings"`
	Active  string            `json:"active,omitempty"`
	Next    *todayJSONNext    `json:"next"`
}

type todayJSONZone struct {
	Code  string `json:"code"`
	State string `json:"state,omitempty"`
	Areas string `json:"areas,omitempty"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri,omitempty"`
	Weekday   string `json:"weekday,omitempty"`
}

type todayJSONNext struct {
	Prayer    string           `json:"prayer"`
	Time      string           `json:"time"`
	At        time.Time        `json:"at"`
	Remaining prayer.Remaining `json:"remaining"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(out io.Writer, zone string, info rowInfo, prayers []prayer.Prayer, st prayer.State, resolved bool, layout string) error {
	timings := make(map[string]string, len(prayers))
	for _, p := range prayers {
		timings[strings.ToLower(p.Name)] = p.Time.Format(layout)
	}

	doc := todayJSON{
		Zone: todayJSONZone{Code: zone},
		Date: todayJSONDate{
			Gregorian: info.Date.String(),
			Hijri:     info.Hijri,
			Weekday:   info.Weekday,
		},
		Timings: timings,
	}
	if z, ok := zones.Lookup(zone); ok {
		doc.Zone.State = z.State
		doc.Zone.Areas = z.Areas
	}

	if resolved {
		doc.Active = strings.ToLower(st.Active)
		doc.Next = &todayJSONNext{
			Prayer:    strings.ToLower(st.Next.Name),
			Time:      st.Next.Time.Format(layout),
			At:        st.Next.Time,
			Remaining: st.Remaining,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
