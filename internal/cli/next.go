package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/waktu-solat/internal/prayer"
)

var flagNextFormat string

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer (for status bars)",
		Long: `Show the next prayer and the time left until it.

Formats: time-remaining, next-prayer-time, name-and-time, name-and-remaining,
short-name-and-time, short-name-and-remaining, full, or a custom Go template
such as '{{.Name}} dalam {{.Remaining}}'.
Template fields: .Name, .ShortName, .Time, .Remaining, .Active, .Hours, .Minutes, .Seconds

Nothing is printed when today's row is missing, or when Isyak has passed and
tomorrow is not in the table.`,
		Args: cobra.NoArgs,
		RunE: runNext,
	}
	cmd.Flags().StringVarP(&flagNextFormat, "format", "f", "", "Display format (overrides config)")
	return cmd
}

// nextJSON is the JSON output structure for the next command.
type nextJSON struct {
	Zone      string           `json:"zone"`
	Active    string           `json:"active"`
	Prayer    string           `json:"prayer"`
	Time      string           `json:"time"`
	At        time.Time        `json:"at"`
	Remaining prayer.Remaining `json:"remaining"`
}

func runNext(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd, cmd.ErrOrStderr(), false, nil)
	if err != nil {
		return err
	}

	format := d.cfg.Format
	if cmd.Flags().Changed("format") {
		if !prayer.ValidFormat(flagNextFormat) {
			return fmt.Errorf("invalid --format %q", flagNextFormat)
		}
		format = flagNextFormat
	}

	sched, err := d.loadZone(cmd.Context())
	if err != nil {
		return err
	}

	st, ok := prayer.Resolve(sched, now())
	if !ok {
		d.log.Debug().Str("zone", sched.Zone).Msg("nothing to count down to")
		return nil
	}

	layout := prayer.TimeLayout(d.cfg.TimeFormat)
	out := cmd.OutOrStdout()
	if FlagJSON {
		data, err := json.MarshalIndent(nextJSON{
			Zone:      sched.Zone,
			Active:    strings.ToLower(st.Active),
			Prayer:    strings.ToLower(st.Next.Name),
			Time:      st.Next.Time.Format(layout),
			At:        st.Next.Time,
			Remaining: st.Remaining,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, prayer.FormatOutput(st, format, layout))
	return nil
}
