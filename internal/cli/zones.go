package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/waktu-solat/internal/display"
	"github.com/smokyabdulrahman/waktu-solat/internal/zones"
)

var flagZonesState string

func newZonesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List JAKIM zone codes",
		Args:  cobra.NoArgs,
		RunE:  runZones,
	}
	cmd.Flags().StringVar(&flagZonesState, "state", "", "Only list zones in this state, e.g. Selangor or KL")
	return cmd
}

func runZones(cmd *cobra.Command, args []string) error {
	list := zones.All()
	if flagZonesState != "" {
		list = zones.ForState(flagZonesState)
		if len(list) == 0 {
			return fmt.Errorf("unknown state %q; known states: %v", flagZonesState, zones.States())
		}
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	tbl := display.NewTable([]string{"Zon", "Negeri", "Kawasan"})
	for _, z := range list {
		tbl.AddRow([]string{z.Code, z.State, z.Areas})
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Use --zone <ZON> or `waktu-solat config set zone <ZON>` to select one.")
	return nil
}
