package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/waktu-solat/internal/feed"
)

var flagDownloadOutput string

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <csv|pdf>",
		Short: "Save the zone's original table",
		Long: `Save the zone's yearly table as published, bypassing the cache.

The file is written to the current directory under its published name
unless -o is given. Use -o - to write to stdout.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(feed.KindCSV), string(feed.KindPDF)},
		RunE:      runDownload,
	}
	cmd.Flags().StringVarP(&flagDownloadOutput, "output", "o", "", "Output path, or - for stdout")
	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	kind, err := feed.ParseKind(args[0])
	if err != nil {
		return err
	}

	d, err := newDeps(cmd, cmd.ErrOrStderr(), false, nil)
	if err != nil {
		return err
	}

	zone, err := d.resolveZone(cmd.Context())
	if err != nil {
		return err
	}

	data, name, err := d.loader.Download(cmd.Context(), zone, kind)
	if err != nil {
		return err
	}

	if flagDownloadOutput == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	path := flagDownloadOutput
	if path == "" {
		path = name
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", path, len(data))
	return nil
}
