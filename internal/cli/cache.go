package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simplecharts/simplecharts/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or empty the layout and artifact cache",
		Long: `Layouts and rendered charts are cached on disk, keyed by the data,
the chart options and the configuration. Entries expire after a week.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached layout and chart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runCacheClear(cmd)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
				return err
			},
		},
	)
	return cmd
}

func runCacheClear(cmd *cobra.Command) error {
	dir, err := cacheDir()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Nothing cached yet")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return fmt.Errorf("open cache %s: %w", dir, err)
	}
	removed, err := fc.Clear(cmd.Context())
	if err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Debug("cleared cache", "dir", dir, "entries", removed)
	printSuccess("Removed %d cached entries", removed)
	printDetail("Directory: %s", dir)
	return nil
}
