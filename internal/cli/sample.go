package cli

import (
	"github.com/spf13/cobra"

	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/errors"
)

// sampleCommand creates the sample command, which writes demo data to get
// started with.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		output string
		points int
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write demo series to a data file",
		Long: `Write the built-in demo series (a sine and a damped cosine) to a CSV,
JSON or XLSX file, chosen by the output extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidatePath(output); err != nil {
				return err
			}
			if points <= 0 {
				points = data.DemoPoints
			}
			demo := data.DemoN(points)
			if err := data.Export(demo, output); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("wrote sample", "path", output, "points", points)
			printSuccess("Sample written")
			printFile(output)
			printNewline()
			printNextStep("Render", appName+" render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "sample.csv", "output file (.csv, .json, .xlsx)")
	cmd.Flags().IntVarP(&points, "points", "n", 0, "points per series (default: 200)")

	return cmd
}
