package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/simplecharts/simplecharts/pkg/axis"
	"github.com/simplecharts/simplecharts/pkg/errors"
)

// ticksOpts holds the flags for the ticks command.
type ticksOpts struct {
	min, max string
	labels   int
	minTick  float64
	date     bool
	zone     string
}

// ticksCommand creates the ticks command, a tool for checking which ticks a
// range produces.
func (c *CLI) ticksCommand() *cobra.Command {
	opts := ticksOpts{labels: 5}

	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Show the ticks generated for a range",
		Long: `Show the ticks generated for a range and label budget.

Number ranges use 1/2/5 steps. With --date the bounds may be timestamps
(RFC 3339 or YYYY-MM-DD) or epoch milliseconds, and calendar units are
chosen instead.`,
		Example: `  simplecharts ticks --min 0 --max 100 --labels 5
  simplecharts ticks --date --min 2024-01-01 --max 2024-01-01T12:00:00Z --labels 6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTicks(opts)
		},
	}

	cmd.Flags().StringVar(&opts.min, "min", "", "lower bound (required)")
	cmd.Flags().StringVar(&opts.max, "max", "", "upper bound (required)")
	cmd.Flags().IntVar(&opts.labels, "labels", opts.labels, "maximum number of labels")
	cmd.Flags().Float64Var(&opts.minTick, "min-tick", 0, "minimum tick size (milliseconds with --date)")
	cmd.Flags().BoolVar(&opts.date, "date", false, "use calendar ticks")
	cmd.Flags().StringVar(&opts.zone, "zone", "UTC", "IANA time zone for calendar labels")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")

	return cmd
}

// runTicks builds the range and prints the tick set as a table.
func runTicks(opts ticksOpts) error {
	if err := errors.ValidateMaxLabels(opts.labels); err != nil {
		return err
	}
	lo, err := parseBound(opts.min, opts.date)
	if err != nil {
		return err
	}
	hi, err := parseBound(opts.max, opts.date)
	if err != nil {
		return err
	}
	r, err := axis.NewRange(lo, hi)
	if err != nil {
		return err
	}

	factory, err := tickFactory(opts)
	if err != nil {
		return err
	}
	set := factory.GenerateLabels(r, opts.labels, opts.minTick)

	printKeyValue("Range", r.String())
	printKeyValue("Factory", factory.Kind())
	printKeyValue("Step", num(set.Step))
	printKeyValue("Anchors", fmt.Sprintf("%s .. %s", num(set.MinAnchor), num(set.MaxAnchor)))
	if set.Empty() {
		printInfo("No ticks fit this range")
		return nil
	}

	rows := make([][]string, len(set.Ticks))
	for i, t := range set.Ticks {
		rows[i] = []string{strconv.Itoa(i + 1), num(t.Value), t.Label}
	}
	printTable([]string{"#", "Value", "Label"}, rows, 0, 1)
	return nil
}

func tickFactory(opts ticksOpts) (axis.TickFactory, error) {
	if !opts.date {
		return axis.NewNumberTickFactory(), nil
	}
	loc, err := time.LoadLocation(opts.zone)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "time zone %q", opts.zone)
	}
	f := axis.NewCalendarTickFactory()
	f.Location = loc
	return f, nil
}

var boundLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

// parseBound reads a range bound. Dates are accepted only for calendar
// ranges and become epoch milliseconds.
func parseBound(s string, date bool) (float64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	if date {
		for _, layout := range boundLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return float64(t.UnixMilli()), nil
			}
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "cannot parse bound %q", s)
}
