package commands

import (
	"github.com/Piiit/pwScripts/pkg/stats"
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <prefix> <file>...",
		Short: "Pivot experiment files into one table",
		Long: `Aggregate a set of experiment result files (TSV, one measured run
per line) into a single pivot table.

Each filename encodes one value of a varying parameter as
<prefix><parameter-name><parameter-value>. The pivot has the parameter
as first column, one column per algorithm, and the mean measurement in
each cell. Missing combinations read "nan".`,
		Example: `  pwscripts stats exp_ results/exp_cardinality*.tsv`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := GetLogger(cmd.Context())

			p := stats.NewPivot()
			for _, path := range args[1:] {
				log.Debug("reading experiment file", "path", path)
				if err := p.AddFile(args[0], path); err != nil {
					return err
				}
			}
			return p.WriteTSV(cmd.OutOrStdout())
		},
	}
}
