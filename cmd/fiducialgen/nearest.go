package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/fiducial/fiducial"
)

// defaultMaxDistance is the number of bit errors a dictionary with separation
// tau can correct unambiguously.
func defaultMaxDistance(tau int) int {
	if tau <= 0 {
		return 0
	}
	return (tau - 1) / 2
}

func newNearestCmd(out io.Writer) *cobra.Command {
	var maxDistance int
	cmd := &cobra.Command{
		Use:   "nearest <dictionary.yaml> <row>...",
		Short: "Classify an observed grid against a dictionary",
		Long: `nearest finds the member closest to the observed rows under any rotation.
The match is accepted when its distance is at most --max-distance, which
defaults to (tau-1)/2.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDictionary(args[0])
			if err != nil {
				return err
			}
			observed, err := fiducial.ParseMarker(args[1:]...)
			if err != nil {
				return err
			}
			if observed.Size() != d.GridSize() {
				return fmt.Errorf("observed grid is %dx%d, dictionary holds %dx%d markers",
					observed.Size(), observed.Size(), d.GridSize(), d.GridSize())
			}
			limit := maxDistance
			if !cmd.Flags().Changed("max-distance") {
				limit = defaultMaxDistance(d.Tau())
			}
			match, ok := d.Nearest(observed)
			if !ok {
				fmt.Fprintln(out, "no match: dictionary is empty")
				return nil
			}
			verdict := "accepted"
			if match.Distance > limit {
				verdict = "rejected"
			}
			fmt.Fprintf(out, "id=%d distance=%d rotation=%d %s\n", match.ID, match.Distance, match.Rotation, verdict)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxDistance, "max-distance", 0, "largest distance accepted as a match")
	return cmd
}
