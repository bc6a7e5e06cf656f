package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/fiducial/fiducial"
)

// separation is the weakest spot of a dictionary.
type separation struct {
	minPair  int // smallest rotation-invariant distance between two members, -1 if < 2 members
	pairA    int
	pairB    int
	minSelf  int // smallest self-rotation distance, -1 if empty
	selfOf   int
	violates bool // some distance is below the recorded tau
}

// measure scans every member and pair.
func measure(d *fiducial.Dictionary) separation {
	s := separation{minPair: -1, minSelf: -1}
	members := d.Members()
	for i, a := range members {
		if h := a.SelfHammingDistance(); s.minSelf < 0 || h < s.minSelf {
			s.minSelf, s.selfOf = h, i
		}
		for j := i + 1; j < len(members); j++ {
			if h := a.MinHammingDistance(members[j]); s.minPair < 0 || h < s.minPair {
				s.minPair, s.pairA, s.pairB = h, i, j
			}
		}
	}
	s.violates = (s.minSelf >= 0 && s.minSelf < d.Tau()) || (s.minPair >= 0 && s.minPair < d.Tau())
	return s
}

// drawMarker renders m with '#' for set bits and '.' otherwise.
func drawMarker(w io.Writer, m fiducial.Marker) {
	for _, row := range m.Grid() {
		var sb strings.Builder
		sb.WriteString("  ")
		for _, bit := range row {
			if bit {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}

func newInspectCmd(out io.Writer) *cobra.Command {
	var strict, quiet bool
	cmd := &cobra.Command{
		Use:   "inspect <dictionary.yaml>",
		Short: "Print a dictionary and check its separation",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			d, err := loadDictionary(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "grid size: %d\ntau: %d\nmembers: %d/%d\n", d.GridSize(), d.Tau(), d.Len(), d.TargetSize())
			if !quiet {
				for id, m := range d.Members() {
					fmt.Fprintf(out, "marker %d (self distance %d)\n", id, m.SelfHammingDistance())
					drawMarker(out, m)
				}
			}
			s := measure(d)
			if s.minSelf >= 0 {
				fmt.Fprintf(out, "min self distance: %d (marker %d)\n", s.minSelf, s.selfOf)
			}
			if s.minPair >= 0 {
				fmt.Fprintf(out, "min pair distance: %d (markers %d, %d)\n", s.minPair, s.pairA, s.pairB)
			}
			if d.Tau() <= 0 {
				fmt.Fprintln(out, "warning: tau <= 0, no separation guarantee")
			}
			if s.violates {
				fmt.Fprintln(out, "separation below tau")
				if strict {
					return fmt.Errorf("%s: separation below tau %d", args[0], d.Tau())
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail if any distance is below tau")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "skip the marker drawings")
	return cmd
}
