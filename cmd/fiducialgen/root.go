package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/fiducial/fiducial"
)

// newRootCmd wires the command tree. Results go to out, logs to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "fiducialgen",
		Short: "Generate square fiducial marker dictionaries",
		Long: `fiducialgen builds dictionaries of n×n binary markers whose members stay
apart from each other, and from their own rotations, by a minimum Hamming
distance tau. Dictionaries are stored as YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newGenerateCmd(out, errOut),
		newInspectCmd(out),
		newNearestCmd(out),
	)
	return root
}

// newLogger builds the console logger every command logs through.
func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	l := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().Timestamp().Str("module", "fiducialgen").Logger()
	log.Logger = l
	return l
}

// loadDictionary decodes a dictionary file.
func loadDictionary(path string) (*fiducial.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := fiducial.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
