// Command fiducialgen generates, inspects and queries square fiducial marker
// dictionaries.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		log.Error().Err(err).Msg("fiducialgen failed")
		os.Exit(1)
	}
}
