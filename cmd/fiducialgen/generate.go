package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/fiducial/fiducial"
	"github.com/katalvlaran/fiducial/internal/config"
	"github.com/katalvlaran/fiducial/internal/metrics"
)

func newGenerateCmd(out, errOut io.Writer) *cobra.Command {
	var configFile string
	var requireComplete bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dictionary and write it as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			logger := newLogger(errOut, cfg.Level())

			rec := metrics.New()
			opts := append(cfg.Options(),
				fiducial.WithLogger(logger),
				fiducial.WithHooks(rec.Hooks()),
			)
			res, err := fiducial.Generate(cfg.Target, cfg.GridSize, opts...)
			if err != nil {
				return err
			}
			rec.Observe(res)

			var buf bytes.Buffer
			if err := fiducial.Encode(&buf, res.Dictionary); err != nil {
				return err
			}
			if cfg.Output == "" {
				if _, err := out.Write(buf.Bytes()); err != nil {
					return err
				}
			} else {
				if err := os.WriteFile(cfg.Output, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", cfg.Output, err)
				}
				logger.Info().Str("path", cfg.Output).Msg("dictionary written")
			}
			if cfg.MetricsFile != "" {
				if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}

			if res.Degenerate() {
				logger.Warn().Int("tau", res.Tau).Msg("tau decayed to zero; the dictionary has no separation guarantee")
			}
			if dups := countDuplicates(res.Dictionary); dups > 0 {
				logger.Warn().Int("duplicates", dups).Msg("dictionary holds duplicate markers")
			}
			if !res.Complete() {
				ev := logger.Warn()
				if requireComplete {
					ev = logger.Error()
				}
				ev.Str("status", res.Status.String()).
					Int("members", res.Dictionary.Len()).
					Int("target", cfg.Target).
					Msg("dictionary incomplete")
				if requireComplete {
					return fmt.Errorf("generation ended %s with %d of %d markers",
						res.Status, res.Dictionary.Len(), cfg.Target)
				}
			}
			return nil
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&configFile, "config", "", "YAML configuration file")
	cmd.Flags().BoolVar(&requireComplete, "require-complete", false, "fail unless the target size is reached")
	return cmd
}

// countDuplicates returns how many members exactly repeat an earlier one.
func countDuplicates(d *fiducial.Dictionary) int {
	seen, err := fiducial.NewDictionary(d.Len(), d.GridSize())
	if err != nil {
		return 0
	}
	dups := 0
	for _, m := range d.Members() {
		if seen.Contains(m) {
			dups++
			continue
		}
		seen.Append(m)
	}
	return dups
}
