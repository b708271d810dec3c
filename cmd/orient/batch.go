package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/orient/internal/config"
	"github.com/taigrr/orient/internal/logging"
	"github.com/taigrr/orient/internal/samples"
	"github.com/taigrr/orient/pkg/orientation"
)

func newBatchCmd(logs *logging.SlogManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [file.csv|-]",
		Short: "Decompose every row of a CSV file",
		Long: `Reads rows of nine numbers (upX,upY,upZ,upFrontX,upFrontY,upFrontZ,vX,vY,vZ)
from a file, or from stdin when the file is "-" or omitted. A header row and
lines starting with # are skipped. Writes one CSV row or JSON line per input
row.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logs.Logger()

			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") && config.GetString("output.format") == "json" {
				format = "json"
			}
			keepGoing, err := cmd.Flags().GetBool("keep-going")
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			name := "stdin"
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in, name = f, args[0]
			}

			out, err := samples.NewWriter(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}

			total, failed := 0, 0
			r := samples.NewReader(in)
			for {
				row, err := r.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					var rowErr *samples.RowError
					if !errors.As(err, &rowErr) {
						return err
					}
					total++
					failed++
					log.Warn("Skipping row", "input", name, "line", rowErr.Line, "error", rowErr.Err)
					continue
				}

				total++
				res, err := orientation.Resolve(row.Reading)
				if err != nil {
					failed++
					log.Warn("Skipping row", "input", name, "line", row.Line, "error", err)
					continue
				}
				if err := out.Write(row.Line, res); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			if err := out.Flush(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			log.Info("Batch done", "input", name, "rows", total, "failed", failed)
			if failed > 0 && !keepGoing {
				return fmt.Errorf("%d of %d rows failed", failed, total)
			}
			return nil
		},
	}
	cmd.Flags().String("format", "csv", "output format (csv, json)")
	cmd.Flags().Bool("keep-going", false, "exit successfully even if some rows failed")
	return cmd
}
