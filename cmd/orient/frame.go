package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/taigrr/orient/internal/config"
	"github.com/taigrr/orient/pkg/orientation"
)

func newFrameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Print the UP/FRONT/RIGHT frame built from two readings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(cmd, map[string]string{"output.format": "format"}); err != nil {
				return err
			}
			format := config.GetString("output.format")
			if err := checkFormat(format, "text", "json"); err != nil {
				return err
			}

			r, err := readingFromFlags(cmd)
			if err != nil {
				return err
			}
			f, err := orientation.Build(r.Up, r.UpFront)
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(f)
			}
			writeFrame(cmd.OutOrStdout(), f)
			return nil
		},
	}
	addReadingFlags(cmd, false)
	cmd.Flags().String("format", "text", "output format (text, json)")
	return cmd
}

func newDecomposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompose",
		Short: "Decompose a reading into signed UP/FRONT/RIGHT magnitudes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(cmd, map[string]string{"output.format": "format"}); err != nil {
				return err
			}
			format := config.GetString("output.format")
			if err := checkFormat(format, "text", "json"); err != nil {
				return err
			}

			r, err := readingFromFlags(cmd)
			if err != nil {
				return err
			}
			res, err := orientation.Resolve(r)
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			writeResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	addReadingFlags(cmd, true)
	cmd.Flags().String("format", "text", "output format (text, json)")
	return cmd
}
