package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taigrr/orient/internal/samples"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/orientation"
)

// addReadingFlags registers --up and --up-front, plus --vector if
// withVector is set.
func addReadingFlags(cmd *cobra.Command, withVector bool) {
	f := cmd.Flags()
	f.String("up", "", "reading with the device upright, as x,y,z")
	f.String("up-front", "", "reading with the device tilted forward, as x,y,z")
	_ = cmd.MarkFlagRequired("up")
	_ = cmd.MarkFlagRequired("up-front")
	if withVector {
		f.String("vector", "0,0,0", "reading to decompose, as x,y,z")
	}
}

// readingFromFlags parses the flags registered by addReadingFlags.
func readingFromFlags(cmd *cobra.Command) (orientation.Reading, error) {
	var r orientation.Reading
	for _, v := range []struct {
		flag string
		dst  *math3d.Vec3
	}{
		{"up", &r.Up},
		{"up-front", &r.UpFront},
		{"vector", &r.Vector},
	} {
		f := cmd.Flags().Lookup(v.flag)
		if f == nil {
			continue
		}
		vec, err := samples.ParseVector(f.Value.String())
		if err != nil {
			return orientation.Reading{}, fmt.Errorf("--%s: %w", v.flag, err)
		}
		*v.dst = vec
	}
	return r, nil
}

func writeFrame(w io.Writer, f orientation.Frame) {
	fmt.Fprintln(w, "FRAME")
	for _, a := range orientation.Axes {
		fmt.Fprintf(w, "  %-6s %s\n", a, formatVec(f.Axis(a)))
	}
}

func writeResult(w io.Writer, res orientation.Result) {
	writeFrame(w, res.Frame)

	fmt.Fprintln(w, "COMPONENTS")
	for _, a := range orientation.Axes {
		fmt.Fprintf(w, "  %-6s %s\n", a, formatVec(res.Components.Axis(a)))
	}

	fmt.Fprintln(w, "MAGNITUDES")
	for _, a := range orientation.Axes {
		m := res.Magnitudes.Axis(a)
		fmt.Fprintf(w, "  %-6s %12.4f  %s\n", a, m, res.Magnitudes.Direction(a))
	}
}

func formatVec(v math3d.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want %s)", format, strings.Join(allowed, " or "))
}
