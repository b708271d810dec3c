// Package samples reads readings from the command line and from CSV files
// and writes resolved results back out.
package samples

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/orient/pkg/math3d"
)

// ParseVector parses "x,y,z". Surrounding whitespace around each
// component is ignored.
func ParseVector(s string) (math3d.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math3d.Vec3{}, fmt.Errorf("parse vector %q: want 3 comma-separated numbers, got %d", s, len(parts))
	}
	v, err := parseFloats(parts)
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("parse vector %q: %w", s, err)
	}
	vec := math3d.V3(v[0], v[1], v[2])
	if !vec.IsFinite() {
		return math3d.Vec3{}, fmt.Errorf("parse vector %q: %w", s, errNotFinite)
	}
	return vec, nil
}

var errNotFinite = errors.New("components must be finite")

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i+1, err)
		}
		out[i] = x
	}
	return out, nil
}
