package samples

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/taigrr/orient/pkg/orientation"
)

// ResultHeader is the header of CSV output.
var ResultHeader = []string{
	"line", "up", "front", "right",
	"frontX", "frontY", "frontZ",
	"rightX", "rightY", "rightZ",
}

// Writer writes resolved rows as CSV or as JSON lines.
type Writer struct {
	csv    *csv.Writer
	json   *json.Encoder
	header bool
}

// NewWriter creates a Writer. format is "csv" or "json".
func NewWriter(w io.Writer, format string) (*Writer, error) {
	switch format {
	case "csv":
		return &Writer{csv: csv.NewWriter(w)}, nil
	case "json":
		return &Writer{json: json.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Line is the JSON form of one resolved row.
type Line struct {
	Line   int                `json:"line"`
	Result orientation.Result `json:"result"`
}

// Write writes one resolved row.
func (w *Writer) Write(line int, res orientation.Result) error {
	if w.json != nil {
		return w.json.Encode(Line{Line: line, Result: res})
	}

	if !w.header {
		if err := w.csv.Write(ResultHeader); err != nil {
			return err
		}
		w.header = true
	}

	m, f := res.Magnitudes, res.Frame
	return w.csv.Write([]string{
		strconv.Itoa(line),
		formatFloat(m.Up), formatFloat(m.Front), formatFloat(m.Right),
		formatFloat(f.Front.X), formatFloat(f.Front.Y), formatFloat(f.Front.Z),
		formatFloat(f.Right.X), formatFloat(f.Right.Y), formatFloat(f.Right.Z),
	})
}

// Flush flushes buffered CSV output.
func (w *Writer) Flush() error {
	if w.csv == nil {
		return nil
	}
	w.csv.Flush()
	return w.csv.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
