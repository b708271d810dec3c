package samples

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/orientation"
)

// FieldsPerRow is the column count of an input row:
// upX,upY,upZ,upFrontX,upFrontY,upFrontZ,vX,vY,vZ.
const FieldsPerRow = 9

// Header is the column names accepted (and written) as a header row.
var Header = []string{"upX", "upY", "upZ", "upFrontX", "upFrontY", "upFrontZ", "vX", "vY", "vZ"}

// Row is one parsed input row.
type Row struct {
	Line    int
	Reading orientation.Reading
}

// RowError reports a row that could not be parsed. Reading can continue
// after a RowError.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Reader reads readings from CSV. Lines starting with '#' are comments.
// If the first field of the first record is not a number the record is
// treated as a header and skipped.
type Reader struct {
	r     *csv.Reader
	first bool
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &Reader{r: cr, first: true}
}

// Next returns the next row, io.EOF at the end of input, a *RowError for
// a malformed row, or another error if the input cannot be read.
func (r *Reader) Next() (Row, error) {
	for {
		record, err := r.r.Read()
		if err == io.EOF {
			return Row{}, io.EOF
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				r.first = false
				return Row{}, &RowError{Line: perr.Line, Err: perr.Err}
			}
			return Row{}, fmt.Errorf("read csv: %w", err)
		}

		line, _ := r.r.FieldPos(0)
		first := r.first
		r.first = false

		if first && isHeader(record) {
			continue
		}

		if len(record) != FieldsPerRow {
			return Row{}, &RowError{Line: line, Err: fmt.Errorf("want %d fields, got %d", FieldsPerRow, len(record))}
		}
		v, err := parseFloats(record)
		if err != nil {
			return Row{}, &RowError{Line: line, Err: err}
		}

		reading := orientation.Reading{
			Up:      math3d.V3(v[0], v[1], v[2]),
			UpFront: math3d.V3(v[3], v[4], v[5]),
			Vector:  math3d.V3(v[6], v[7], v[8]),
		}
		if !reading.Up.IsFinite() || !reading.UpFront.IsFinite() || !reading.Vector.IsFinite() {
			return Row{}, &RowError{Line: line, Err: errNotFinite}
		}
		return Row{Line: line, Reading: reading}, nil
	}
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	return err != nil
}

