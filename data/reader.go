package data

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// Format identifies an on-disk dataset layout.
type Format int

const (
	// FormatCSV is a dense comma separated table, one example per row.
	FormatCSV Format = iota
	// FormatSparse is the "label index:value ..." line format.
	FormatSparse
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatSparse:
		return "sparse"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "csv" or "sparse" (also accepted: "libsvm", "svmlight").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "sparse", "libsvm", "svmlight":
		return FormatSparse, nil
	}
	return 0, errors.NewValidationError("format", "must be one of csv, sparse", s)
}

// CSVOptions controls ReadCSV.
type CSVOptions struct {
	// LabelColumn is the zero-based column holding the label.
	LabelColumn int
	// Header skips the first row.
	Header bool
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

// ReadCSV reads a dense table. Feature indices are assigned to the
// non-label columns from left to right starting at 0. Zero cells are not
// stored, but every column index is part of the feature universe.
func ReadCSV(r io.Reader, opts CSVOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		examples []Example
		width    = -1
		line     = 0
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv")
		}
		line++
		if line == 1 && opts.Header {
			continue
		}
		if width < 0 {
			width = len(record)
			if opts.LabelColumn < 0 || opts.LabelColumn >= width {
				return nil, errors.NewValidationError("label_column",
					fmt.Sprintf("must be in [0, %d)", width), opts.LabelColumn)
			}
		}

		var label float64
		features := make(map[int]float64, width-1)
		idx := 0
		for col, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "csv line %d column %d", line, col)
			}
			if col == opts.LabelColumn {
				label = v
				continue
			}
			features[idx] = v
			idx++
		}
		e, err := NewExample(label, features)
		if err != nil {
			return nil, errors.Wrapf(err, "csv line %d", line)
		}
		examples = append(examples, e)
	}
	if len(examples) == 0 {
		return nil, errors.NewModelError("ReadCSV", "no examples", errors.ErrEmptyData)
	}

	universe := make([]int, width-1)
	for i := range universe {
		universe[i] = i
	}
	return NewDatasetWithFeatures(universe, examples)
}

// ReadSparse reads "label index:value index:value ..." lines. Blank lines and
// lines starting with '#' are skipped, as is anything after a '#'.
func ReadSparse(r io.Reader) (*Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var examples []Example
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		label, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "sparse line %d: label", line)
		}
		features := make(map[int]float64, len(fields)-1)
		for _, f := range fields[1:] {
			colon := strings.IndexByte(f, ':')
			if colon <= 0 {
				return nil, errors.NewValueError("ReadSparse", fmt.Sprintf("line %d: malformed pair %q", line, f))
			}
			idx, err := strconv.Atoi(f[:colon])
			if err != nil {
				return nil, errors.Wrapf(err, "sparse line %d: index", line)
			}
			v, err := strconv.ParseFloat(f[colon+1:], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "sparse line %d: value", line)
			}
			if _, dup := features[idx]; dup {
				return nil, errors.NewValueError("ReadSparse", fmt.Sprintf("line %d: duplicate feature %d", line, idx))
			}
			features[idx] = v
		}
		e, err := NewExample(label, features)
		if err != nil {
			return nil, errors.Wrapf(err, "sparse line %d", line)
		}
		examples = append(examples, e)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read sparse")
	}
	if len(examples) == 0 {
		return nil, errors.NewModelError("ReadSparse", "no examples", errors.ErrEmptyData)
	}
	return NewDataset(examples), nil
}

// LoadFile opens path and reads it in the given format. For FormatSparse the
// CSV options are ignored.
func LoadFile(path string, format Format, opts CSVOptions) (*Dataset, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatCSV:
		return ReadCSV(f, opts)
	case FormatSparse:
		return ReadSparse(f)
	default:
		return nil, errors.NewValidationError("format", "unsupported", format)
	}
}

// FormatFromPath guesses a Format from the file extension; anything other
// than .csv or .tsv is treated as sparse.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV
	default:
		return FormatSparse
	}
}
