package isample

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const (
	colLogLikelihood = "log_likelihood"
	colLogPrior      = "log_prior"
	colLogProb       = "log_prob"
	colLogWeight     = "log_weight"
	thetaPrefix      = "theta"
)

// table is a parsed CSV file with a header row and float values.
type table struct {
	header []string
	rows   [][]float64
}

// readTable parses a CSV stream whose first record is a header.
// Values are parsed as float64; "inf", "-inf" and "nan" are accepted.
func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	t := &table{header: header}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := make([]float64, len(rec))
		for i, v := range rec {
			row[i], err = strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: invalid value %q", line, header[i], v)
			}
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}

// column returns the index of column name or -1 if it does not exist.
func (t *table) column(name string) int {
	for i, h := range t.header {
		if h == name {
			return i
		}
	}
	return -1
}

// floats returns the values of column name.
func (t *table) floats(name string) ([]float64, error) {
	c := t.column(name)
	if c < 0 {
		return nil, fmt.Errorf("missing column %q", name)
	}

	x := make([]float64, len(t.rows))
	for i, row := range t.rows {
		x[i] = row[c]
	}

	return x, nil
}

// samples are importance sampling inputs read from CSV.
type samples struct {
	logLiks   []float64
	logPriors []float64
	logProbs  []float64
	// names of parameter columns
	names []string
	// theta is nil if the input has no parameter columns
	theta *mat.Dense
}

// readSamples reads importance sampling inputs from r.
// The CSV must contain log_likelihood, log_prior and log_prob columns.
// Columns whose name starts with theta are parameter values.
func readSamples(r io.Reader) (*samples, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}

	s := new(samples)
	if s.logLiks, err = t.floats(colLogLikelihood); err != nil {
		return nil, err
	}
	if s.logPriors, err = t.floats(colLogPrior); err != nil {
		return nil, err
	}
	if s.logProbs, err = t.floats(colLogProb); err != nil {
		return nil, err
	}

	var cols []int
	for i, h := range t.header {
		if strings.HasPrefix(h, thetaPrefix) {
			cols = append(cols, i)
			s.names = append(s.names, h)
		}
	}

	if len(cols) > 0 && len(t.rows) > 0 {
		s.theta = mat.NewDense(len(t.rows), len(cols), nil)
		for i, row := range t.rows {
			for j, c := range cols {
				s.theta.Set(i, j, row[c])
			}
		}
	}

	return s, nil
}

// readLogWeights reads raw log-weights from the log_weight column of r.
func readLogWeights(r io.Reader) ([]float64, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}

	return t.floats(colLogWeight)
}

// openInput opens path for reading; "-" is standard input.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, fmt.Errorf("no input file given")
	}
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}
