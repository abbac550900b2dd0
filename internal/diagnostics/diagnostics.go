// Package diagnostics computes numeric diagnostics on solver outputs: error
// norms against a reference solution and convergence-rate estimates from
// (step-size, error) samples.
package diagnostics

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrInsufficientData is returned when fewer than two samples are
	// available for a convergence estimate.
	ErrInsufficientData = errors.New("need at least two samples to estimate convergence rate")

	// ErrNonPositiveError is returned when an error sample is not strictly
	// positive; the log-log slope is undefined otherwise.
	ErrNonPositiveError = errors.New("error samples must be strictly positive")

	// ErrInvalidStepSizes is returned when the two step sizes of the slope
	// are not positive or not distinct.
	ErrInvalidStepSizes = errors.New("step sizes must be positive and distinct")

	// ErrEmptyTable is returned when a sample file contains no numeric rows.
	ErrEmptyTable = errors.New("no numeric rows found")
)

// ShapeMismatchError reports that a solution and its reference have
// different lengths.
type ShapeMismatchError struct {
	Len    int
	RefLen int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("solution and reference must have the same length (got %d and %d)", e.Len, e.RefLen)
}

// Metrics holds the error norms of a solution against a reference.
type Metrics struct {
	L1   float64 `json:"l1"`
	L2   float64 `json:"l2"`
	Linf float64 `json:"linf"`
}

// LoadSamples parses a numeric table from path. Rows may be comma- or
// whitespace-delimited. A file with one column yields a synthetic index
// coordinate; with two or more columns the first two are (coordinate,
// value). A single header line is skipped automatically when the first row
// fails to parse.
func LoadSamples(path string) (x, u []float64, err error) {
	file, err := os.Open(path) // nolint:gosec
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var rows [][]float64
	var headerSkipped bool

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row, parseErr := parseRow(line)
		if parseErr != nil {
			if len(rows) == 0 && !headerSkipped {
				headerSkipped = true
				continue
			}
			return nil, nil, fmt.Errorf("failed to parse %s: %w", path, parseErr)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}

	x = make([]float64, len(rows))
	u = make([]float64, len(rows))
	for i, row := range rows {
		if len(row) == 1 {
			x[i] = float64(i)
			u[i] = row[0]
			continue
		}
		x[i] = row[0]
		u[i] = row[1]
	}
	return x, u, nil
}

func parseRow(line string) ([]float64, error) {
	var fields []string
	if strings.ContainsRune(line, ',') {
		fields = strings.Split(line, ",")
	} else {
		fields = strings.Fields(line)
	}

	row := make([]float64, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", field)
		}
		row = append(row, v)
	}
	if len(row) == 0 {
		return nil, fmt.Errorf("empty row")
	}
	return row, nil
}

// ErrorMetrics computes the L1 (mean absolute), L2 (root mean square) and
// Linf (maximum absolute) norms of u against uref.
func ErrorMetrics(u, uref []float64) (Metrics, error) {
	if len(u) != len(uref) {
		return Metrics{}, &ShapeMismatchError{Len: len(u), RefLen: len(uref)}
	}
	if len(u) == 0 {
		return Metrics{}, &ShapeMismatchError{}
	}

	var sumAbs, sumSq, maxAbs float64
	for i := range u {
		diff := math.Abs(u[i] - uref[i])
		sumAbs += diff
		sumSq += diff * diff
		if diff > maxAbs {
			maxAbs = diff
		}
	}

	n := float64(len(u))
	return Metrics{
		L1:   sumAbs / n,
		L2:   math.Sqrt(sumSq / n),
		Linf: maxAbs,
	}, nil
}

// ConvergenceRate estimates the convergence rate as the log-log slope
// between the LAST TWO (step-size, error) samples:
//
//	rate = (ln e2 - ln e1) / (ln h2 - ln h1)
//
// This is deliberately a local two-point slope, not a least-squares fit
// over all samples. All error values must be strictly positive and at least
// two samples are required.
func ConvergenceRate(stepSizes, errs []float64) (float64, error) {
	if len(stepSizes) < 2 || len(errs) < 2 {
		return 0, ErrInsufficientData
	}
	if len(stepSizes) != len(errs) {
		return 0, &ShapeMismatchError{Len: len(stepSizes), RefLen: len(errs)}
	}
	for _, e := range errs {
		if e <= 0 {
			return 0, fmt.Errorf("%w (got %g)", ErrNonPositiveError, e)
		}
	}

	h1, h2 := stepSizes[len(stepSizes)-2], stepSizes[len(stepSizes)-1]
	e1, e2 := errs[len(errs)-2], errs[len(errs)-1]
	if h1 <= 0 || h2 <= 0 || h1 == h2 {
		return 0, fmt.Errorf("%w (got %g and %g)", ErrInvalidStepSizes, h1, h2)
	}

	return (math.Log(e2) - math.Log(e1)) / (math.Log(h2) - math.Log(h1)), nil
}
