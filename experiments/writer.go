package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Observation is one explored candidate: the signal it was ranked by and
// the score its subtree returned.
type Observation struct {
	Signal []float64
	Score  float64
	Depth  int
	Move   string
}

// Writer streams observations to a CSV file for offline training. Errors are
// kept and reported by Flush and Close so that observing never interrupts a
// search.
type Writer struct {
	file   *os.File
	csv    *csv.Writer
	arity  int
	header bool
	err    error
}

// Open creates the file at path, including missing parent directories.
func Open(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create observations file: %w", err)
	}
	return &Writer{file: f, csv: csv.NewWriter(f)}, nil
}

// Observe writes a row. The header is derived from the first observation;
// later rows must carry signals of the same length.
func (w *Writer) Observe(o Observation) {
	if w.err != nil {
		return
	}
	if !w.header {
		w.arity = len(o.Signal)
		if err := w.csv.Write(header(w.arity)); err != nil {
			w.err = fmt.Errorf("failed to write observations header: %w", err)
			return
		}
		w.header = true
	}
	if len(o.Signal) != w.arity {
		w.err = fmt.Errorf("observation signal has %d values, header has %d", len(o.Signal), w.arity)
		return
	}

	row := make([]string, 0, w.arity+3)
	for _, v := range o.Signal {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	row = append(row,
		strconv.FormatFloat(o.Score, 'g', -1, 64),
		strconv.Itoa(o.Depth),
		o.Move,
	)
	if err := w.csv.Write(row); err != nil {
		w.err = fmt.Errorf("failed to write observation row: %w", err)
	}
}

func (w *Writer) Flush() error {
	w.csv.Flush()
	if w.err != nil {
		return w.err
	}
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush observations: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	flushErr := w.Flush()
	if err := w.file.Close(); err != nil && flushErr == nil {
		return fmt.Errorf("failed to close observations file: %w", err)
	}
	return flushErr
}

func header(arity int) []string {
	h := make([]string, 0, arity+3)
	for i := 0; i < arity; i++ {
		h = append(h, "signal_"+strconv.Itoa(i))
	}
	return append(h, "score", "depth", "move")
}

// Recorder keeps observations in memory.
type Recorder struct {
	Observations []Observation
}

func (r *Recorder) Observe(o Observation) {
	r.Observations = append(r.Observations, o)
}
