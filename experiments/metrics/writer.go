package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// MoveRecord describes one search of a game.
type MoveRecord struct {
	Ply      int
	Player   string
	Move     string
	Score    float64
	Book     bool
	Nodes    int
	Leaves   int
	Cutoffs  int
	Duration time.Duration
}

type GameRecord struct {
	First     string
	Second    string
	Winner    string // empty for a tie or a stopped game
	Tie       bool
	Stopped   bool
	Moves     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named by the current timestamp.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecord(record GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"first", "second", "winner", "tie", "stopped", "moves", "start_time", "end_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	row := []string{
		record.First,
		record.Second,
		record.Winner,
		strconv.FormatBool(record.Tie),
		strconv.FormatBool(record.Stopped),
		strconv.Itoa(record.Moves),
		record.StartTime.Format(time.RFC3339),
		record.EndTime.Format(time.RFC3339),
		record.Duration.String(),
	}
	err = writer.Write(row)
	if err != nil {
		return fmt.Errorf("failed to write game record row: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"ply", "player", "move", "score", "book", "nodes", "leaves", "cutoffs", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Ply),
			record.Player,
			record.Move,
			strconv.FormatFloat(record.Score, 'g', -1, 64),
			strconv.FormatBool(record.Book),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Cutoffs),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
