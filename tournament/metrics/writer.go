package metrics

import (
	"connect4/agent"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<UTC timestamp> and writes records there.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
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

func (w *Writer) WriteStrategies(specs []agent.Spec) error {
	header := []string{"kind", "name", "seed", "think", "max_depth", "goroutines", "duration", "episodes", "cutoff", "temperature"}
	rows := make([][]string, 0, len(specs))
	for _, spec := range specs {
		rows = append(rows, []string{
			spec.Kind,
			spec.Name,
			strconv.FormatUint(spec.Seed, 10),
			spec.Think.String(),
			strconv.Itoa(spec.MaxDepth),
			strconv.Itoa(spec.Goroutines),
			spec.Duration.String(),
			strconv.Itoa(spec.Episodes),
			strconv.Itoa(spec.Cutoff),
			strconv.FormatFloat(spec.Temperature, 'f', -1, 64),
		})
	}
	return w.writeCSV("strategies.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "first", "second", "outcome", "moves", "timeouts", "violations", "seed", "end_time"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.First,
			record.Second,
			record.Outcome,
			strconv.Itoa(record.Moves),
			strconv.Itoa(record.Timeouts),
			strconv.Itoa(record.Violations),
			strconv.FormatUint(record.Seed, 10),
			record.EndTime.UTC().Format(time.RFC3339),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "strategy", "column", "status", "elapsed"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Strategy,
			strconv.Itoa(record.Column),
			record.Status,
			record.Elapsed.String(),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteSummary stores v as summary.yaml.
func (w *Writer) WriteSummary(v any) error {
	path := filepath.Join(w.baseDir, "summary.yaml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return encoder.Close()
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
