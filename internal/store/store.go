// Package store persists simulation runs: one directory per run holding
// metadata.json and the recorded trajectory as CSV.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/W-A-James/G-SIM/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	G          float64            `json:"g"`
	Epsilon    float64            `json:"epsilon"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Integrator string             `json:"integrator"`
	Bodies     []string           `json:"bodies"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one run directory under the store root and returns its ID.
// The trajectory CSV carries one row per recorded frame: time, then
// position and velocity components per body, labeled by body name.
func (s *Store) Save(meta RunMetadata, rec *sim.Recorder) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if rec.Len() == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for _, b := range rec.Frames[0] {
		header = append(header,
			b.Name+"_x", b.Name+"_y", b.Name+"_z",
			b.Name+"_vx", b.Name+"_vy", b.Name+"_vz")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range rec.Frames {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(rec.Times[i], 'g', -1, 64))
		for _, b := range frame {
			row = append(row,
				strconv.FormatFloat(b.Position.X, 'g', -1, 64),
				strconv.FormatFloat(b.Position.Y, 'g', -1, 64),
				strconv.FormatFloat(b.Position.Z, 'g', -1, 64),
				strconv.FormatFloat(b.Velocity.X, 'g', -1, 64),
				strconv.FormatFloat(b.Velocity.Y, 'g', -1, 64),
				strconv.FormatFloat(b.Velocity.Z, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every run under the store root. Run directories
// with unreadable metadata are skipped rather than failing the listing.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

// Load reads metadata for a single run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads a run's CSV back as the column header plus numeric
// rows, in file order.
func (s *Store) LoadTrajectory(runID string) ([]string, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("run %s: empty trajectory", runID)
	}

	header := records[0]
	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: bad value %q: %w", runID, field, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
