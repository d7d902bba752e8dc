package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/studiofx/internal/sim"
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
	ID        string             `json:"id"`
	Effect    string             `json:"effect"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Ticks     int                `json:"ticks"`
	FrameRate float64            `json:"frame_rate"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Spring    string             `json:"spring,omitempty"`
	Pointer   string             `json:"pointer"`
	Stride    int                `json:"stride"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Trace is the per-tick record of a run as read back from disk.
type Trace struct {
	Times    []float64
	States   [][]float64
	Controls [][]float64
}

// Save writes metadata.json and trace.csv under a new run directory. Fields
// of meta that the result knows are taken from the result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", result.Effect, now.UnixNano())
	meta.Effect = result.Effect
	meta.Timestamp = now
	meta.Ticks = result.StepsTaken
	meta.Stride = result.Stride
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeTrace(csvFile, result.States, result.Controls, result.Times); err != nil {
		return "", err
	}
	return meta.ID, nil
}

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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

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

// Latest returns the ID of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs in %s", s.baseDir)
	}
	return runs[len(runs)-1].ID, nil
}

// Resolve maps "latest" or an empty id to the most recent run.
func (s *Store) Resolve(runID string) (string, error) {
	if runID == "" || runID == "latest" {
		return s.Latest()
	}
	return runID, nil
}

func (s *Store) TracePath(runID string) string {
	return filepath.Join(s.baseDir, runID, "trace.csv")
}

func (s *Store) LoadTrace(runID string) (*Trace, error) {
	file, err := os.Open(s.TracePath(runID))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	tr := &Trace{}
	if len(records) < 2 {
		return tr, nil
	}

	numStates := 0
	for _, col := range records[0][1:] {
		if strings.HasPrefix(col, "x") {
			numStates++
		}
	}

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		vals := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				val = 0
			}
			vals = append(vals, val)
		}
		n := min(numStates, len(vals))

		tr.Times = append(tr.Times, t)
		tr.States = append(tr.States, vals[:n])
		tr.Controls = append(tr.Controls, vals[n:])
	}

	return tr, nil
}
