package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Effect: "flock",
		Stride: 4,
		States: []dynamo.State{
			{1.0, 0.0, 23, 0},
			{0.9, -0.1, 21.16, 0},
		},
		Controls: []dynamo.Control{
			{300, 0, 1},
			{0, 0, 0},
		},
		Times:      []float64{1.0 / 60, 2.0 / 60},
		StepsTaken: 2,
		Metrics: map[string]float64{
			"peak_repulsion": 23,
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Seed: 42, FrameRate: 60, Width: 800, Height: 600, Spring: "rk4", Pointer: "hold"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "flock_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Effect != "flock" || meta.Seed != 42 || meta.Ticks != 2 || meta.Stride != 4 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Metrics["peak_repulsion"] != 23 {
		t.Errorf("expected peak_repulsion 23, got %f", meta.Metrics["peak_repulsion"])
	}

	tr, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(tr.States) != 2 || len(tr.Times) != 2 {
		t.Fatalf("expected 2 rows, got %d states %d times", len(tr.States), len(tr.Times))
	}
	if len(tr.States[0]) != 4 || len(tr.Controls[0]) != 3 {
		t.Errorf("columns split %d/%d", len(tr.States[0]), len(tr.Controls[0]))
	}
	if tr.States[0][2] != 23 || tr.Controls[0][0] != 300 {
		t.Errorf("values lost: %v %v", tr.States[0], tr.Controls[0])
	}
}

func TestStoreListAndLatest(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
	if _, err := st.Latest(); err == nil {
		t.Error("expected error with no runs")
	}

	first, _ := st.Save(RunMetadata{}, sampleResult())
	second, err := st.Save(RunMetadata{}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, _ = st.List()
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first {
		t.Errorf("list not in time order: %v", runs)
	}
	latest, err := st.Resolve("latest")
	if err != nil || latest != second {
		t.Errorf("latest = %q (%v), want %q", latest, err, second)
	}
	if id, _ := st.Resolve(first); id != first {
		t.Errorf("resolve passed through %q", id)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	runID, err := st.Save(RunMetadata{}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	for _, name := range []string{"metadata.json", "trace.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, _ := st.Save(RunMetadata{Pointer: "hold"}, sampleResult())
	meta, _ := st.Load(runID)
	tr, _ := st.LoadTrace(runID)

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, tr); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Effect != "flock" || got.Steps != 2 || got.Pointer != "hold" || len(got.States[1]) != 4 {
		t.Errorf("export mismatch: %+v", got)
	}
}

func TestExportCSV(t *testing.T) {
	st := New(t.TempDir())
	runID, _ := st.Save(RunMetadata{}, sampleResult())
	tr, _ := st.LoadTrace(runID)

	var buf bytes.Buffer
	if err := ExportCSV(&buf, tr); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,x0,x1,x2,x3,u0,u1,u2" {
		t.Errorf("header %q", lines[0])
	}
}
