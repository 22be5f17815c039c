package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleRun() (RunMetadata, []Point) {
	meta := RunMetadata{
		Method:     "bisection",
		Function:   "x^2 - 2",
		Tolerance:  1e-6,
		MaxIter:    100,
		Converged:  true,
		Root:       1.4142135,
		Iterations: 2,
		Metrics: map[string]float64{
			"residual": 1e-7,
			"order":    math.NaN(),
		},
	}
	points := []Point{
		{K: 0, X: 1.5, FX: 0.25},
		{K: 1, X: 1.25, FX: -0.4375},
	}
	return meta, points
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta, points := sampleRun()
	runID, err := st.Save(meta, points)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "bisection_") {
		t.Errorf("expected run id prefixed with method, got %q", runID)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Function != "x^2 - 2" {
		t.Errorf("expected function 'x^2 - 2', got '%s'", loaded.Function)
	}
	if loaded.Metrics["residual"] != 1e-7 {
		t.Errorf("expected residual 1e-7, got %g", loaded.Metrics["residual"])
	}
	if _, ok := loaded.Metrics["order"]; ok {
		t.Error("NaN metric should have been dropped")
	}

	history, err := st.LoadHistory(runID)
	if err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 points, got %d", len(history))
	}
	if history[1] != points[1] {
		t.Errorf("expected %+v, got %+v", points[1], history[1])
	}
}

func TestStoreNonFiniteHistory(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta, _ := sampleRun()
	meta.Converged = false
	meta.Root = math.Inf(1)

	runID, err := st.Save(meta, []Point{{K: 0, X: math.Inf(-1), FX: math.NaN()}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	history, err := st.LoadHistory(runID)
	if err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(history) != 1 || !math.IsInf(history[0].X, -1) || !math.IsNaN(history[0].FX) {
		t.Errorf("non-finite values lost: %+v", history)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	meta, points := sampleRun()
	if _, err := st.Save(meta, points); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(meta, points); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID == runs[1].ID {
		t.Error("run ids should be unique")
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta, points := sampleRun()
	runID, err := st.Save(meta, points)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "history.csv")); os.IsNotExist(err) {
		t.Error("history.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	meta, points := sampleRun()
	meta.Metrics = nil
	points = append(points, Point{K: 2, X: math.NaN(), FX: math.NaN()})

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, points); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.Method != "bisection" {
		t.Errorf("expected method bisection, got %s", data.Method)
	}
	if len(data.Iterates) != 2 || len(data.Values) != 2 {
		t.Errorf("expected 2 finite iterates, got %d", len(data.Iterates))
	}
}
