package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	metadataFile = "metadata.json"
	historyFile  = "history.csv"
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

// RunMetadata describes a stored solve. Root is meaningful only when Converged.
type RunMetadata struct {
	ID          string             `json:"id"`
	Method      string             `json:"method"`
	Function    string             `json:"function"`
	Derivative  string             `json:"derivative,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	A           *float64           `json:"a,omitempty"`
	B           *float64           `json:"b,omitempty"`
	X0          *float64           `json:"x0,omitempty"`
	Tolerance   float64            `json:"tolerance"`
	MaxIter     int                `json:"max_iter"`
	Converged   bool               `json:"converged"`
	Root        float64            `json:"root"`
	Iterations  int                `json:"iterations"`
	Evaluations int64              `json:"evaluations"`
	ElapsedNs   int64              `json:"elapsed_ns"`
	Error       string             `json:"error,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Point is one iterate and its function value.
type Point struct {
	K  int
	X  float64
	FX float64
}

// Save writes meta and the iterates under a fresh run id and returns it.
// Non-finite metric values are dropped since JSON cannot carry them.
func (s *Store) Save(meta RunMetadata, points []Point) (string, error) {
	meta.ID = fmt.Sprintf("%s_%s", meta.Method, uuid.NewString()[:8])
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if math.IsNaN(meta.Root) || math.IsInf(meta.Root, 0) {
		meta.Root = 0
	}
	meta.Metrics = finiteOnly(meta.Metrics)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, historyFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"k", "x", "fx"}); err != nil {
		return "", err
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.K),
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.FX, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns stored runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadHistory reads the iterates of a run. Malformed rows are skipped.
func (s *Store) LoadHistory(runID string) ([]Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, historyFile))
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

	if len(records) < 2 {
		return []Point{}, nil
	}

	points := make([]Point, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}

		k, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		fx, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		points = append(points, Point{K: k, X: x, FX: fx})
	}

	return points, nil
}

func finiteOnly(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
}
