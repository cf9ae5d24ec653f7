package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store persists analysis runs under a base directory, one subdirectory per
// run with a metadata file and CSV point sets.
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
	ID          string             `json:"id"`
	Model       string             `json:"model"`
	XVar        string             `json:"x_var"`
	YVar        string             `json:"y_var"`
	Timestamp   time.Time          `json:"timestamp"`
	Params      map[string]float64 `json:"params,omitempty"`
	FixedPoints []FixedPointRecord `json:"fixed_points,omitempty"`
	Nullclines  int                `json:"nullclines"`
	Manifolds   int                `json:"manifolds"`
}

// Save writes one run: metadata.json plus nullclines.csv and manifolds.csv
// when the result has any. It returns the generated run ID.
func (s *Store) Save(res *Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", res.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Model:       res.Model,
		XVar:        res.XVar,
		YVar:        res.YVar,
		Timestamp:   time.Now(),
		Params:      res.Params,
		FixedPoints: res.FixedPoints,
		Nullclines:  len(res.Nullclines),
		Manifolds:   len(res.Manifolds),
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

	if len(res.Nullclines) > 0 {
		if err := s.writeNullclines(runDir, res); err != nil {
			return "", err
		}
	}
	if len(res.Manifolds) > 0 {
		if err := s.writeManifolds(runDir, res); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func (s *Store) writeNullclines(runDir string, res *Result) error {
	f, err := os.Create(filepath.Join(runDir, "nullclines.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"var", res.XVar, res.YVar}); err != nil {
		return err
	}
	for _, n := range res.Nullclines {
		for _, pt := range n.Points {
			row := []string{n.Var, formatFloat(pt[0]), formatFloat(pt[1])}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) writeManifolds(runDir string, res *Result) error {
	f, err := os.Create(filepath.Join(runDir, "manifolds.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"kind", "arc_len", res.XVar, res.YVar}); err != nil {
		return err
	}
	for _, m := range res.Manifolds {
		for i, pt := range m.Points {
			arc := ""
			if i < len(m.Arclengths) {
				arc = formatFloat(m.Arclengths[i])
			}
			row := []string{m.Kind, arc, formatFloat(pt[0]), formatFloat(pt[1])}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
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

// LoadNullclines reads back the per-variable point sets of a saved run.
func (s *Store) LoadNullclines(runID string) (map[string][][2]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "nullclines.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make(map[string][][2]float64)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != 3 {
			continue
		}
		x, errX := strconv.ParseFloat(rec[1], 64)
		y, errY := strconv.ParseFloat(rec[2], 64)
		if errX != nil || errY != nil {
			continue
		}
		out[rec[0]] = append(out[rec[0]], [2]float64{x, y})
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
