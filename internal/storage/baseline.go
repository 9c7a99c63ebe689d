package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	obraerrors "github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/errors"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

const (
	snapshotFile = "snapshot.yaml"

	// LatestBaseline resolves to the most recently captured snapshot.
	LatestBaseline = "latest"
)

// Baseline describes an immutable snapshot of the task set, used to compare
// the as-planned schedule with the as-built one.
type Baseline struct {
	ID         string    `yaml:"id"`
	Label      string    `yaml:"label"`
	CapturedAt time.Time `yaml:"captured_at"`
	TaskCount  int       `yaml:"task_count"`
}

func (s *Store) baselinePath(id string) string {
	return filepath.Join(s.basePath, baselinesDir, id)
}

// CaptureBaseline snapshots every valid task into a new baseline directory.
func (s *Store) CaptureBaseline(label string, now time.Time) (*Baseline, error) {
	tasks, err := s.List(StatusFilter{})
	if err != nil {
		return nil, err
	}

	id := task.GenerateID(label, now, func(candidate string) bool {
		_, statErr := os.Stat(s.baselinePath(candidate))
		return statErr == nil
	})
	dir := s.baselinePath(id)
	//nolint:gosec // G301: see Init
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	complete := false
	defer func() {
		if complete {
			return
		}
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			s.logger.Warn("Failed to remove partial baseline", zap.String("dir", dir), zap.Error(rmErr))
		}
	}()

	for i := range tasks {
		if err = writeTask(dir, &tasks[i]); err != nil {
			return nil, err
		}
	}

	b := &Baseline{ID: id, Label: label, CapturedAt: now.UTC(), TaskCount: len(tasks)}
	data, err := yaml.Marshal(b)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // G306: see writeTask
	if err = writeFile(filepath.Join(dir, snapshotFile), data, 0o644); err != nil {
		return nil, err
	}
	complete = true

	s.logger.Info("Captured baseline", zap.String("id", id), zap.String("label", label), zap.Int("tasks", len(tasks)))
	return b, nil
}

// ListBaselines returns all snapshots, most recent first.
func (s *Store) ListBaselines() ([]Baseline, error) {
	if !s.IsInitialized() {
		return nil, obraerrors.NotInitializedError{Path: s.basePath}
	}

	entries, err := os.ReadDir(filepath.Join(s.basePath, baselinesDir))
	if errors.Is(err, fs.ErrNotExist) {
		return []Baseline{}, nil
	}
	if err != nil {
		return nil, err
	}

	baselines := make([]Baseline, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		b, readErr := s.readSnapshot(entry.Name())
		if readErr != nil {
			s.logger.Warn("Skipping baseline", zap.String("id", entry.Name()), zap.Error(readErr))
			continue
		}
		baselines = append(baselines, *b)
	}

	sort.Slice(baselines, func(i, j int) bool {
		return baselines[i].CapturedAt.After(baselines[j].CapturedAt)
	})
	return baselines, nil
}

// LoadBaseline returns the snapshot with the given ID and its tasks. The ID
// LatestBaseline selects the most recent capture.
func (s *Store) LoadBaseline(id string) (*Baseline, []task.Task, error) {
	if err := checkID(id); err != nil {
		return nil, nil, err
	}
	if id == LatestBaseline {
		all, err := s.ListBaselines()
		if err != nil {
			return nil, nil, err
		}
		if len(all) == 0 {
			return nil, nil, obraerrors.BaselineNotFoundError{}
		}
		id = all[0].ID
	}

	b, err := s.readSnapshot(id)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, obraerrors.BaselineNotFoundError{ID: id}
	}
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.readDir(s.baselinePath(id), StatusFilter{})
	if err != nil {
		return nil, nil, err
	}
	return b, tasks, nil
}

func (s *Store) readSnapshot(id string) (*Baseline, error) {
	data, err := os.ReadFile(filepath.Join(s.baselinePath(id), snapshotFile))
	if err != nil {
		return nil, err
	}
	var b Baseline
	if err = yaml.Unmarshal(data, &b); err != nil {
		return nil, &parseError{"invalid snapshot: " + err.Error()}
	}
	return &b, nil
}
