package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	obraerrors "github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/errors"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

// writeFile is swapped in tests to simulate a full disk.
//
//nolint:gochecknoglobals // test seam
var writeFile = os.WriteFile

const (
	tasksDir     = "tasks"
	baselinesDir = "baselines"
	fileExt      = ".md"
)

// Store reads task files from, and writes baseline snapshots to, a project
// directory:
//
//	<base>/tasks/<id>.md
//	<base>/baselines/<snapshot>/snapshot.yaml
//	<base>/baselines/<snapshot>/<id>.md
type Store struct {
	basePath string
	logger   *zap.Logger
}

// NewStore creates a Store rooted at basePath. A nil logger discards output.
func NewStore(basePath string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{basePath: basePath, logger: logger}
}

// BasePath returns the base path of the store.
func (s *Store) BasePath() string {
	return s.basePath
}

// TasksPath returns the directory holding the live task files.
func (s *Store) TasksPath() string {
	return filepath.Join(s.basePath, tasksDir)
}

// IsInitialized checks if the tasks directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.TasksPath())
	return err == nil && info.IsDir()
}

// Init creates the project directory layout.
func (s *Store) Init(force bool) error {
	if s.IsInitialized() && !force {
		return obraerrors.AlreadyInitializedError{Path: s.basePath}
	}
	//nolint:gosec // G301: project directories are shared with the site team
	if err := os.MkdirAll(s.TasksPath(), 0o755); err != nil {
		return err
	}
	//nolint:gosec // G301: see above
	return os.MkdirAll(filepath.Join(s.basePath, baselinesDir), 0o755)
}

// Save validates t and writes it to the tasks directory.
func (s *Store) Save(t *task.Task) error {
	if !s.IsInitialized() {
		return obraerrors.NotInitializedError{Path: s.basePath}
	}
	created := !s.exists(t.ID)
	if err := writeTask(s.TasksPath(), t); err != nil {
		return err
	}
	s.logger.Debug("Saved task", zap.String("id", t.ID), zap.Bool("created", created))
	return nil
}

// Load reads and validates a single task.
func (s *Store) Load(id string) (*task.Task, error) {
	if !s.IsInitialized() {
		return nil, obraerrors.NotInitializedError{Path: s.basePath}
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	t, err := readTask(filepath.Join(s.TasksPath(), id+fileExt))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, obraerrors.TaskNotFoundError{ID: id}
	}
	return t, err
}

// List returns every valid task matching filter, ordered by planned start
// and then ID. Files that fail to parse or validate are skipped and logged.
func (s *Store) List(filter StatusFilter) ([]task.Task, error) {
	if !s.IsInitialized() {
		return nil, obraerrors.NotInitializedError{Path: s.basePath}
	}
	return s.readDir(s.TasksPath(), filter)
}

func (s *Store) readDir(dir string, filter StatusFilter) ([]task.Task, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	tasks := make([]task.Task, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		t, readErr := readTask(path)
		if readErr != nil {
			s.logger.Warn("Skipping task file", zap.String("path", path), zap.Error(readErr))
			continue
		}
		if filter.Matches(t.Status) {
			tasks = append(tasks, *t)
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].StartDate.Equal(tasks[j].StartDate) {
			return tasks[i].StartDate.Before(tasks[j].StartDate)
		}
		return tasks[i].ID < tasks[j].ID
	})

	s.logger.Debug("Loaded tasks", zap.String("dir", dir), zap.Int("count", len(tasks)))
	return tasks, nil
}

func readTask(path string) (*task.Task, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := ParseMarkdown(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if t.ID == "" {
		t.ID = strings.TrimSuffix(filepath.Base(path), fileExt)
	}
	if err = task.Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

func writeTask(dir string, t *task.Task) error {
	if err := checkID(t.ID); err != nil {
		return err
	}
	if err := task.Validate(t); err != nil {
		return err
	}
	content, err := SerializeMarkdown(t)
	if err != nil {
		return err
	}
	//nolint:gosec // G306: task files are meant to be readable by the site team
	return writeFile(filepath.Join(dir, t.ID+fileExt), content, 0o644)
}

// checkID rejects IDs that would resolve outside their directory.
func checkID(id string) error {
	if id == "" || id == "." || id == ".." || filepath.Base(id) != id {
		return obraerrors.InvalidIDError{Value: id}
	}
	return nil
}

// StatusFilter controls which statuses to include in list results.
type StatusFilter struct {
	ToDo       bool
	InProgress bool
	Completed  bool
}

// Matches returns true if the status should be included.
func (f StatusFilter) Matches(status task.Status) bool {
	if !f.ToDo && !f.InProgress && !f.Completed {
		return true
	}
	switch status {
	case task.StatusToDo:
		return f.ToDo
	case task.StatusInProgress:
		return f.InProgress
	case task.StatusCompleted:
		return f.Completed
	default:
		return false
	}
}

func (s *Store) exists(id string) bool {
	_, err := os.Stat(filepath.Join(s.TasksPath(), id+fileExt))
	return err == nil
}
