//nolint:testpackage // Tests require internal access for thorough testing
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	obraerrors "github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/errors"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

func day(s string) time.Time {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func newStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), DefaultDirName), nil)
	require.NoError(t, store.Init(false))
	return store
}

func TestParseMarkdown(t *testing.T) {
	content := []byte(`---
id: slab-l2
title: Pour slab L2
status: in_progress
progress: 40
start_date: 2024-01-01
due_date: "2024-01-11"
actual_start_date: 2024-01-02
location: Tower A
discipline: structure
---

Formwork checked by the site engineer.
`)

	tk, err := ParseMarkdown(content)
	require.NoError(t, err)

	assert.Equal(t, "slab-l2", tk.ID)
	assert.Equal(t, "Pour slab L2", tk.Title)
	assert.Equal(t, task.StatusInProgress, tk.Status)
	assert.Equal(t, 40, tk.Progress)
	assert.Equal(t, day("2024-01-01"), tk.StartDate)
	assert.Equal(t, day("2024-01-11"), tk.DueDate)
	require.NotNil(t, tk.ActualStartDate)
	assert.Equal(t, day("2024-01-02"), *tk.ActualStartDate)
	assert.Nil(t, tk.ActualEndDate)
	assert.Equal(t, "Tower A", tk.Location)
	assert.Equal(t, "structure", tk.Discipline)
	assert.Equal(t, "Formwork checked by the site engineer.", tk.Description)
}

func TestParseMarkdownErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no frontmatter", "just text"},
		{"unclosed frontmatter", "---\nid: a\n"},
		{"invalid yaml", "---\nid: [a\n---\n"},
		{"missing start", "---\nid: a\ndue_date: 2024-01-01\n---\n"},
		{"bad due date", "---\nid: a\nstart_date: 2024-01-01\ndue_date: soon\n---\n"},
		{"bad actual date", "---\nid: a\nstart_date: 2024-01-01\ndue_date: 2024-01-02\nactual_end_date: 2024-02-30\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMarkdown([]byte(tt.content))
			assert.Error(t, err)
		})
	}

	_, err := ParseMarkdown([]byte("---\nid: a\nstart_date: 2024-01-01\ndue_date: soon\n---\n"))
	var dateErr obraerrors.InvalidDateError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "due_date", dateErr.Field)
}

func TestSerializeMarkdownRoundTrip(t *testing.T) {
	tk := &task.Task{
		ID:              "abc123",
		Title:           "Facade panels",
		Status:          task.StatusCompleted,
		Progress:        100,
		StartDate:       day("2024-02-01"),
		DueDate:         day("2024-02-20"),
		ActualStartDate: dayPtr("2024-02-03"),
		ActualEndDate:   dayPtr("2024-02-22"),
		Description:     "Description here",
	}

	data, err := SerializeMarkdown(tk)
	require.NoError(t, err)

	parsed, err := ParseMarkdown(data)
	require.NoError(t, err)
	assert.Equal(t, tk, parsed)
}

func TestStoreOperations(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), DefaultDirName), nil)
	assert.False(t, store.IsInitialized())

	_, err := store.List(StatusFilter{})
	var notInit obraerrors.NotInitializedError
	require.True(t, errors.As(err, &notInit))

	require.NoError(t, store.Init(false))
	assert.True(t, store.IsInitialized())

	var already obraerrors.AlreadyInitializedError
	require.True(t, errors.As(store.Init(false), &already))
	require.NoError(t, store.Init(true))

	late := &task.Task{ID: "b", Title: "Later", Status: task.StatusToDo, StartDate: day("2024-03-01"), DueDate: day("2024-03-05")}
	early := &task.Task{ID: "a", Title: "Earlier", Status: task.StatusInProgress, StartDate: day("2024-01-01"), DueDate: day("2024-01-05")}
	require.NoError(t, store.Save(late))
	require.NoError(t, store.Save(early))

	loaded, err := store.Load("a")
	require.NoError(t, err)
	assert.Equal(t, "Earlier", loaded.Title)

	_, err = store.Load("missing")
	var notFound obraerrors.TaskNotFoundError
	require.True(t, errors.As(err, &notFound))

	tasks, err := store.List(StatusFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "b", tasks[1].ID)

	tasks, err = store.List(StatusFilter{ToDo: true})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].ID)
}

func TestRejectsIDsOutsideProject(t *testing.T) {
	root := t.TempDir()
	store := NewStore(filepath.Join(root, "site", DefaultDirName), nil)
	require.NoError(t, store.Init(false))

	content := `---
id: secret
title: Outside
status: todo
progress: 0
start_date: "2024-01-01"
due_date: "2024-01-02"
---
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.md"), []byte(content), 0o644))

	for _, id := range []string{"../../../secret", "../tasks/a", "sub/a", "..", "."} {
		t.Run(id, func(t *testing.T) {
			_, err := store.Load(id)
			var idErr obraerrors.InvalidIDError
			require.True(t, errors.As(err, &idErr), "got %v", err)
			assert.Equal(t, id, idErr.Value)

			_, _, err = store.LoadBaseline(id)
			require.True(t, errors.As(err, &idErr), "got %v", err)
		})
	}

	bad := &task.Task{ID: "../escape", Status: task.StatusToDo, StartDate: day("2024-01-01"), DueDate: day("2024-01-02")}
	var idErr obraerrors.InvalidIDError
	require.True(t, errors.As(store.Save(bad), &idErr))
	_, err := os.Stat(filepath.Join(store.BasePath(), "escape.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejectsInvalidTask(t *testing.T) {
	store := newStore(t)
	bad := &task.Task{ID: "x", Status: task.StatusToDo, StartDate: day("2024-01-10"), DueDate: day("2024-01-01")}

	var windowErr obraerrors.InvalidWindowError
	require.True(t, errors.As(store.Save(bad), &windowErr))
	assert.False(t, store.exists("x"))
}

func TestListSkipsMalformedFiles(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(&task.Task{ID: "ok", Status: task.StatusToDo, StartDate: day("2024-01-01"), DueDate: day("2024-01-02")}))

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(store.TasksPath(), name), []byte(content), 0o644))
	}
	write("broken.md", "no frontmatter")
	write("reversed.md", "---\nid: reversed\nstatus: todo\nstart_date: 2024-01-05\ndue_date: 2024-01-01\n---\n")
	write("notes.txt", "ignored")

	tasks, err := store.List(StatusFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "ok", tasks[0].ID)
}

func TestIDFallsBackToFileName(t *testing.T) {
	store := newStore(t)
	content := "---\ntitle: No id\nstatus: todo\nstart_date: 2024-01-01\ndue_date: 2024-01-02\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(store.TasksPath(), "from-name.md"), []byte(content), 0o644))

	tk, err := store.Load("from-name")
	require.NoError(t, err)
	assert.Equal(t, "from-name", tk.ID)
}

func TestStatusFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter StatusFilter
		status task.Status
		want   bool
	}{
		{"empty filter matches todo", StatusFilter{}, task.StatusToDo, true},
		{"empty filter matches completed", StatusFilter{}, task.StatusCompleted, true},
		{"todo filter rejects in progress", StatusFilter{ToDo: true}, task.StatusInProgress, false},
		{"in progress filter matches", StatusFilter{InProgress: true}, task.StatusInProgress, true},
		{"completed filter matches", StatusFilter{Completed: true}, task.StatusCompleted, true},
		{"unknown status", StatusFilter{ToDo: true}, task.Status("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.status))
		})
	}
}

func TestFindProjectDir(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	nested := filepath.Join(root, "site", "block-a")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	dir, err := FindProjectDir(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nested, DefaultDirName), dir)

	require.NoError(t, os.Mkdir(filepath.Join(root, "site", DefaultDirName), 0o755))
	dir, err = FindProjectDir(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "site", DefaultDirName), dir)
}
