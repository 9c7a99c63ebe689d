package storage

import (
	"bytes"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	obraerrors "github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/errors"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

const frontmatterDelimiter = "---"

// taskFrontmatter is the YAML-serializable portion of a task file.
type taskFrontmatter struct {
	ID              string      `yaml:"id"`
	Title           string      `yaml:"title"`
	Status          task.Status `yaml:"status"`
	Progress        int         `yaml:"progress"`
	StartDate       string      `yaml:"start_date"`
	DueDate         string      `yaml:"due_date"`
	ActualStartDate *string     `yaml:"actual_start_date,omitempty"`
	ActualEndDate   *string     `yaml:"actual_end_date,omitempty"`
	Location        string      `yaml:"location,omitempty"`
	Discipline      string      `yaml:"discipline,omitempty"`
}

// ParseMarkdown parses a markdown file with YAML frontmatter into a Task.
// Dates must be YYYY-MM-DD; the body after the frontmatter becomes the
// description.
func ParseMarkdown(content []byte) (*task.Task, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return nil, &parseError{"missing YAML frontmatter"}
	}

	var end int
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			end = i
			break
		}
	}
	if end == 0 {
		return nil, &parseError{"unclosed YAML frontmatter"}
	}

	var fm taskFrontmatter
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &fm); err != nil {
		return nil, &parseError{"invalid YAML: " + err.Error()}
	}

	start, err := requiredDate("start_date", fm.StartDate)
	if err != nil {
		return nil, err
	}
	due, err := requiredDate("due_date", fm.DueDate)
	if err != nil {
		return nil, err
	}
	actualStart, err := optionalDate("actual_start_date", fm.ActualStartDate)
	if err != nil {
		return nil, err
	}
	actualEnd, err := optionalDate("actual_end_date", fm.ActualEndDate)
	if err != nil {
		return nil, err
	}

	var description string
	if end+1 < len(lines) {
		description = strings.TrimSpace(strings.Join(lines[end+1:], "\n"))
	}

	return &task.Task{
		ID:              fm.ID,
		Title:           fm.Title,
		Status:          fm.Status,
		Progress:        fm.Progress,
		StartDate:       start,
		DueDate:         due,
		ActualStartDate: actualStart,
		ActualEndDate:   actualEnd,
		Location:        fm.Location,
		Discipline:      fm.Discipline,
		Description:     description,
	}, nil
}

// SerializeMarkdown converts a Task to markdown with YAML frontmatter.
func SerializeMarkdown(t *task.Task) ([]byte, error) {
	fm := taskFrontmatter{
		ID:              t.ID,
		Title:           t.Title,
		Status:          t.Status,
		Progress:        t.Progress,
		StartDate:       calendar.FormatDate(t.StartDate),
		DueDate:         calendar.FormatDate(t.DueDate),
		ActualStartDate: formatOptional(t.ActualStartDate),
		ActualEndDate:   formatOptional(t.ActualEndDate),
		Location:        t.Location,
		Discipline:      t.Discipline,
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(frontmatterDelimiter + "\n")

	if t.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(t.Description)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// parseError represents a structural problem in a task file.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}

func requiredDate(field, value string) (time.Time, error) {
	d, err := calendar.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, obraerrors.InvalidDateError{Field: field, Value: value}
	}
	return d, nil
}

func optionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil //nolint:nilnil // absent date is not an error
	}
	d, err := requiredDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatOptional(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := calendar.FormatDate(*d)
	return &s
}
