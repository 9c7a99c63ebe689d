// Package render draws the Gantt timeline and the S-curve as standalone SVG
// documents.
package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

// Style controls the look of rendered charts. Any field left empty in a
// style file keeps its default.
type Style struct {
	Canvas CanvasStyle `yaml:"canvas"`
	Font   FontStyle   `yaml:"font"`
	Colors ColorStyle  `yaml:"colors"`
	Gantt  GanttStyle  `yaml:"gantt"`
	Curve  CurveStyle  `yaml:"curve"`
}

// CanvasStyle sizes the drawing area.
type CanvasStyle struct {
	Width        int `yaml:"width"`
	MarginLeft   int `yaml:"margin_left"`
	MarginRight  int `yaml:"margin_right"`
	MarginTop    int `yaml:"margin_top"`
	MarginBottom int `yaml:"margin_bottom"`
}

// FontStyle is applied to every label.
type FontStyle struct {
	Family string `yaml:"family"`
	Size   int    `yaml:"size"`
}

// ColorStyle holds the palette. Status keys are display statuses:
// todo, in_progress, completed, overdue.
type ColorStyle struct {
	Background string            `yaml:"background"`
	Text       string            `yaml:"text"`
	Grid       string            `yaml:"grid"`
	Track      string            `yaml:"track"`
	Baseline   string            `yaml:"baseline"`
	Today      string            `yaml:"today"`
	Planned    string            `yaml:"planned"`
	Actual     string            `yaml:"actual"`
	Status     map[string]string `yaml:"status"`
}

// GanttStyle sizes timeline rows.
type GanttStyle struct {
	RowHeight  int `yaml:"row_height"`
	BarHeight  int `yaml:"bar_height"`
	LabelWidth int `yaml:"label_width"`
}

// CurveStyle sizes the S-curve plot.
type CurveStyle struct {
	Height    int `yaml:"height"`
	LineWidth int `yaml:"line_width"`
}

// DefaultStyle returns the built-in style.
func DefaultStyle() Style {
	return Style{
		Canvas: CanvasStyle{
			Width:        1200,
			MarginLeft:   20,
			MarginRight:  20,
			MarginTop:    40,
			MarginBottom: 30,
		},
		Font: FontStyle{
			Family: "Arial, sans-serif",
			Size:   12,
		},
		Colors: ColorStyle{
			Background: "#ffffff",
			Text:       "#333333",
			Grid:       "#eeeeee",
			Track:      "#f4f4f5",
			Baseline:   "#cbd5e1",
			Today:      "#dc2626",
			Planned:    "#64748b",
			Actual:     "#2563eb",
			Status: map[string]string{
				string(task.DisplayToDo):       "#94a3b8",
				string(task.DisplayInProgress): "#2563eb",
				string(task.DisplayCompleted):  "#16a34a",
				string(task.DisplayOverdue):    "#dc2626",
			},
		},
		Gantt: GanttStyle{
			RowHeight:  28,
			BarHeight:  14,
			LabelWidth: 220,
		},
		Curve: CurveStyle{
			Height:    420,
			LineWidth: 2,
		},
	}
}

// LoadStyle reads a style file over the defaults. An empty path returns
// DefaultStyle.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("error reading style file: %w", err)
	}

	if err := yaml.Unmarshal(data, &style); err != nil {
		return Style{}, fmt.Errorf("error parsing style file: %w", err)
	}
	// Statuses missing from the file keep their default colour.
	if style.Colors.Status == nil {
		style.Colors.Status = map[string]string{}
	}
	for k, v := range DefaultStyle().Colors.Status {
		if _, ok := style.Colors.Status[k]; !ok {
			style.Colors.Status[k] = v
		}
	}

	return style, nil
}

// StatusColor returns the fill for a display status.
func (s Style) StatusColor(st task.DisplayStatus) string {
	if c, ok := s.Colors.Status[string(st)]; ok {
		return c
	}
	return s.Colors.Actual
}
