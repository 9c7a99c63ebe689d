package output

import (
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/projection"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/report"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/storage"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/timeline"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(t *task.Task) string
	FormatTaskList(tasks []task.Task) string
	FormatSeries(samples []projection.DailySample) string
	FormatLayout(layout timeline.Layout) string
	FormatSummary(s report.Summary) string
	FormatBaselines(baselines []storage.Baseline) string
	FormatError(err error) string
	FormatMessage(msg string) string
}
