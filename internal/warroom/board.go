// Package warroom drives an unattended status display: it cycles through
// the S-curve, the timeline and the summary, and redraws as soon as task
// files change or the day rolls over.
package warroom

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	obraerrors "github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/errors"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/output"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/projection"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/report"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/storage"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/timeline"
)

// View names one screen of the rotation.
type View string

const (
	ViewCurve    View = "curve"
	ViewTimeline View = "timeline"
	ViewSummary  View = "summary"
)

const defaultDayCheck = time.Minute

// clearScreen homes the cursor and clears the terminal.
const clearScreen = "\033[H\033[2J"

// ParseViews validates view names, keeping their order. An empty list
// yields every view.
func ParseViews(names []string) ([]View, error) {
	if len(names) == 0 {
		return []View{ViewSummary, ViewCurve, ViewTimeline}, nil
	}
	views := make([]View, 0, len(names))
	for _, name := range names {
		switch v := View(strings.TrimSpace(name)); v {
		case ViewCurve, ViewTimeline, ViewSummary:
			views = append(views, v)
		default:
			return nil, obraerrors.InvalidViewError{Value: name}
		}
	}
	return views, nil
}

// Source supplies the live task set and the baseline to compare it with.
type Source interface {
	Tasks() ([]task.Task, error)
	Baseline() ([]task.Task, error)
}

// StoreSource reads tasks from a Store. BaselineID may be empty for no
// baseline, or storage.LatestBaseline.
type StoreSource struct {
	Store      *storage.Store
	BaselineID string
}

// Tasks lists every task in the store.
func (s StoreSource) Tasks() ([]task.Task, error) {
	return s.Store.List(storage.StatusFilter{})
}

// Baseline loads the configured snapshot's tasks.
func (s StoreSource) Baseline() ([]task.Task, error) {
	if s.BaselineID == "" {
		return nil, nil
	}
	_, tasks, err := s.Store.LoadBaseline(s.BaselineID)
	return tasks, err
}

// Options configures a Board.
type Options struct {
	Views    []View
	Interval time.Duration
	Debounce time.Duration
	// DayCheck is how often Run looks for a civil day rollover. Defaults
	// to a minute.
	DayCheck time.Duration
	// WatchDir is the directory whose changes trigger a refresh.
	WatchDir string
	Location *time.Location
	// Clear prefixes each frame with a terminal clear sequence.
	Clear bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// Board renders frames of the rotation to a writer.
type Board struct {
	src       Source
	out       io.Writer
	formatter output.Formatter
	logger    *zap.Logger
	memo      *projection.Memo
	opts      Options

	mu        sync.Mutex
	tasks     []task.Task
	baselines []task.Task
	current   int
	frames    int
}

// New creates a Board. A nil logger discards output.
func New(src Source, out io.Writer, formatter output.Formatter, opts Options, logger *zap.Logger) (*Board, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.Views) == 0 {
		opts.Views, _ = ParseViews(nil)
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("rotation interval must be positive, got %s", opts.Interval)
	}
	if opts.DayCheck <= 0 {
		opts.DayCheck = defaultDayCheck
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Board{
		src:       src,
		out:       out,
		formatter: formatter,
		logger:    logger,
		memo:      projection.NewMemo(),
		opts:      opts,
	}, nil
}

// Refresh reloads tasks and baseline from the source. On error the
// previously loaded data stays on screen.
func (b *Board) Refresh() error {
	tasks, err := b.src.Tasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	baselines, err := b.src.Baseline()
	if err != nil {
		return fmt.Errorf("failed to load baseline: %w", err)
	}

	b.mu.Lock()
	b.tasks = tasks
	b.baselines = baselines
	b.mu.Unlock()

	b.logger.Debug("board refreshed", zap.Int("tasks", len(tasks)), zap.Int("baseline_tasks", len(baselines)))
	return nil
}

// Draw writes the current view without advancing the rotation.
func (b *Board) Draw() error {
	b.mu.Lock()
	view := b.opts.Views[b.current]
	b.mu.Unlock()
	return b.draw(view)
}

// Next advances the rotation and draws the new view.
func (b *Board) Next() error {
	b.mu.Lock()
	b.current = (b.current + 1) % len(b.opts.Views)
	view := b.opts.Views[b.current]
	b.mu.Unlock()
	return b.draw(view)
}

// Current returns the view on screen.
func (b *Board) Current() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opts.Views[b.current]
}

// Frames reports how many frames have been drawn.
func (b *Board) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// Render returns the body of view at now.
func (b *Board) Render(view View, now time.Time) string {
	b.mu.Lock()
	tasks, baselines := b.tasks, b.baselines
	b.mu.Unlock()

	civil := calendar.Civil(now, b.opts.Location)
	samples := b.memo.Series(tasks, civil)
	switch view {
	case ViewCurve:
		return b.formatter.FormatSeries(samples)
	case ViewTimeline:
		return b.formatter.FormatLayout(timeline.Build(tasks, baselines, civil))
	default:
		return b.formatter.FormatSummary(report.Summarize(tasks, samples, civil))
	}
}

func (b *Board) draw(view View) error {
	now := b.opts.Now()
	body := b.Render(view, now)

	var frame strings.Builder
	if b.opts.Clear {
		frame.WriteString(clearScreen)
	}
	fmt.Fprintf(&frame, "== obra war room | %s | %s ==\n\n", view, calendar.FormatDate(calendar.Today(now, b.opts.Location)))
	frame.WriteString(body)

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.out, frame.String()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	b.frames++
	return nil
}
