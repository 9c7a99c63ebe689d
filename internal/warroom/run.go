package warroom

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
)

// Run draws the first view, then rotates every Interval until ctx is
// cancelled. Changes to Markdown files in WatchDir trigger a refresh once
// they have been quiet for Debounce. A new civil day redraws the screen so
// today's marker and sample move forward.
func (b *Board) Run(ctx context.Context) error {
	if err := b.Refresh(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			b.logger.Warn("failed to close watcher", zap.Error(err))
		}
	}()

	if b.opts.WatchDir != "" {
		if err := watcher.Add(b.opts.WatchDir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", b.opts.WatchDir, err)
		}
		b.logger.Info("watching tasks", zap.String("dir", b.opts.WatchDir))
	}

	if err := b.Draw(); err != nil {
		return err
	}

	rotate := time.NewTicker(b.opts.Interval)
	defer rotate.Stop()
	dayCheck := time.NewTicker(b.opts.DayCheck)
	defer dayCheck.Stop()

	day := calendar.Today(b.opts.Now(), b.opts.Location)
	var debounce *time.Timer
	var pending <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("war room stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			b.logger.Debug("task file changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			if debounce == nil {
				debounce = time.NewTimer(b.opts.Debounce)
			} else {
				debounce.Reset(b.opts.Debounce)
			}
			pending = debounce.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger.Warn("watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			b.redraw(true)

		case <-rotate.C:
			if err := b.Next(); err != nil {
				return err
			}

		case <-dayCheck.C:
			today := calendar.Today(b.opts.Now(), b.opts.Location)
			if !today.Equal(day) {
				b.logger.Info("day changed", zap.String("date", calendar.FormatDate(today)))
				day = today
				b.redraw(false)
			}
		}
	}
}

// redraw repaints the current view, reloading the source first when asked.
// Failures are logged; an unattended screen keeps its last good frame.
func (b *Board) redraw(reload bool) {
	if reload {
		if err := b.Refresh(); err != nil {
			b.logger.Error("refresh failed", zap.Error(err))
			return
		}
	}
	if err := b.Draw(); err != nil {
		b.logger.Error("draw failed", zap.Error(err))
	}
}

func relevant(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".md" {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
