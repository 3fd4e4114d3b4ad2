package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/scanner"
)

// settleDelay lets a burst of writes to one file finish before it is linted.
const settleDelay = 100 * time.Millisecond

// WatchHandler receives the issues of a file linted in watch mode.
type WatchHandler func(filename string, issues []tt.Issue)

// StartWatching lints query files under dirs each time they are written,
// until ctx is done or StopWatching is called. A nil handler logs the
// issues.
func (e *Engine) StartWatching(ctx context.Context, dirs []string, handler WatchHandler) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := addTree(watcher, dir); err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	if handler == nil {
		handler = e.reportIssues
	}

	e.watcher = watcher
	e.watchDirs = dirs
	e.isWatching = true
	go e.watchLoop(ctx, watcher, handler)
	return nil
}

// StopWatching stops the watcher started by StartWatching.
func (e *Engine) StopWatching() error {
	return e.stopWatcher(nil)
}

// stopWatcher closes the running watcher if it is w, or whichever runs when
// w is nil.
func (e *Engine) stopWatcher(w *fsnotify.Watcher) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isWatching || (w != nil && w != e.watcher) {
		e.logger.Debug("not watching")
		return nil
	}

	e.isWatching = false
	return e.watcher.Close()
}

// Watching reports whether a watcher is running.
func (e *Engine) Watching() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isWatching
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func (e *Engine) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, handler WatchHandler) {
	defer func() {
		if err := e.stopWatcher(watcher); err != nil {
			e.logger.Debug("Error closing watcher", zap.Error(err))
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(ctx, watcher, event, handler)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event, handler WatchHandler) {
	if event.Has(fsnotify.Create) {
		if err := addTree(watcher, event.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			e.logger.Debug("Not watching new path", zap.String("path", event.Name), zap.Error(err))
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !scanner.IsQueryFile(event.Name) {
		return
	}

	time.Sleep(settleDelay)
	issues, err := e.Run(ctx, event.Name)
	if err != nil {
		e.logger.Error("Error linting file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	handler(event.Name, issues)
}

func (e *Engine) reportIssues(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		e.logger.Info("No issues found", zap.String("file", filename))
		return
	}

	e.logger.Info("Found issues", zap.String("file", filename), zap.Int("count", len(issues)))
	for _, issue := range issues {
		e.logger.Info(issue.Message,
			zap.String("rule", issue.Rule),
			zap.Int("line", issue.Start.Line),
			zap.Int("column", issue.Start.Column))
	}
}
