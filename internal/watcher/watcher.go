// Package watcher observes a template directory and re-renders changed
// templates into a mirrored output tree.
//
// A rebuild failure for one template never stops the watch loop: it is
// delivered to the session's error callback and the watcher keeps running.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/stencilworks/stencil/internal/engine"
	"github.com/stencilworks/stencil/internal/fileutil"
	"github.com/stencilworks/stencil/internal/logging"
)

// DefaultDebounce groups rapid change events before rebuilding.
const DefaultDebounce = 300 * time.Millisecond

// DefaultExtensions are the template extensions rebuilt on change.
var DefaultExtensions = []string{".ejs", ".hbs", ".handlebars", ".pug"}

// Config describes a watch session.
type Config struct {
	TemplateDir string
	OutputDir   string
	Engine      string
	Variables   engine.Variables
	Extensions  []string
	Debounce    time.Duration

	// OnRebuild is invoked with the output path after a successful rebuild.
	OnRebuild func(outputPath string)
	// OnError is invoked with the failure and the source template path when
	// a single rebuild fails.
	OnError func(err error, sourcePath string)
}

// WatchSession watches one template directory. Start and Stop are
// idempotent; a stopped session can be started again.
type WatchSession struct {
	config   Config
	registry *engine.Registry
	logger   logging.Logger

	mutex   sync.Mutex
	running bool
	cancel  context.CancelFunc
	watcher *fsnotify.Watcher
}

// NewSession creates an idle watch session.
func NewSession(registry *engine.Registry, logger logging.Logger, config Config) *WatchSession {
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultExtensions
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &WatchSession{
		config:   config,
		registry: registry,
		logger:   logger.WithComponent("watcher"),
	}
}

// IsRunning reports whether the session is observing the template directory.
func (s *WatchSession) IsRunning() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.running
}

// Start begins observing the template directory recursively. Starting an
// already-running session is a no-op. A setup failure leaves the session
// idle; the error callback is reserved for per-file rebuild failures.
func (s *WatchSession) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return nil
	}

	if err := fileutil.EnsureDir(s.config.OutputDir); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := addRecursive(fw, s.config.TemplateDir); err != nil {
		fw.Close()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.watcher = fw
	s.cancel = cancel
	s.running = true

	deb := newDebouncer(s.config.Debounce)
	go deb.run(ctx)
	go s.watchLoop(ctx, fw, deb)
	go s.rebuildLoop(ctx, deb)

	s.logger.Info(ctx, "watching template directory",
		"dir", s.config.TemplateDir, "output", s.config.OutputDir)
	return nil
}

// Stop cancels the watch loop and transitions the session to idle.
// In-flight rebuilds are not joined; they may finish and write output after
// Stop returns. Stopping an idle session is a no-op.
func (s *WatchSession) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.watcher.Close()
	s.watcher = nil
	s.cancel = nil
	s.running = false
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}

func (s *WatchSession) watchLoop(ctx context.Context, fw *fsnotify.Watcher, deb *debouncer) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			s.handleEvent(ctx, fw, deb, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			// Observer errors are transient; log and keep watching. They
			// are not per-file rebuild failures, so the error callback
			// stays quiet.
			if ctx.Err() == nil {
				s.logger.Warn(ctx, err, "file watcher error")
			}
		}
	}
}

func (s *WatchSession) handleEvent(ctx context.Context, fw *fsnotify.Watcher, deb *debouncer, event fsnotify.Event) {
	// New subdirectories join the watch set.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fw.Add(event.Name); err != nil && ctx.Err() == nil {
				s.logger.Warn(ctx, err, "adding directory to watch", "dir", event.Name)
			}
			return
		}
	}

	if !s.matchesExtension(event.Name) {
		return
	}
	if !s.insideTemplateDir(event.Name) {
		return
	}

	deb.add(event.Name)
}

func (s *WatchSession) rebuildLoop(ctx context.Context, deb *debouncer) {
	for {
		select {
		case <-ctx.Done():
			return
		case paths := <-deb.output:
			for _, path := range paths {
				// Events for files deleted since the event fired are ignored.
				if !fileutil.Exists(path) {
					continue
				}
				// Rebuilds are scheduled independently and may interleave;
				// near-simultaneous edits to the same file race on the same
				// output path, last write wins.
				go s.rebuild(ctx, path)
			}
		}
	}
}

func (s *WatchSession) rebuild(ctx context.Context, sourcePath string) {
	outputPath, err := s.outputPath(sourcePath)
	if err != nil {
		s.reportError(ctx, err, sourcePath)
		return
	}

	renderer := engine.NewRenderer(s.registry, s.config.Engine)
	content, err := renderer.RenderFile(ctx, sourcePath, s.config.Variables, nil)
	if err != nil {
		s.reportError(ctx, err, sourcePath)
		return
	}

	if err := fileutil.WriteText(outputPath, content); err != nil {
		s.reportError(ctx, err, sourcePath)
		return
	}

	s.logger.Debug(ctx, "rebuilt template", "source", sourcePath, "output", outputPath)
	if s.config.OnRebuild != nil {
		s.config.OnRebuild(outputPath)
	}
}

func (s *WatchSession) reportError(ctx context.Context, err error, sourcePath string) {
	// Cancellation artifacts from a stopping session never reach the
	// caller's error callback.
	if ctx.Err() != nil {
		return
	}
	s.logger.Warn(ctx, err, "rebuild failed", "source", sourcePath)
	if s.config.OnError != nil {
		s.config.OnError(err, sourcePath)
	}
}

// outputPath mirrors sourcePath under the output directory with the
// template extension swapped for .html.
func (s *WatchSession) outputPath(sourcePath string) (string, error) {
	rel, err := filepath.Rel(s.config.TemplateDir, sourcePath)
	if err != nil {
		return "", err
	}
	ext := filepath.Ext(rel)
	rel = strings.TrimSuffix(rel, ext) + ".html"
	return filepath.Join(s.config.OutputDir, rel), nil
}

func (s *WatchSession) matchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range s.config.Extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func (s *WatchSession) insideTemplateDir(path string) bool {
	rel, err := filepath.Rel(s.config.TemplateDir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
