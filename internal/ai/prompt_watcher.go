package ai

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"

	"github.com/fsnotify/fsnotify"
)

type fileStamp struct {
	modTime time.Time
	size    int64
}

// PromptWatcher watches prompt override files and calls reload after they
// settle. Editors that save through a rename are handled by also watching
// the parent directory.
type PromptWatcher struct {
	mu sync.Mutex

	files  []string
	stamps map[string]fileStamp

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	reload func() error
	logger *errors.Logger

	running bool
}

// NewPromptWatcher creates a watcher for files. A zero debounceDelay means one second.
func NewPromptWatcher(files []string, debounceDelay time.Duration, reload func() error, logger *errors.Logger) *PromptWatcher {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	abs := make([]string, 0, len(files))
	for _, file := range files {
		if p, err := filepath.Abs(file); err == nil {
			file = p
		}
		abs = append(abs, file)
	}

	return &PromptWatcher{
		files:         abs,
		stamps:        make(map[string]fileStamp),
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		reload:        reload,
		logger:        logger,
	}
}

// WatchPrompts starts a watcher that reloads cfg's prompt files into o.
// It returns nil when no prompt files are configured or watching is off.
func WatchPrompts(cfg *config.Config, o *Optimizer, logger *errors.Logger) (*PromptWatcher, error) {
	files := cfg.PromptFiles()
	if !cfg.LLM.Prompts.Watch || len(files) == 0 {
		return nil, nil
	}

	reload := func() error {
		loaded, err := cfg.LoadPrompts()
		if err != nil {
			return err
		}
		o.SetPrompts(PromptsFrom(loaded))
		return nil
	}

	w := NewPromptWatcher(files, cfg.LLM.Prompts.DebounceDelay, reload, logger)
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

// Start begins watching
func (w *PromptWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("prompt watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fsWatcher = watcher

	for _, file := range w.files {
		w.stamps[file] = stampOf(file)
		if err := w.addFileToWatcher(file); err != nil {
			w.logger.Warn("Failed to watch prompt file", "file", file, "error", err)
		}
	}

	w.running = true
	go w.watchLoop()

	w.logger.Info("Prompt file watcher started",
		"files", w.files,
		"debounce_delay", w.debounceDelay)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *PromptWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	close(w.stopChan)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.running = false

	if err := w.fsWatcher.Close(); err != nil {
		w.logger.LogError(err, "Failed to close file system watcher")
		return err
	}

	w.logger.Info("Prompt file watcher stopped")
	return nil
}

// IsRunning returns whether the watcher is currently running
func (w *PromptWatcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *PromptWatcher) addFileToWatcher(file string) error {
	dir := filepath.Dir(file)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	return nil
}

func stampOf(file string) fileStamp {
	stat, err := os.Stat(file)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{modTime: stat.ModTime(), size: stat.Size()}
}

// hasFileChanged is only called from the watch loop
func (w *PromptWatcher) hasFileChanged(file string) bool {
	current := stampOf(file)
	if current == w.stamps[file] {
		return false
	}
	w.stamps[file] = current
	return true
}

func (w *PromptWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.shouldProcessEvent(event) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.LogError(err, "File watcher error")

		case <-w.reloadChan:
			if !slices.ContainsFunc(w.files, w.hasFileChanged) {
				continue
			}
			if err := w.reload(); err != nil {
				w.logger.LogError(err, "Failed to reload prompt files, keeping previous prompts")
				continue
			}
			w.logger.Info("Prompt files reloaded", "files", w.files)

		case <-w.stopChan:
			return
		}
	}
}

func (w *PromptWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if abs, err := filepath.Abs(name); err == nil {
		name = abs
	}
	if !slices.Contains(w.files, name) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

func (w *PromptWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.reloadChan <- struct{}{}:
		default:
		}
	})
}
