// Package registry provides thread-safe access to a directory of schema
// declarations with hot reload support.
package registry

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/artpar/attrgate/adapters/yamlattr"
)

// Registry holds the current set of schema declarations, keyed by name.
// Declarations are immutable once loaded; matching always works on copies
// produced by the engine, so a declaration handed out by Get is safe to use
// while a reload replaces the set.
type Registry struct {
	mu       sync.RWMutex
	decls    map[string]yamlattr.Decl
	dir      string
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onReload []func([]string)
	onErr    []func(error)
	stopCh   chan struct{}
}

// New loads all schema declarations from dir.
func New(dir string, logger zerolog.Logger) (*Registry, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	decls, err := load(absDir)
	if err != nil {
		return nil, fmt.Errorf("load schemas: %w", err)
	}

	return &Registry{
		decls:  decls,
		dir:    absDir,
		logger: logger,
		stopCh: make(chan struct{}),
	}, nil
}

// Get returns the declaration registered under name.
func (r *Registry) Get(name string) (yamlattr.Decl, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decls[name]
	return d, ok
}

// Names returns the registered schema names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.decls))
	for name := range r.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.decls)
}

// Reload re-reads the schema directory. On failure the old set is kept.
func (r *Registry) Reload() error {
	r.logger.Info().Str("dir", r.dir).Msg("reloading schemas")

	decls, err := load(r.dir)
	if err != nil {
		r.logger.Error().Err(err).Msg("schema reload failed, keeping old set")
		for _, fn := range r.onErr {
			fn(err)
		}
		return fmt.Errorf("reload schemas: %w", err)
	}

	r.mu.Lock()
	old := len(r.decls)
	r.decls = decls
	r.mu.Unlock()

	names := r.Names()
	if old != len(decls) {
		r.logger.Info().Int("old", old).Int("new", len(decls)).Msg("schema count changed")
	}
	for _, fn := range r.onReload {
		fn(names)
	}

	r.logger.Info().Int("schemas", len(decls)).Msg("schemas reloaded")
	return nil
}

// OnReload registers a callback invoked with the schema names after each
// successful reload. Not safe to call after watching has started.
func (r *Registry) OnReload(fn func(names []string)) {
	r.onReload = append(r.onReload, fn)
}

// OnReloadError registers a callback invoked when a reload fails.
// Not safe to call after watching has started.
func (r *Registry) OnReloadError(fn func(error)) {
	r.onErr = append(r.onErr, fn)
}

// WatchDir starts watching the schema directory; writes and creates trigger
// a reload. The directory rather than individual files is watched, which
// also catches editors that save atomically.
func (r *Registry) WatchDir() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	r.watcher = watcher

	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go r.watchLoop()

	r.logger.Info().Str("dir", r.dir).Msg("watching schema directory for changes")
	return nil
}

// WatchSignals starts listening for SIGHUP to trigger reload.
func (r *Registry) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	go func() {
		for {
			select {
			case <-sigCh:
				r.logger.Info().Msg("received SIGHUP, reloading schemas")
				if err := r.Reload(); err != nil {
					r.logger.Error().Err(err).Msg("SIGHUP reload failed")
				}
			case <-r.stopCh:
				signal.Stop(sigCh)
				return
			}
		}
	}()

	r.logger.Info().Msg("listening for SIGHUP to reload schemas")
}

// Stop stops watching for file changes and signals.
func (r *Registry) Stop() {
	close(r.stopCh)
	if r.watcher != nil {
		r.watcher.Close()
	}
}

func (r *Registry) watchLoop() {
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}

			if !isSchemaFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			r.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("schema file changed")

			if err := r.Reload(); err != nil {
				r.logger.Error().Err(err).Msg("file watch reload failed")
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Error().Err(err).Msg("file watcher error")

		case <-r.stopCh:
			return
		}
	}
}

func isSchemaFile(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

func load(dir string) (map[string]yamlattr.Decl, error) {
	decls, err := yamlattr.ParseDir(dir)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]yamlattr.Decl, len(decls))
	for _, d := range decls {
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("schema %q declared in more than one file", d.Name)
		}
		byName[d.Name] = d
	}
	return byName, nil
}
