// Package watch recompiles a content tree whenever files under it change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-amplitude/internal/logging"
	"github.com/goliatone/go-amplitude/pkg/interfaces"
)

// DefaultDebounce is how long the driver waits after the first relevant
// event before triggering a pass.
const DefaultDebounce = 50 * time.Millisecond

// DefaultIgnore lists the globs dropped when no ignore list is configured.
// Patterns are matched against slash separated paths relative to the root.
var DefaultIgnore = []string{"**/.git/**", "**/*.swp", "**/*~"}

// ErrWatcherClosed is returned when the event source stops before the
// context is cancelled.
var ErrWatcherClosed = errors.New("watch: event source closed")

// CompileFunc runs one compilation pass. Errors are logged and the driver
// keeps watching.
type CompileFunc func(ctx context.Context) error

// Options configures a Driver.
type Options struct {
	Debounce time.Duration
	Ignore   []string
	Logger   interfaces.Logger
	// InitialPass queues one pass as soon as the watches are registered, so
	// edits made while it runs trigger a follow-up pass.
	InitialPass bool
}

// Driver turns bursts of filesystem events into serial compilation passes.
type Driver struct {
	root        string
	compile     CompileFunc
	debounce    time.Duration
	ignore      []string
	logger      interfaces.Logger
	initialPass bool
	passes      atomic.Int64
}

// New validates the ignore globs and returns a driver for root.
func New(root string, compile CompileFunc, opts Options) (*Driver, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("watch: root directory is required")
	}
	if compile == nil {
		return nil, errors.New("watch: compile func is required")
	}

	ignore := opts.Ignore
	if ignore == nil {
		ignore = DefaultIgnore
	}
	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("watch: invalid ignore pattern %q", pattern)
		}
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Driver{
		root:        filepath.Clean(root),
		compile:     compile,
		debounce:    debounce,
		ignore:      append([]string(nil), ignore...),
		logger:      logging.Ensure(opts.Logger),
		initialPass: opts.InitialPass,
	}, nil
}

// Passes reports how many compilation passes the driver has started.
func (d *Driver) Passes() int64 {
	return d.passes.Load()
}

// Run watches the tree until ctx is cancelled. It returns nil on
// cancellation and an error when the watcher cannot be set up or dies.
func (d *Driver) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := d.addTree(watcher, d.root); err != nil {
		return err
	}

	d.logger.Info("watch.started", "root", d.root, "debounce", d.debounce.String())
	return d.loop(ctx, watcher.Events, watcher.Errors, func(dir string) {
		if err := d.addTree(watcher, dir); err != nil {
			d.logger.Warn("watch.add_dir.failed", "path", dir, "error", err)
		}
	})
}

func (d *Driver) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, onDir func(string)) error {
	triggers := make(chan struct{}, 1)
	if d.initialPass {
		triggers <- struct{}{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.collect(gctx, events, errs, onDir, triggers)
	})
	g.Go(func() error {
		return d.process(gctx, triggers)
	})

	err := g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (d *Driver) collect(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, onDir func(string), triggers chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			d.logger.Warn("watch.error", "error", err)
		case event, ok := <-events:
			if !ok {
				return ErrWatcherClosed
			}
			if !d.observe(event, onDir) {
				continue
			}
			if !d.settle(ctx, events, onDir) {
				return nil
			}
			select {
			case triggers <- struct{}{}:
			default:
			}
		}
	}
}

// settle waits out the debounce window, absorbing events that arrive in the
// meantime, then drains whatever is still buffered.
func (d *Driver) settle(ctx context.Context, events <-chan fsnotify.Event, onDir func(string)) bool {
	timer := time.NewTimer(d.debounce)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-events:
			if !ok {
				return true
			}
			d.observe(event, onDir)
		case <-timer.C:
			for {
				select {
				case event, ok := <-events:
					if !ok {
						return true
					}
					d.observe(event, onDir)
				default:
					return true
				}
			}
		}
	}
}

func (d *Driver) process(ctx context.Context, triggers <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-triggers:
			d.pass(ctx)
		}
	}
}

func (d *Driver) pass(ctx context.Context) {
	n := d.passes.Add(1)
	started := time.Now()
	logger := d.logger.WithContext(ctx)

	if err := d.compile(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Error("watch.pass.failed", "pass", n, "error", err)
		return
	}
	logger.Info("watch.pass.completed", "pass", n, "duration", time.Since(started).String())
}

// observe reports whether event should trigger a pass and registers newly
// created directories.
func (d *Driver) observe(event fsnotify.Event, onDir func(string)) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if d.ignored(event.Name) {
		return false
	}
	if event.Has(fsnotify.Create) && onDir != nil && isDir(event.Name) {
		onDir(event.Name)
	}
	d.logger.Debug("watch.event", "path", event.Name, "op", event.Op.String())
	return true
}

func (d *Driver) ignored(path string) bool {
	rel, err := filepath.Rel(d.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range d.ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		// directory globs like **/.git/** should also drop the directory itself
		if ok, _ := doublestar.Match(pattern, rel+"/"); ok {
			return true
		}
	}
	return false
}

func (d *Driver) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watch: walk %s: %w", path, err)
		}
		if !entry.IsDir() {
			return nil
		}
		if path != d.root && d.ignored(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
