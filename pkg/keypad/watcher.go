package keypad

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/BrandonKowalski/keypad/pkg/keypad/internal"
	"github.com/fsnotify/fsnotify"
)

const defaultWatchDebounce = 100 * time.Millisecond

// ProfileWatcher rebuilds the locale profile when the overrides or settings
// file changes and publishes it to a ProfileHolder on the UI thread.
type ProfileWatcher struct {
	watcher    *fsnotify.Watcher
	files      map[string]struct{}
	rebuild    func() (LocaleProfile, error)
	holder     *ProfileHolder
	dispatcher Dispatcher
	debounce   time.Duration

	mu    sync.Mutex
	timer *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewProfileWatcher watches files. Their parent directories are watched so
// editors that replace files on save are still noticed.
func NewProfileWatcher(holder *ProfileHolder, dispatcher Dispatcher, rebuild func() (LocaleProfile, error), files ...string) (*ProfileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	pw := &ProfileWatcher{
		watcher:    watcher,
		files:      make(map[string]struct{}),
		rebuild:    rebuild,
		holder:     holder,
		dispatcher: dispatcher,
		debounce:   defaultWatchDebounce,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, file := range files {
		if file == "" {
			continue
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			abs = filepath.Clean(file)
		}
		pw.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			cancel()
			_ = watcher.Close()
			return nil, err
		}
	}

	go pw.processEvents()
	return pw, nil
}

func (pw *ProfileWatcher) processEvents() {
	defer close(pw.done)
	logger := internal.GetInternalLogger()

	for {
		select {
		case <-pw.ctx.Done():
			return
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if _, watched := pw.files[filepath.Clean(event.Name)]; !watched {
				continue
			}
			pw.schedule()
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Profile watcher error", "error", err)
		}
	}
}

func (pw *ProfileWatcher) schedule() {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.timer != nil {
		pw.timer.Stop()
	}
	pw.timer = time.AfterFunc(pw.debounce, pw.reload)
}

func (pw *ProfileWatcher) reload() {
	if pw.ctx.Err() != nil {
		return
	}

	profile, err := pw.rebuild()
	if err != nil {
		internal.GetInternalLogger().Warn("Keeping previous locale profile", "error", err)
		return
	}

	pw.dispatcher.Post(func() {
		pw.holder.Replace(profile)
		internal.GetInternalLogger().Debug("Locale profile reloaded", "locale", profile.Tag.String())
	})
}

// Close stops watching.
func (pw *ProfileWatcher) Close() error {
	pw.cancel()

	pw.mu.Lock()
	if pw.timer != nil {
		pw.timer.Stop()
	}
	pw.mu.Unlock()

	err := pw.watcher.Close()
	<-pw.done
	return err
}
