package server

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher calls onReload after a debounced change of a single file.
// The parent directory is watched so that atomic renames by editors are seen.
type fileWatcher struct {
	watcher   *fsnotify.Watcher
	filePath  string
	debounce  time.Duration
	onReload  func() error
	onError   func(error)
	stopCh    chan struct{}
	stoppedCh chan struct{}
	mu        sync.Mutex
	running   bool
}

func newFileWatcher(filePath string, debounce time.Duration, onReload func() error, onError func(error)) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &fileWatcher{
		watcher:   watcher,
		filePath:  filePath,
		debounce:  debounce,
		onReload:  onReload,
		onError:   onError,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}, nil
}

func (fw *fileWatcher) Start() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return
	}
	fw.running = true
	go fw.loop()
}

// Stop ends the watch loop and waits for it to exit.
func (fw *fileWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		fw.watcher.Close()
		return
	}
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.stoppedCh
}

func (fw *fileWatcher) loop() {
	defer close(fw.stoppedCh)
	defer fw.watcher.Close()

	absPath, _ := filepath.Abs(fw.filePath)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case <-fw.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			eventAbs, _ := filepath.Abs(event.Name)
			if eventAbs != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(fw.debounce)
			timerCh = timer.C

		case <-timerCh:
			timer, timerCh = nil, nil
			if err := fw.onReload(); err != nil && fw.onError != nil {
				fw.onError(err)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			if fw.onError != nil {
				fw.onError(err)
			}
		}
	}
}
