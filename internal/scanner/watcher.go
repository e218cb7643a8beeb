package scanner

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch blocks watching rootDir for file changes and invokes onChange
// after events settle for the debounce interval. Ignored directories are
// not watched; newly created directories are added on the fly. Returns
// when ctx is cancelled.
func (s *Scanner) Watch(ctx context.Context, rootDir string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := s.addDirectories(watcher, rootDir, rootDir); err != nil {
		return err
	}

	var debounceTimer *time.Timer
	changedCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Chmod == event.Op {
				continue
			}
			relPath, relErr := filepath.Rel(rootDir, event.Name)
			if relErr == nil && s.ignored(filepath.ToSlash(relPath)) {
				continue
			}

			// New directories need their own watches.
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if err := s.addDirectories(watcher, rootDir, event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case changedCh <- struct{}{}:
				default:
				}
			})

		case <-changedCh:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// addDirectories registers dir and every non-ignored subdirectory.
func (s *Scanner) addDirectories(watcher *fsnotify.Watcher, rootDir, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		relPath, relErr := filepath.Rel(rootDir, path)
		if relErr == nil && path != rootDir && s.ignored(filepath.ToSlash(relPath)) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
