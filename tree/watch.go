package tree

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch reloads the YAML document at path whenever it changes and delivers the rebuilt tree on the returned channel
// The parent directory is watched so editors that replace the file are observed
// The channel is closed when ctx is done
func Watch(ctx context.Context, path string, log logrus.FieldLogger) (<-chan *Document, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan *Document, 1)
	go func() {
		defer close(out)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				doc, err := LoadDocument(abs)
				if err != nil {
					log.WithError(err).WithField("path", abs).Warn("tree reload failed")
					continue
				}
				log.WithField("path", abs).Debug("tree document changed")

				// Latest document wins
				select {
				case <-out:
				default:
				}
				out <- doc

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("tree watcher error")
			}
		}
	}()

	return out, nil
}
