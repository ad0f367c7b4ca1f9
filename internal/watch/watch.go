// Package watch ingests schedule files dropped into a local directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/hstree/hstree/internal/pipeline"
	"github.com/hstree/hstree/internal/reader"
)

// Submitter queues conversion jobs; satisfied by pipeline.Orchestrator.
type Submitter interface {
	Submit(job *pipeline.Job) error
}

// Watcher monitors a directory and submits a conversion job for each
// supported file that appears. Writes are debounced so a file still
// being copied in is only picked up once it goes quiet.
type Watcher struct {
	dir      string
	submit   Submitter
	log      *slog.Logger
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a watcher for dir.
func New(dir string, submit Submitter, log *slog.Logger) *Watcher {
	return &Watcher{
		dir:      dir,
		submit:   submit,
		log:      log,
		debounce: 500 * time.Millisecond,
		timers:   make(map[string]*time.Timer),
	}
}

// Run blocks, watching the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.log.Info("watching drop folder", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !w.eligible(event.Name) {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) eligible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return reader.IsSupportedExtension(base)
}

// schedule (re)arms the per-file debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.ingest(path)
	})
}

func (w *Watcher) ingest(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.log.Error("read dropped file failed", "path", path, "error", err)
		return
	}
	if len(data) == 0 {
		return
	}

	filename := filepath.Base(path)
	now := time.Now()
	job := &pipeline.Job{
		ID:         uuid.NewString(),
		ScheduleID: pipeline.ContentHashHex(data)[:16],
		Status:     pipeline.StatusQueued,
		Phase:      "queued",
		Filename:   filename,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	job.SetFileData(data)

	if err := w.submit.Submit(job); err != nil {
		w.log.Error("submit dropped file failed", "path", path, "error", err)
		return
	}
	w.log.Info("queued dropped file", "path", path, "job_id", job.ID, "schedule_id", job.ScheduleID)
}
