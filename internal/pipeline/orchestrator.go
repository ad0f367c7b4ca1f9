package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hstree/hstree/internal/config"
	"github.com/hstree/hstree/internal/hierarchy"
	"github.com/hstree/hstree/internal/reader"
	"github.com/hstree/hstree/internal/store"
)

// Orchestrator manages the schedule conversion pipeline.
type Orchestrator struct {
	jobs      *JobStore
	queue     chan *Job
	store     *store.Store
	log       *slog.Logger
	cfg       config.Config
	mapping   reader.Mapping
	buildOpts hierarchy.Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. The field map, when present,
// overrides the built-in column mapping and note-bearing fields.
func NewOrchestrator(cfg config.Config, fm config.FieldMap, st *store.Store, log *slog.Logger) *Orchestrator {
	mapping := reader.DefaultMapping().Merge(fm.Columns)

	buildOpts := hierarchy.Options{
		NoteFields: fm.NoteFields,
	}
	if len(buildOpts.NoteFields) == 0 {
		// The full pipeline default: harvest policy text alongside
		// the description, matching the columns note rows carry.
		buildOpts.NoteFields = []string{"item_description", "import_policy_text", "export_policy_text"}
	}

	return &Orchestrator{
		jobs:      NewJobStore(cfg.JobTTL),
		queue:     make(chan *Job, cfg.MaxQueueSize),
		store:     st,
		log:       log,
		cfg:       cfg,
		mapping:   mapping,
		buildOpts: buildOpts,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.store, o.log, o.mapping, o.buildOpts, o.cfg.PDFFallbackPdftotext)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Store returns the backing store for direct use by API handlers.
func (o *Orchestrator) Store() *store.Store {
	return o.store
}
