package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hstree/hstree/internal/flatten"
	"github.com/hstree/hstree/internal/hierarchy"
	"github.com/hstree/hstree/internal/level"
	"github.com/hstree/hstree/internal/reader"
	"github.com/hstree/hstree/internal/store"
)

// Worker runs the conversion stages for a single job.
type Worker struct {
	store       *store.Store
	log         *slog.Logger
	mapping     reader.Mapping
	buildOpts   hierarchy.Options
	pdfFallback bool
}

func NewWorker(st *store.Store, log *slog.Logger, mapping reader.Mapping, buildOpts hierarchy.Options, pdfFallback bool) *Worker {
	return &Worker{
		store:       st,
		log:         log,
		mapping:     mapping,
		buildOpts:   buildOpts,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full conversion pipeline for a job: read the file
// into rows, assign levels, build the forest, flatten it, and persist
// both outputs. The core stages never fail; only the I/O edges can.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "schedule_id", job.ScheduleID, "filename", job.Filename)

	job.SetStatus(StatusReading, "reading")
	rd, err := reader.ForFile(job.Filename, w.mapping)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "reading")
		return
	}
	if pr, ok := rd.(*reader.PDFReader); ok {
		pr.FallbackPdftotext = w.pdfFallback
	}

	rows, err := rd.Read(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("read failed", "error", err)
		job.AddError(fmt.Sprintf("read: %s", err))
		job.SetStatus(StatusFailed, "reading")
		return
	}
	job.SetCounts(len(rows), -1, -1, -1)
	if len(rows) == 0 {
		log.Warn("no rows in schedule")
		job.AddError("no rows found")
		job.SetStatus(StatusFailed, "reading")
		return
	}

	job.SetStatus(StatusLeveling, "leveling")
	rows = level.Assign(rows)

	job.SetStatus(StatusBuilding, "building")
	forest := hierarchy.Build(rows, w.buildOpts)
	job.SetCounts(-1, forest.CountNodes(), len(forest), -1)
	log.Info("built hierarchy", "roots", len(forest), "nodes", forest.CountNodes())

	job.SetStatus(StatusFlattening, "flattening")
	records := flatten.Flatten(forest)
	job.SetCounts(-1, -1, -1, len(records))

	job.SetStatus(StatusStoring, "storing")
	meta := store.ScheduleMeta{
		ID:          job.ScheduleID,
		Filename:    job.Filename,
		Title:       job.Title,
		NodeCount:   forest.CountNodes(),
		RecordCount: len(records),
		CreatedAt:   job.CreatedAt,
	}
	if err := w.store.SaveSchedule(ctx, meta, forest, records); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	log.Info("conversion complete", "records", len(records),
		"elapsed_ms", time.Since(job.CreatedAt).Milliseconds())
	job.SetStatus(StatusCompleted, "done")
}
