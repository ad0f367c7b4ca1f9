package pipeline

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/hstree/hstree/internal/hierarchy"
	"github.com/hstree/hstree/internal/reader"
	"github.com/hstree/hstree/internal/store"
)

const workerCSV = `HS Code,Item Description,Level,Remark
,Chapter 25,,
,Chapter note applies to all headings,,notes
2501,Salt,,Tariff
2501 0010,-- Common salt,--,Tariff
`

func newTestWorker(t *testing.T) (*Worker, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "test.db"), filepath.Join(dir, "artifacts"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := NewWorker(st, log, reader.DefaultMapping(), hierarchy.DefaultOptions(), false)
	return w, st
}

func TestWorker_ProcessEndToEnd(t *testing.T) {
	w, st := newTestWorker(t)

	job := &Job{
		ID:         "job1",
		ScheduleID: "sched1",
		Status:     StatusQueued,
		Filename:   "chapter25.csv",
		CreatedAt:  time.Now(),
	}
	job.SetFileData([]byte(workerCSV))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%v)", snap.Status, snap.Progress.Errors)
	}
	// 4 rows total, one is a note row: 3 structural rows, 3 records.
	if snap.Progress.RowsRead != 4 {
		t.Errorf("expected 4 rows read, got %d", snap.Progress.RowsRead)
	}
	if snap.Progress.NodesBuilt != 3 || snap.Progress.RecordCount != 3 {
		t.Errorf("expected 3 nodes and 3 records, got %d/%d",
			snap.Progress.NodesBuilt, snap.Progress.RecordCount)
	}

	records, err := st.Records(context.Background(), "sched1", 10, 0)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 stored records, got %d", len(records))
	}

	// The chapter note is inherited by the nested tariff line.
	deep := records[2]
	if deep.ID != "25010010" {
		t.Fatalf("unexpected record order: %+v", records)
	}
	found := false
	for _, n := range deep.Notes {
		if n == "Chapter note applies to all headings" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected inherited chapter note, got %v", deep.Notes)
	}

	// Forest artifact is written and re-readable.
	forest, err := st.LoadForest("sched1")
	if err != nil {
		t.Fatalf("load forest: %v", err)
	}
	if forest.CountNodes() != 3 {
		t.Errorf("expected 3 nodes in artifact, got %d", forest.CountNodes())
	}
}

func TestWorker_UnsupportedExtensionFails(t *testing.T) {
	w, _ := newTestWorker(t)

	job := &Job{ID: "job2", ScheduleID: "s2", Filename: "schedule.xls", CreatedAt: time.Now()}
	job.SetFileData([]byte("whatever"))

	w.Process(context.Background(), job)

	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed, got %s", job.Snapshot().Status)
	}
}

func TestWorker_EmptyScheduleFails(t *testing.T) {
	w, _ := newTestWorker(t)

	job := &Job{ID: "job3", ScheduleID: "s3", Filename: "empty.csv", CreatedAt: time.Now()}
	job.SetFileData([]byte(""))

	w.Process(context.Background(), job)

	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed for empty schedule, got %s", job.Snapshot().Status)
	}
}
