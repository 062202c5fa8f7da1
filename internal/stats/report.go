package stats

import (
	"encoding/json"
	"os"
	"time"

	"github.com/softiron/cworker/internal/logger"
)

// Report accumulates Stats emitted by one or more controllable workers
// over a run and renders them as a JSON document once the run ends.
//
// It deliberately holds every Stat in memory rather than streaming
// them to disk as the teacher's Report does: cworker's example
// workloads run for a handful of objects in a CLI invocation or a
// test, not the hours-long soak runs the teacher's Report was built to
// survive without exhausting memory.
type Report struct {
	objectSize uint64
	started    time.Time
	stats      []*Stat
	errors     []string
}

// NewReport creates an empty Report for a run writing objects of the
// given size.
func NewReport(objectSize uint64) *Report {
	return &Report{objectSize: objectSize, started: time.Now()}
}

// Collect drains stats until the channel is closed, recording every
// value it receives. It is meant to be run in its own goroutine
// alongside the workers whose execute routines send on stats.
func (r *Report) Collect(stats <-chan *Stat) {
	for s := range stats {
		r.stats = append(r.stats, s)
	}
}

// AddError records a failure not associated with any single Stat (a
// crashed worker, for instance).
func (r *Report) AddError(err error) {
	if err != nil {
		r.errors = append(r.errors, err.Error())
	}
}

// reportDocument is the JSON shape written by WriteFile.
type reportDocument struct {
	ObjectSize uint64      `json:"object_size"`
	RunSeconds float64     `json:"run_seconds"`
	Errors     []string    `json:"errors,omitempty"`
	Analyses   []*Analysis `json:"analyses"`
}

// analyses groups the collected stats by Op and analyses each group.
func (r *Report) analyses(runTime time.Duration) []*Analysis {
	byOp := make(map[Op][]*Stat)
	for _, s := range r.stats {
		byOp[s.Op] = append(byOp[s.Op], s)
	}

	var result []*Analysis
	for _, op := range []Op{OpWrite, OpRead} {
		if subset := byOp[op]; len(subset) > 0 {
			result = append(result, analyse(op, subset, r.objectSize, runTime))
		}
	}
	return result
}

// WriteFile writes the final JSON report to path.
func (r *Report) WriteFile(path string) error {
	runTime := time.Since(r.started)

	doc := reportDocument{
		ObjectSize: r.objectSize,
		RunSeconds: runTime.Seconds(),
		Errors:     r.errors,
		Analyses:   r.analyses(runTime),
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return err
	}

	logger.Infof("stats: writing report to %v\n", path)
	return os.WriteFile(path, data, 0644)
}
