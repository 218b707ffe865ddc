package progress

import "time"

// Stage identifies a high-level step in the pipeline.
type Stage string

const (
	StageMetadata    Stage = "metadata"
	StageDownloading Stage = "downloading"
	StageMerging     Stage = "merging"
	StageCompleted   Stage = "completed"
	StageError       Stage = "error"
)

// Update conveys progress or stage changes for a job.
// Percent is 0..100 when known; negative means unknown.
type Update struct {
	JobID   string
	Stage   Stage
	Percent float64

	ETA     *time.Duration // optional
	Speed   *string        // optional, e.g., "2.5MiB/s"
	Message string         // short human-friendly status line
}

// Result is emitted once per job when it completes or fails.
type Result struct {
	JobID      string
	OutputPath string
	Bytes      int64
	Err        error // nil on success
}

// Reporter is implemented by the TUI or any observer of progress events.
type Reporter interface {
	Update(u Update)
	Result(r Result)
}
