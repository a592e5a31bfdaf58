package export

import "time"

// Status is the lifecycle state of an export run.
type Status string

const (
	// StatusQueued means the run is recorded and waiting for the worker.
	StatusQueued Status = "queued"
	// StatusRunning means the worker is rendering artifacts.
	StatusRunning Status = "running"
	// StatusSucceeded means every requested format was stored.
	StatusSucceeded Status = "succeeded"
	// StatusFailed means rendering or storage failed; Error carries the cause.
	StatusFailed Status = "failed"
)

// Artifact records one stored output of a run.
type Artifact struct {
	Key         string    `json:"key"`
	Format      Format    `json:"format"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Run is one export run record as kept in history and returned by the API.
type Run struct {
	ID          string     `json:"id"`
	Formats     []Format   `json:"formats"`
	Status      Status     `json:"status"`
	Error       string     `json:"error,omitempty"`
	Artifacts   []Artifact `json:"artifacts,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
