package scheduler

import "context"

type Executor interface {
	ExecAs(ctx context.Context, user string, cmd string) (string, error)
}

type SubmitRequest struct {
	// Command is the shell command the job runs. Always the last bsub
	// argument.
	Command string
	// Tasks is the number of tasks (-n). Must be positive.
	Tasks int
	// Name of the job (-J). Defaults to "job".
	Name string
	// Queue to submit to (-q). Omitted when empty.
	Queue string
	// Output file (-o). Defaults to logs/<name>-%J.out with path
	// separators in the name replaced by underscores.
	Output string
	// Hosts constrains candidate execution hosts (-m). Omitted when empty.
	Hosts string
	// Rerunnable leaves out the -rn flag; by default jobs are marked
	// non-rerunnable.
	Rerunnable bool
	// UseGpu requests the default GPU allocation when Gpu is nil.
	UseGpu bool
	// Gpu is the explicit -gpu specification. Implies a GPU request.
	Gpu *GpuRequest
	// Resources is the -R requirement string. Omitted when empty.
	Resources *ResourceRequest
	// User is a UNIX user used for impersonation. Empty means the
	// scheduler's default submit user.
	User string
}

type CancelRequest struct {
	// JobID of the job to kill.
	JobID int64
	// User is a UNIX user used for impersonation.
	User string
}

// HostInfo is one row of bhosts -w.
type HostInfo struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	MaxJobs   int    `json:"max_jobs"`
	NumJobs   int    `json:"num_jobs"`
	Running   int    `json:"running"`
	Suspended int    `json:"suspended"`
}

// QueueInfo is one row of bqueues -w.
type QueueInfo struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Status   string `json:"status"`
	NumJobs  int    `json:"num_jobs"`
	Pending  int    `json:"pending"`
	Running  int    `json:"running"`
}
