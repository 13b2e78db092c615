// Package presets bundles ready-made submission requests for the simulation
// codes we run most. A preset only assembles a SubmitRequest; submitting and
// waiting stay with the caller.
package presets

import (
	"fmt"
	"strings"

	"github.com/squarefactory/lsf-api/scheduler"
)

// FbpicOptions tunes the fbpic preset. The zero value is usable.
type FbpicOptions struct {
	// JobName defaults to "fbpic".
	JobName string
	// Memory reserved per host. Defaults to "10G".
	Memory string
	// GpuMemory per device, e.g. "16G". Empty means no gmem clause.
	GpuMemory string
	// CondaEnv, when set, prefixes the command with conda activation.
	CondaEnv string
	// Rerunnable marks the job rerunnable instead of the default -rn.
	Rerunnable bool
}

// Fbpic builds a submission for an fbpic simulation script: one exclusive
// GPU, all tasks on a single host, one thread per task, mpirun when more
// than one task is requested.
func Fbpic(script, queue string, tasks int, opts FbpicOptions) (*scheduler.SubmitRequest, error) {
	if tasks <= 0 {
		return nil, &scheduler.EncodingError{Field: "tasks", Reason: "must be a positive integer"}
	}

	command := "python " + script
	if tasks > 1 {
		command = fmt.Sprintf("mpirun -n %d python %s", tasks, script)
	}

	if opts.CondaEnv != "" {
		command = strings.Join([]string{
			"source ~/miniconda3/etc/profile.d/conda.sh",
			"conda activate " + opts.CondaEnv,
			command,
		}, "; ")
	}

	name := opts.JobName
	if name == "" {
		name = "fbpic"
	}
	memory := opts.Memory
	if memory == "" {
		memory = "10G"
	}

	return &scheduler.SubmitRequest{
		Command:    command,
		Tasks:      tasks,
		Name:       name,
		Queue:      queue,
		Rerunnable: opts.Rerunnable,
		Gpu: &scheduler.GpuRequest{
			Count:  1,
			Mode:   "exclusive_process",
			Memory: opts.GpuMemory,
		},
		Resources: &scheduler.ResourceRequest{
			Span:     &scheduler.SpanRequest{Hosts: 1},
			Usage:    &scheduler.UsageRequest{Memory: memory},
			Affinity: "thread*1",
		},
	}, nil
}
