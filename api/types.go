package api

import "github.com/squarefactory/lsf-api/scheduler"

type Error struct {
	Error string `json:"error"`
	Data  string `json:"data,omitempty"`
}

type OK struct {
	Data string `json:"data"`
}

type GpuSpec struct {
	Count  int    `json:"count"`
	Shared bool   `json:"shared"`
	Mode   string `json:"mode,omitempty"`
	Model  string `json:"model,omitempty"`
	Memory string `json:"memory,omitempty"`
}

type ResourceSpec struct {
	Select    string `json:"select,omitempty"`
	SpanHosts int    `json:"span_hosts,omitempty"`
	Ptile     int    `json:"ptile,omitempty"`
	Memory    string `json:"memory,omitempty"`
	Swap      string `json:"swap,omitempty"`
	Affinity  string `json:"affinity,omitempty"`
}

type SubmitJobRequest struct {
	Command    string        `json:"command"`
	Tasks      int           `json:"tasks"`
	Name       string        `json:"name,omitempty"`
	Queue      string        `json:"queue,omitempty"`
	Output     string        `json:"output,omitempty"`
	Hosts      string        `json:"hosts,omitempty"`
	Rerunnable bool          `json:"rerunnable,omitempty"`
	UseGpu     bool          `json:"use_gpu,omitempty"`
	Gpu        *GpuSpec      `json:"gpu,omitempty"`
	Resources  *ResourceSpec `json:"resources,omitempty"`
	// Watch keeps resubmitting the job on confirmed failure, in the
	// background. The command must be safe to rerun.
	Watch bool `json:"watch,omitempty"`
}

type SubmitJobResponse struct {
	JobID int64 `json:"job_id"`
}

type JobStatusResponse struct {
	JobID int64  `json:"job_id"`
	State string `json:"state"`
	Raw   string `json:"raw,omitempty"`
}

func (r *SubmitJobRequest) toScheduler() *scheduler.SubmitRequest {
	req := &scheduler.SubmitRequest{
		Command:    r.Command,
		Tasks:      r.Tasks,
		Name:       r.Name,
		Queue:      r.Queue,
		Output:     r.Output,
		Hosts:      r.Hosts,
		Rerunnable: r.Rerunnable,
		UseGpu:     r.UseGpu,
	}
	if r.Gpu != nil {
		req.Gpu = &scheduler.GpuRequest{
			Count:  r.Gpu.Count,
			Shared: r.Gpu.Shared,
			Mode:   r.Gpu.Mode,
			Model:  r.Gpu.Model,
			Memory: r.Gpu.Memory,
		}
	}
	if r.Resources != nil {
		res := &scheduler.ResourceRequest{
			Select:   r.Resources.Select,
			Affinity: r.Resources.Affinity,
		}
		if r.Resources.SpanHosts > 0 || r.Resources.Ptile > 0 {
			res.Span = &scheduler.SpanRequest{
				Hosts:   r.Resources.SpanHosts,
				PerHost: r.Resources.Ptile,
			}
		}
		if r.Resources.Memory != "" || r.Resources.Swap != "" {
			res.Usage = &scheduler.UsageRequest{
				Memory: r.Resources.Memory,
				Swap:   r.Resources.Swap,
			}
		}
		req.Resources = res
	}
	return req
}
