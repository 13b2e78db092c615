// lsfrun submits a job to LSF from the command line and optionally waits
// for it to finish.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/squarefactory/lsf-api/executor"
	"github.com/squarefactory/lsf-api/scheduler"
	"github.com/squarefactory/lsf-api/utils"
)

type Options struct {
	JobName string `short:"J" long:"job-name" description:"Job name, also used for the default output file"`
	Output  string `short:"o" long:"output" description:"Output file, defaults to logs/<name>-%J.out"`
	Tasks   int    `short:"n" long:"tasks" default:"1" description:"Number of tasks"`
	Queue   string `short:"q" long:"queue" description:"Queue to submit to"`
	Hosts   string `short:"m" long:"hosts" description:"Candidate execution hosts"`

	Gpu       bool   `long:"gpu" description:"Request the default GPU allocation"`
	GpuNum    int    `long:"gpu-num" description:"Number of GPUs per host"`
	GpuMode   string `long:"gpu-mode" description:"GPU compute mode, e.g. exclusive_process"`
	GpuShared bool   `long:"gpu-shared" description:"Allow other jobs on the allocated GPUs"`
	GpuModel  string `long:"gpu-model" description:"GPU model constraint, e.g. TeslaV100"`
	GpuMem    string `long:"gpu-mem" description:"GPU memory per device, e.g. 16G"`

	Select    string `long:"select" description:"select[] predicate"`
	SpanHosts int    `long:"span-hosts" description:"Spread the job over at most this many hosts"`
	Ptile     int    `long:"ptile" description:"Tasks per host"`
	Mem       string `long:"mem" description:"Memory reserved per host, e.g. 10G"`
	Affinity  string `long:"affinity" description:"affinity[] predicate, e.g. thread*1"`

	Rerunnable bool   `short:"r" long:"rerunnable" description:"Mark the job rerunnable instead of the default -rn"`
	User       string `long:"user" description:"Submit as this UNIX user (requires root)"`

	Wait     bool `short:"w" long:"wait" description:"Block until the job reaches a terminal status"`
	Ensure   bool `long:"ensure" description:"Resubmit on confirmed failure until the job finishes; the command must be safe to rerun"`
	Interval int  `long:"interval" default:"30" description:"Poll interval in seconds"`
	Grace    int  `long:"grace" default:"60" description:"Seconds to wait before trusting an EXIT observation"`

	Args struct {
		Command []string `positional-arg-name:"command" required:"1" description:"Command to run"`
	} `positional-args:"true"`
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}

	req := &scheduler.SubmitRequest{
		Command:    strings.Join(opts.Args.Command, " "),
		Tasks:      opts.Tasks,
		Name:       opts.JobName,
		Queue:      opts.Queue,
		Output:     opts.Output,
		Hosts:      opts.Hosts,
		Rerunnable: opts.Rerunnable,
		UseGpu:     opts.Gpu,
		User:       opts.User,
	}
	if opts.GpuNum > 0 || opts.GpuMode != "" || opts.GpuModel != "" || opts.GpuMem != "" || opts.GpuShared {
		req.Gpu = &scheduler.GpuRequest{
			Count:  opts.GpuNum,
			Shared: opts.GpuShared,
			Mode:   opts.GpuMode,
			Model:  opts.GpuModel,
			Memory: opts.GpuMem,
		}
	}
	res := &scheduler.ResourceRequest{
		Select:   opts.Select,
		Affinity: opts.Affinity,
	}
	if opts.SpanHosts > 0 || opts.Ptile > 0 {
		res.Span = &scheduler.SpanRequest{Hosts: opts.SpanHosts, PerHost: opts.Ptile}
	}
	if opts.Mem != "" {
		res.Usage = &scheduler.UsageRequest{Memory: opts.Mem}
	}
	if res.String() != "" {
		req.Resources = res
	}

	output := req.Output
	if output == "" {
		name := req.Name
		if name == "" {
			name = "job"
		}
		output = "logs/" + scheduler.SafeFileName(name) + "-%J.out"
	}
	if err := utils.EnsureLogDir(output); err != nil {
		log.Warnf("failed to create log dir for %q: %s", output, err)
	}

	var exec scheduler.Executor
	if opts.User != "" {
		exec = &executor.Shell{Dir: "."}
	} else {
		exec = &executor.Local{}
	}
	lsf := scheduler.NewLsf(exec, opts.User)

	ctx := context.Background()
	interval := time.Duration(opts.Interval) * time.Second
	grace := time.Duration(opts.Grace) * time.Second

	if opts.Ensure {
		job, st, err := lsf.RunToCompletion(ctx, req, interval, grace)
		if err != nil {
			log.Fatal(err)
		}
		log.Infof("job %d finished: %s", job.ID, st.State)
		return
	}

	job, err := lsf.Submit(ctx, req)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("job %d submitted", job.ID)

	if !opts.Wait {
		return
	}

	st, err := job.Wait(ctx, interval, grace)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("job %d finished: %s", job.ID, st.State)
	if st.State != scheduler.StateDone {
		os.Exit(1)
	}
}
