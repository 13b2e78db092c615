package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Lsf submits jobs to and queries an LSF cluster through an Executor. It
// holds no job state; all per-job state lives in the Job handles it hands
// out.
type Lsf struct {
	executor Executor
	user     string
}

// NewLsf builds an LSF client. user is the default UNIX user commands are
// executed as when a request does not name one.
func NewLsf(executor Executor, user string) *Lsf {
	return &Lsf{
		executor: executor,
		user:     user,
	}
}

// Submit encodes req into a bsub invocation, runs it, and extracts the
// assigned job identifier from the acknowledgement. The exact command line
// is logged before execution so every submission is reproducible from the
// logs. Returns *EncodingError for bad parameters, *SubmitError when the
// process fails, *JobIDParseError when the acknowledgement has no
// identifier.
func (l *Lsf) Submit(ctx context.Context, req *SubmitRequest) (*Job, error) {
	args, err := buildSubmitArgs(req)
	if err != nil {
		return nil, err
	}
	cmd := shellJoin(append([]string{"bsub"}, args...))

	user := req.User
	if user == "" {
		user = l.user
	}

	log.Infof("Running: %s", cmd)
	out, err := l.executor.ExecAs(ctx, user, cmd)
	if err != nil {
		log.Errorf("submit failed: %s", err)
		return nil, &SubmitError{Output: out, Err: err}
	}

	id, err := parseJobID(out)
	if err != nil {
		log.Errorf("submit acknowledged but unparseable: %s", err)
		return nil, err
	}

	return &Job{ID: id, user: user, lsf: l}, nil
}

// RunToCompletion submits req and waits for a terminal status. A confirmed
// EXIT triggers a fresh submission with identical arguments, indefinitely:
// there is no attempt cap and no backoff, so the submitted command must be
// safe to rerun. ctx is the only way to stop the loop. Returns the job that
// finally reached DONE together with that status.
func (l *Lsf) RunToCompletion(
	ctx context.Context,
	req *SubmitRequest,
	interval, grace time.Duration,
) (*Job, Status, error) {
	for {
		job, err := l.Submit(ctx, req)
		if err != nil {
			return nil, Status{}, err
		}

		st, err := job.Wait(ctx, interval, grace)
		if err != nil {
			return nil, Status{}, err
		}
		if st.State == StateDone {
			return job, st, nil
		}

		log.Warnf("job %d exited, resubmitting", job.ID)
	}
}

// CancelJob kills a job using the bkill command.
func (l *Lsf) CancelJob(ctx context.Context, req *CancelRequest) error {
	user := req.User
	if user == "" {
		user = l.user
	}
	cmd := fmt.Sprintf("bkill %d", req.JobID)
	_, err := l.executor.ExecAs(ctx, user, cmd)
	if err != nil {
		log.Errorf("cancel failed: %s", err)
	}
	return err
}

// HealthCheck runs bqueues to check that the scheduler answers at all.
func (l *Lsf) HealthCheck(ctx context.Context) error {
	_, err := l.executor.ExecAs(ctx, l.user, "bqueues")
	if err != nil {
		log.Errorf("healthcheck failed: %s", err)
	}
	return err
}

// JobStatus runs a single status query for an arbitrary identifier, for
// callers that hold a bare ID instead of a Job handle.
func (l *Lsf) JobStatus(ctx context.Context, id int64) Status {
	return l.status(ctx, l.user, id)
}

func (l *Lsf) status(ctx context.Context, user string, id int64) Status {
	cmd := fmt.Sprintf("bjobs -o stat -json %d", id)
	out, err := l.executor.ExecAs(ctx, user, cmd)
	if err != nil {
		log.Warnf("status query for job %d failed: %s", id, err)
		return Status{State: StateUnknown, Raw: fmt.Sprintf("query failed: %s: %s", err, out)}
	}
	return parseStatus(out)
}

// ListHosts parses bhosts -w into one HostInfo per execution host.
func (l *Lsf) ListHosts(ctx context.Context) ([]HostInfo, error) {
	out, err := l.executor.ExecAs(ctx, l.user, "bhosts -w")
	if err != nil {
		log.Errorf("ListHosts failed: %s", err)
		return nil, err
	}

	// HOST_NAME STATUS JL/U MAX NJOBS RUN SSUSP USUSP RSV
	var hosts []HostInfo
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		fields := strings.Fields(line)
		if len(fields) < 8 {
			continue
		}
		hosts = append(hosts, HostInfo{
			Name:      fields[0],
			Status:    fields[1],
			MaxJobs:   atoiOrZero(fields[3]),
			NumJobs:   atoiOrZero(fields[4]),
			Running:   atoiOrZero(fields[5]),
			Suspended: atoiOrZero(fields[6]) + atoiOrZero(fields[7]),
		})
	}
	return hosts, nil
}

// ListQueues parses bqueues -w into one QueueInfo per queue.
func (l *Lsf) ListQueues(ctx context.Context) ([]QueueInfo, error) {
	out, err := l.executor.ExecAs(ctx, l.user, "bqueues -w")
	if err != nil {
		log.Errorf("ListQueues failed: %s", err)
		return nil, err
	}

	// QUEUE_NAME PRIO STATUS MAX JL/U JL/P JL/H NJOBS PEND RUN SUSP
	var queues []QueueInfo
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		fields := strings.Fields(line)
		if len(fields) < 11 {
			continue
		}
		queues = append(queues, QueueInfo{
			Name:     fields[0],
			Priority: atoiOrZero(fields[1]),
			Status:   fields[2],
			NumJobs:  atoiOrZero(fields[7]),
			Pending:  atoiOrZero(fields[8]),
			Running:  atoiOrZero(fields[9]),
		})
	}
	return queues, nil
}

// atoiOrZero treats the dash LSF prints for unlimited values as zero.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
