package scheduler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultCheckInterval is the poll period used when Wait is called with
	// a non-positive interval.
	DefaultCheckInterval = 30 * time.Second
	// DefaultExitGrace is how long an EXIT observation has to survive
	// before it is believed.
	DefaultExitGrace = 60 * time.Second
)

// Job is the handle for a submitted job. It is created only by a successful
// Submit, after the identifier has been extracted; the ID is never re-derived
// afterwards. A Job is a value, not a resource: there is nothing to close.
type Job struct {
	ID   int64
	user string
	lsf  *Lsf
}

// Status issues one bjobs query and interprets the answer. Query failures
// are mapped to StateUnknown rather than returned, which keeps long poll
// loops alive across transient scheduler trouble.
func (j *Job) Status(ctx context.Context) Status {
	return j.lsf.status(ctx, j.user, j.ID)
}

// Wait blocks until the job reaches DONE or a confirmed EXIT and returns
// that status. It sleeps interval before the first check and after every
// non-terminal observation; minutes to hours of blocking is the expected
// mode of use. Suspended and unknown observations are logged and polling
// continues.
//
// A first EXIT observation is not trusted: the scheduler may be restarting
// the job transparently. Wait sleeps grace, checks again, and only a second
// EXIT is returned. Anything else restarts the whole protocol from the top.
// The loop is deliberately flat, a long-lived poller must not grow stack.
//
// ctx is the caller's cancellation hatch; on cancellation Wait returns
// ctx.Err() and a zero Status.
func (j *Job) Wait(ctx context.Context, interval, grace time.Duration) (Status, error) {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	if grace <= 0 {
		grace = DefaultExitGrace
	}

	for {
		if err := sleep(ctx, interval); err != nil {
			return Status{}, err
		}

		st := j.Status(ctx)
		switch st.State {
		case StateDone:
			return st, nil
		case StateExited:
			if err := sleep(ctx, grace); err != nil {
				return Status{}, err
			}
			confirmed := j.Status(ctx)
			if confirmed.State == StateExited {
				return confirmed, nil
			}
			log.Infof(
				"job %d left EXIT during the grace period (now %s), assuming scheduler restart",
				j.ID, confirmed.State,
			)
		case StatePending, StateRunning:
			// Normal life cycle, keep polling.
		default:
			log.Warnf("job %d reported %s (%q), still polling", j.ID, st.State, st.Raw)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
