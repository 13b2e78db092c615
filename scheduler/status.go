package scheduler

import "encoding/json"

// State is the interpreted scheduler status of a job.
type State int

const (
	// StatePending means the job is waiting in a queue.
	StatePending State = iota
	// StateRunning means the job has been dispatched and is executing.
	StateRunning
	// StateSuspended covers PSUSP, USUSP and SSUSP.
	StateSuspended
	// StateDone means the job finished with exit code 0. Terminal.
	StateDone
	// StateExited means the job finished with a non-zero exit code or was
	// killed. Terminal once confirmed by the poller.
	StateExited
	// StateUnknown covers every status string outside the known vocabulary
	// as well as failed or unparseable status queries. Never terminal.
	StateUnknown
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "PEND"
	case StateRunning:
		return "RUN"
	case StateSuspended:
		return "SUSP"
	case StateDone:
		return "DONE"
	case StateExited:
		return "EXIT"
	}
	return "UNKNOWN"
}

// Status is a single observation of a job. Raw keeps the scheduler's own
// words when State alone does not tell the whole story (unknown status
// strings, failed queries).
type Status struct {
	State State
	Raw   string
}

// Terminal reports whether no further polling is useful.
func (s Status) Terminal() bool {
	return s.State == StateDone || s.State == StateExited
}

// bjobs -json shape. Only the STAT column is requested.
type bjobsOutput struct {
	Records []struct {
		Stat string `json:"STAT"`
	} `json:"RECORDS"`
}

// parseStatus interprets the output of bjobs -o stat -json. Anything that
// does not decode into at least one record becomes StateUnknown carrying
// the raw output, so a scheduler hiccup never aborts a poll loop.
func parseStatus(out string) Status {
	var parsed bjobsOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil || len(parsed.Records) == 0 {
		return Status{State: StateUnknown, Raw: out}
	}

	stat := parsed.Records[0].Stat
	switch stat {
	case "PEND":
		return Status{State: StatePending}
	case "RUN":
		return Status{State: StateRunning}
	case "PSUSP", "USUSP", "SSUSP":
		return Status{State: StateSuspended, Raw: stat}
	case "DONE":
		return Status{State: StateDone}
	case "EXIT":
		return Status{State: StateExited}
	}
	return Status{State: StateUnknown, Raw: stat}
}
