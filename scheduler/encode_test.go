//go:build unit

package scheduler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSubmitArgs(t *testing.T) {
	t.Run("minimal request uses defaults", func(t *testing.T) {
		args, err := buildSubmitArgs(&SubmitRequest{Command: "sleep 10", Tasks: 1})
		require.NoError(t, err)
		require.Equal(t, []string{
			"-J", "job",
			"-o", "logs/job-%J.out",
			"-n", "1",
			"-rn",
			"sleep 10",
		}, args)
	})

	t.Run("full request keeps flag order", func(t *testing.T) {
		args, err := buildSubmitArgs(&SubmitRequest{
			Command:    "python sim.py",
			Tasks:      4,
			Name:       "sim",
			Queue:      "gpu_normal",
			Hosts:      "node01 node02",
			Rerunnable: true,
			Gpu:        &GpuRequest{Count: 2},
			Resources:  &ResourceRequest{Span: &SpanRequest{Hosts: 1}},
		})
		require.NoError(t, err)
		require.Equal(t, []string{
			"-J", "sim",
			"-o", "logs/sim-%J.out",
			"-n", "4",
			"-q", "gpu_normal",
			"-R", "span[hosts=1]",
			"-gpu", `"num=2:j_exclusive=yes"`,
			"-m", "node01 node02",
			"python sim.py",
		}, args)
	})

	t.Run("job name with separators is sanitized only in the output path", func(t *testing.T) {
		args, err := buildSubmitArgs(&SubmitRequest{Command: "true", Tasks: 1, Name: "exp/run1"})
		require.NoError(t, err)
		assert.Equal(t, "exp/run1", args[1])
		assert.Equal(t, "logs/exp_run1-%J.out", args[3])
		assert.NotContains(t, args[3][len("logs/"):], "/")
	})

	t.Run("explicit output path is untouched", func(t *testing.T) {
		args, err := buildSubmitArgs(&SubmitRequest{
			Command: "true",
			Tasks:   1,
			Output:  "/scratch/out/%J.log",
		})
		require.NoError(t, err)
		assert.Equal(t, "/scratch/out/%J.log", args[3])
	})

	t.Run("use_gpu without parameters emits the placeholder", func(t *testing.T) {
		args, err := buildSubmitArgs(&SubmitRequest{Command: "true", Tasks: 1, UseGpu: true})
		require.NoError(t, err)
		assert.Contains(t, args, "-gpu")
		assert.Contains(t, args, "-")
	})

	t.Run("no gpu flag when not requested", func(t *testing.T) {
		args, err := buildSubmitArgs(&SubmitRequest{Command: "true", Tasks: 1})
		require.NoError(t, err)
		assert.NotContains(t, args, "-gpu")
	})

	t.Run("empty resource request is omitted", func(t *testing.T) {
		args, err := buildSubmitArgs(&SubmitRequest{
			Command:   "true",
			Tasks:     1,
			Resources: &ResourceRequest{},
		})
		require.NoError(t, err)
		assert.NotContains(t, args, "-R")
	})

	t.Run("command is always the final element", func(t *testing.T) {
		args, err := buildSubmitArgs(&SubmitRequest{
			Command: "mpirun -n 4 python sim.py",
			Tasks:   4,
			Queue:   "normal",
		})
		require.NoError(t, err)
		assert.Equal(t, "mpirun -n 4 python sim.py", args[len(args)-1])
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name string
			req  SubmitRequest
		}{
			{"empty command", SubmitRequest{Tasks: 1}},
			{"zero tasks", SubmitRequest{Command: "true"}},
			{"negative tasks", SubmitRequest{Command: "true", Tasks: -1}},
			{"negative gpu count", SubmitRequest{Command: "true", Tasks: 1, Gpu: &GpuRequest{Count: -2}}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := buildSubmitArgs(&tt.req)
				var encErr *EncodingError
				require.ErrorAs(t, err, &encErr)
			})
		}
	})
}

func TestParseJobID(t *testing.T) {
	t.Run("extracts the bracketed identifier", func(t *testing.T) {
		for _, id := range []int64{0, 1, 42, 4213, 99999999} {
			out := fmt.Sprintf("Job <%d> is submitted to queue <gpu_normal>.", id)
			got, err := parseJobID(out)
			require.NoError(t, err)
			require.Equal(t, id, got)
		}
	})

	t.Run("first match wins", func(t *testing.T) {
		got, err := parseJobID("Job <7> is submitted to queue <8>.")
		require.NoError(t, err)
		require.Equal(t, int64(7), got)
	})

	t.Run("no bracketed digits fails with the raw text attached", func(t *testing.T) {
		for _, out := range []string{
			"",
			"Request aborted by esub.",
			"Job 123 is submitted.",
			"<abc>",
		} {
			_, err := parseJobID(out)
			var parseErr *JobIDParseError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, out, parseErr.Output)
		}
	})
}

func TestShellJoin(t *testing.T) {
	t.Run("plain words pass through", func(t *testing.T) {
		require.Equal(t, "bsub -n 1", shellJoin([]string{"bsub", "-n", "1"}))
	})

	t.Run("whitespace and metacharacters get single quotes", func(t *testing.T) {
		require.Equal(
			t,
			"bsub 'sleep 10; echo done'",
			shellJoin([]string{"bsub", "sleep 10; echo done"}),
		)
	})

	t.Run("gpu value keeps its double quotes as one word", func(t *testing.T) {
		require.Equal(
			t,
			`bsub -gpu "num=1:j_exclusive=yes"`,
			shellJoin([]string{"bsub", "-gpu", `"num=1:j_exclusive=yes"`}),
		)
	})

	t.Run("embedded single quote survives", func(t *testing.T) {
		require.Equal(t, `echo 'it'\''s fine'`, shellJoin([]string{"echo", "it's fine"}))
	})
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		stat     string
		expected State
	}{
		{"PEND", StatePending},
		{"RUN", StateRunning},
		{"PSUSP", StateSuspended},
		{"USUSP", StateSuspended},
		{"SSUSP", StateSuspended},
		{"DONE", StateDone},
		{"EXIT", StateExited},
	}
	for _, tt := range tests {
		t.Run(tt.stat, func(t *testing.T) {
			out := fmt.Sprintf(`{"COMMAND":"bjobs","JOBS":1,"RECORDS":[{"STAT":%q}]}`, tt.stat)
			require.Equal(t, tt.expected, parseStatus(out).State)
		})
	}

	t.Run("unrecognized status keeps the raw word", func(t *testing.T) {
		st := parseStatus(`{"RECORDS":[{"STAT":"ZOMBI"}]}`)
		require.Equal(t, StateUnknown, st.State)
		require.Equal(t, "ZOMBI", st.Raw)
	})

	t.Run("malformed json becomes unknown with full output", func(t *testing.T) {
		st := parseStatus("bjobs: command not found")
		require.Equal(t, StateUnknown, st.State)
		require.Equal(t, "bjobs: command not found", st.Raw)
	})

	t.Run("empty records become unknown", func(t *testing.T) {
		st := parseStatus(`{"COMMAND":"bjobs","JOBS":0,"RECORDS":[]}`)
		require.Equal(t, StateUnknown, st.State)
	})
}

func TestStatusTerminal(t *testing.T) {
	require.True(t, Status{State: StateDone}.Terminal())
	require.True(t, Status{State: StateExited}.Terminal())
	for _, s := range []State{StatePending, StateRunning, StateSuspended, StateUnknown} {
		require.False(t, Status{State: s}.Terminal(), s.String())
	}
}
