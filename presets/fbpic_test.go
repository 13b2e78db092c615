//go:build unit

package presets_test

import (
	"testing"

	"github.com/squarefactory/lsf-api/presets"
	"github.com/squarefactory/lsf-api/scheduler"
	"github.com/stretchr/testify/require"
)

func TestFbpicSingleTask(t *testing.T) {
	req, err := presets.Fbpic("sim.py", "gpu_normal", 1, presets.FbpicOptions{})
	require.NoError(t, err)
	require.Equal(t, "python sim.py", req.Command)
	require.Equal(t, 1, req.Tasks)
	require.Equal(t, "fbpic", req.Name)
	require.Equal(t, "gpu_normal", req.Queue)
	require.False(t, req.Rerunnable)
	require.Equal(t, `"num=1:mode=exclusive_process:j_exclusive=yes"`, req.Gpu.String())
	require.Equal(
		t,
		"span[hosts=1] rusage[mem=10G] affinity[thread*1]",
		req.Resources.String(),
	)
}

func TestFbpicMultiTaskUsesMpirun(t *testing.T) {
	req, err := presets.Fbpic("sim.py", "gpu_normal", 8, presets.FbpicOptions{})
	require.NoError(t, err)
	require.Equal(t, "mpirun -n 8 python sim.py", req.Command)
	require.Equal(t, 8, req.Tasks)
}

func TestFbpicCondaPrefix(t *testing.T) {
	req, err := presets.Fbpic("sim.py", "", 1, presets.FbpicOptions{CondaEnv: "fbpic"})
	require.NoError(t, err)
	require.Equal(
		t,
		"source ~/miniconda3/etc/profile.d/conda.sh; conda activate fbpic; python sim.py",
		req.Command,
	)
}

func TestFbpicOptions(t *testing.T) {
	req, err := presets.Fbpic("sim.py", "night", 2, presets.FbpicOptions{
		JobName:   "lwfa-scan",
		Memory:    "32G",
		GpuMemory: "16G",
	})
	require.NoError(t, err)
	require.Equal(t, "lwfa-scan", req.Name)
	require.Contains(t, req.Gpu.String(), "gmem=16G")
	require.Contains(t, req.Resources.String(), "rusage[mem=32G]")
}

func TestFbpicRejectsNonPositiveTasks(t *testing.T) {
	for _, tasks := range []int{0, -3} {
		_, err := presets.Fbpic("sim.py", "gpu_normal", tasks, presets.FbpicOptions{})
		var encErr *scheduler.EncodingError
		require.ErrorAs(t, err, &encErr)
	}
}
