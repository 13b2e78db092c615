//go:build unit

package scheduler_test

import (
	"testing"

	"github.com/squarefactory/lsf-api/scheduler"
	"github.com/stretchr/testify/require"
)

func TestGpuRequestString(t *testing.T) {
	tests := []struct {
		name     string
		gpu      scheduler.GpuRequest
		expected string
	}{
		{
			name:     "zero value asks for one exclusive device",
			gpu:      scheduler.GpuRequest{},
			expected: `"num=1:j_exclusive=yes"`,
		},
		{
			name:     "count only renders count and exclusivity, nothing else",
			gpu:      scheduler.GpuRequest{Count: 4},
			expected: `"num=4:j_exclusive=yes"`,
		},
		{
			name:     "shared renders j_exclusive=no",
			gpu:      scheduler.GpuRequest{Count: 2, Shared: true},
			expected: `"num=2:j_exclusive=no"`,
		},
		{
			name: "all fields in fixed order",
			gpu: scheduler.GpuRequest{
				Count:  2,
				Mode:   "exclusive_process",
				Model:  "TeslaV100",
				Memory: "16G",
			},
			expected: `"num=2:mode=exclusive_process:j_exclusive=yes:gmodel=TeslaV100:gmem=16G"`,
		},
		{
			name:     "memory without model",
			gpu:      scheduler.GpuRequest{Memory: "8G"},
			expected: `"num=1:j_exclusive=yes:gmem=8G"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.gpu.String())
		})
	}
}

func TestResourceRequestString(t *testing.T) {
	tests := []struct {
		name     string
		res      scheduler.ResourceRequest
		expected string
	}{
		{
			name:     "empty request renders nothing",
			res:      scheduler.ResourceRequest{},
			expected: "",
		},
		{
			name: "all sections in select span rusage affinity order",
			res: scheduler.ResourceRequest{
				Select:   "type==X86_64",
				Span:     &scheduler.SpanRequest{Hosts: 1},
				Usage:    &scheduler.UsageRequest{Memory: "10G"},
				Affinity: "thread*1",
			},
			expected: "select[type==X86_64] span[hosts=1] rusage[mem=10G] affinity[thread*1]",
		},
		{
			name: "absent sections leave no stray separators",
			res: scheduler.ResourceRequest{
				Span:     &scheduler.SpanRequest{PerHost: 8},
				Affinity: "core*2",
			},
			expected: "span[ptile=8] affinity[core*2]",
		},
		{
			name: "usage with memory and swap",
			res: scheduler.ResourceRequest{
				Usage: &scheduler.UsageRequest{Memory: "10G", Swap: "2G"},
			},
			expected: "rusage[mem=10G,swp=2G]",
		},
		{
			name: "empty span struct is omitted",
			res: scheduler.ResourceRequest{
				Select: "gpu",
				Span:   &scheduler.SpanRequest{},
			},
			expected: "select[gpu]",
		},
		{
			name: "hosts wins over ptile",
			res: scheduler.ResourceRequest{
				Span: &scheduler.SpanRequest{Hosts: 2, PerHost: 8},
			},
			expected: "span[hosts=2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.res.String())
		})
	}
}
