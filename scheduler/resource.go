package scheduler

import (
	"fmt"
	"strings"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// GpuRequest describes an explicit -gpu allocation.
//
// The zero value asks for one device reserved exclusively for the job,
// which is the safe default for simulation workloads: a shared device means
// a neighbour can eat the memory mid-run.
type GpuRequest struct {
	// Count is the number of devices per host (num=). Zero means one.
	Count int
	// Shared allows other jobs on the allocated devices (j_exclusive=no).
	Shared bool
	// Mode is the GPU compute mode, e.g. "shared" or "exclusive_process".
	Mode string
	// Model constrains the device model (gmodel=), e.g. "TeslaV100".
	Model string
	// Memory is the GPU memory required per device (gmem=), e.g. "16G".
	Memory string
}

// String renders the -gpu option value. The surrounding double quotes are
// part of the value so the rendered command line survives shell
// tokenization, and they match what bsub prints back in its job report.
// Sub-clauses always render in the order num, mode, j_exclusive, gmodel,
// gmem; absent fields are left out entirely.
func (g *GpuRequest) String() string {
	count := g.Count
	if count <= 0 {
		count = 1
	}

	parts := []string{fmt.Sprintf("num=%d", count)}
	if g.Mode != "" {
		parts = append(parts, "mode="+g.Mode)
	}
	parts = append(parts, "j_exclusive="+yesNo(!g.Shared))
	if g.Model != "" {
		parts = append(parts, "gmodel="+g.Model)
	}
	if g.Memory != "" {
		parts = append(parts, "gmem="+g.Memory)
	}

	return `"` + strings.Join(parts, ":") + `"`
}

// SpanRequest describes a span[] locality predicate. Hosts and PerHost are
// mutually exclusive in the scheduler's grammar; when both are set, Hosts
// wins.
type SpanRequest struct {
	// Hosts is the maximum number of hosts the job spreads over.
	Hosts int
	// PerHost is the number of tasks placed on each host (ptile=).
	PerHost int
}

func (s *SpanRequest) content() string {
	switch {
	case s.Hosts > 0:
		return fmt.Sprintf("hosts=%d", s.Hosts)
	case s.PerHost > 0:
		return fmt.Sprintf("ptile=%d", s.PerHost)
	}
	return ""
}

// UsageRequest describes a rusage[] reservation on the execution host.
type UsageRequest struct {
	// Memory reserved per host (mem=), e.g. "10G".
	Memory string
	// Swap reserved per host (swp=).
	Swap string
}

func (u *UsageRequest) content() string {
	var parts []string
	if u.Memory != "" {
		parts = append(parts, "mem="+u.Memory)
	}
	if u.Swap != "" {
		parts = append(parts, "swp="+u.Swap)
	}
	return strings.Join(parts, ",")
}

// ResourceRequest assembles a -R resource requirement from its predicate
// sections. Sections always render in the order select, span, rusage,
// affinity so identical requests produce identical command lines; absent
// sections are omitted without leaving separators behind.
type ResourceRequest struct {
	// Select is the select[] predicate content, e.g. "type==X86_64".
	Select string
	// Span places tasks across hosts.
	Span *SpanRequest
	// Usage reserves resources on the execution host.
	Usage *UsageRequest
	// Affinity is the affinity[] predicate content, e.g. "thread*1".
	Affinity string
}

// String renders the full requirement string, or "" when nothing is set.
func (r *ResourceRequest) String() string {
	var parts []string
	if r.Select != "" {
		parts = append(parts, "select["+r.Select+"]")
	}
	if r.Span != nil {
		if c := r.Span.content(); c != "" {
			parts = append(parts, "span["+c+"]")
		}
	}
	if r.Usage != nil {
		if c := r.Usage.content(); c != "" {
			parts = append(parts, "rusage["+c+"]")
		}
	}
	if r.Affinity != "" {
		parts = append(parts, "affinity["+r.Affinity+"]")
	}
	return strings.Join(parts, " ")
}
