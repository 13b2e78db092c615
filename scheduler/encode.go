package scheduler

import (
	"regexp"
	"strconv"
	"strings"
)

var jobIDPattern = regexp.MustCompile(`<(\d+)>`)

// parseJobID extracts the job identifier from a submission acknowledgement,
// e.g. "Job <4213> is submitted to queue <normal>.". The first run of digits
// enclosed in angle brackets wins.
func parseJobID(out string) (int64, error) {
	m := jobIDPattern.FindStringSubmatch(out)
	if m == nil {
		return 0, &JobIDParseError{Output: out}
	}
	return strconv.ParseInt(m[1], 10, 64)
}

// SafeFileName makes a job name usable as a single path segment by
// replacing path separators with underscores. Only the derived output file
// is sanitized; the -J value keeps the original name.
func SafeFileName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ReplaceAll(name, `\`, "_")
}

// buildSubmitArgs renders a SubmitRequest into the bsub argument vector.
// Optional flags are emitted only when their field is set; a flag is never
// emitted with a missing value. The command is always the final positional
// element.
func buildSubmitArgs(req *SubmitRequest) ([]string, error) {
	if strings.TrimSpace(req.Command) == "" {
		return nil, &EncodingError{Field: "command", Reason: "must not be empty"}
	}
	if req.Tasks <= 0 {
		return nil, &EncodingError{Field: "tasks", Reason: "must be a positive integer"}
	}
	if req.Gpu != nil && req.Gpu.Count < 0 {
		return nil, &EncodingError{Field: "gpu.count", Reason: "must not be negative"}
	}

	name := req.Name
	if name == "" {
		name = "job"
	}
	output := req.Output
	if output == "" {
		output = "logs/" + SafeFileName(name) + "-%J.out"
	}

	args := []string{
		"-J", name,
		"-o", output,
		"-n", strconv.Itoa(req.Tasks),
	}
	if req.Queue != "" {
		args = append(args, "-q", req.Queue)
	}
	if req.Resources != nil {
		if r := req.Resources.String(); r != "" {
			args = append(args, "-R", r)
		}
	}
	switch {
	case req.Gpu != nil:
		args = append(args, "-gpu", req.Gpu.String())
	case req.UseGpu:
		// "-" asks for the default GPU allocation.
		args = append(args, "-gpu", "-")
	}
	if req.Hosts != "" {
		args = append(args, "-m", req.Hosts)
	}
	if !req.Rerunnable {
		args = append(args, "-rn")
	}
	args = append(args, req.Command)

	return args, nil
}

// shellJoin renders an argument vector into a single sh -c command line.
// Elements containing whitespace or shell metacharacters are single-quoted;
// the rendered GPU value carries its own double quotes and no whitespace, so
// it passes through untouched and the shell delivers it to bsub as one word.
func shellJoin(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, a := range args {
		quoted = append(quoted, shellQuote(a))
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n;&|<>()$`'") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
