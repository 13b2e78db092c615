package scheduler

import "fmt"

// EncodingError reports self-contradictory job parameters. It is returned
// before anything is sent to the scheduler.
type EncodingError struct {
	Field  string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid job parameters: %s: %s", e.Field, e.Reason)
}

// JobIDParseError reports a submission that succeeded at the process level
// but whose output contains no bracketed job identifier. Output carries the
// full scheduler response for diagnosis.
type JobIDParseError struct {
	Output string
}

func (e *JobIDParseError) Error() string {
	return fmt.Sprintf("no job identifier in submission output: %q", e.Output)
}

// SubmitError reports a submission command that failed to run. Output is
// whatever the process wrote before dying; it is attached verbatim and not
// interpreted further.
type SubmitError struct {
	Output string
	Err    error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submission failed: %s: %q", e.Err, e.Output)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
