package executor

import (
	"context"
	"errors"
	"os/exec"

	"github.com/armon/circbuf"
	shellwords "github.com/mattn/go-shellwords"
	log "github.com/sirupsen/logrus"
)

// maxBufSize limits how much output we keep from a command. Long-running
// jobs can be chatty; only the tail matters for diagnosis.
const maxBufSize = 256000

// Local runs commands as the current process user, without impersonation.
// The user argument of ExecAs is ignored; use it when the service already
// runs under the account that should own the jobs, or from the CLI.
type Local struct {
	// Dir is the working directory commands run in. Empty means the
	// process working directory.
	Dir string
}

func (l *Local) ExecAs(ctx context.Context, _ string, cmd string) (string, error) {
	args, err := shellwords.Parse(cmd)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", errors.New("empty command")
	}

	buf, _ := circbuf.NewBuffer(maxBufSize)

	c := exec.CommandContext(ctx, args[0], args[1:]...)
	c.Dir = l.Dir
	c.Stdout = buf
	c.Stderr = buf

	log.Debugf("exec: %+v", c.Args)
	err = c.Run()
	return buf.String(), err
}
