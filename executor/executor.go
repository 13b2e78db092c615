package executor

import (
	"context"
	"fmt"
	"os/exec"
	"os/user"
	"strconv"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Shell runs commands through sh -c as another UNIX user. The service must
// run as root for the impersonation to work; LSF picks the submitting user
// up from the process credentials.
type Shell struct {
	// Dir is the working directory commands run in. Empty means /tmp.
	Dir string
}

func (s *Shell) ExecAs(ctx context.Context, username string, cmd string) (string, error) {
	uid, err := lookupUserID(username)
	if err != nil {
		return "", err
	}

	dir := s.Dir
	if dir == "" {
		dir = "/tmp"
	}

	c := exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf("cd %s && %s", dir, cmd))
	log.Debugf("exec: %+v", c.Args)
	c.SysProcAttr = &syscall.SysProcAttr{
		Credential: &syscall.Credential{
			Uid: uid,
		},
	}

	out, err := c.CombinedOutput()
	return string(out), err
}

func lookupUserID(username string) (uint32, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return 0, err
	}

	uid, err := strconv.ParseUint(u.Uid, 10, 32)
	if err != nil {
		return 0, err
	}

	return uint32(uid), nil
}
