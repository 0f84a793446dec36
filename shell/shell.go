// Package shell executes command strings either on the local host or on a
// remote host reached through ssh, behind one invocation path so callers can
// stay host-independent.
package shell

import (
	"context"
	"os/user"
	"strings"

	"github.com/hpcfactory/condor-api/process"
)

// Shell dispatches commands to one target. It is immutable after
// construction and holds no persistent connection; every execution spawns a
// fresh child process.
type Shell struct {
	remoteServer string
	remoteUser   string
	local        bool
}

// New builds a shell for remoteServer as remoteUser. An empty server or
// "localhost" means commands run directly on the local machine. An empty
// remoteUser on a remote shell defaults to the current OS user. The ssh
// client is assumed to be configured for non-interactive logins.
func New(remoteServer, remoteUser string) *Shell {
	if remoteServer == "" || strings.EqualFold(remoteServer, "localhost") {
		return &Shell{local: true}
	}
	if remoteUser == "" {
		if u, err := user.Current(); err == nil {
			remoteUser = u.Username
		}
	}
	return &Shell{remoteServer: remoteServer, remoteUser: remoteUser}
}

func (s *Shell) String() string {
	if s.local {
		return "<Shell: local machine>"
	}
	return "<Shell: " + s.remoteUser + "@" + s.remoteServer + ">"
}

// Local reports whether commands run on the local machine.
func (s *Shell) Local() bool {
	return s.local
}

func (s *Shell) buildCommand(command string) string {
	if s.local {
		return command
	}
	prefix := "ssh "
	if s.remoteUser != "" {
		prefix += s.remoteUser + "@"
	}
	return prefix + s.remoteServer + " " + command
}

// Execute runs command on the target, optionally feeding input to its stdin,
// and blocks until it exits. It returns the exit code and the combined
// output trimmed of surrounding whitespace.
func (s *Shell) Execute(ctx context.Context, command string, input string) (int, string, error) {
	p, err := process.Launch(ctx, s.buildCommand(command))
	if err != nil {
		return 0, "", err
	}
	if input != "" {
		if err := p.Put([]byte(input)); err != nil {
			return 0, "", err
		}
	}
	out, err := p.Get()
	if err != nil {
		return 0, out, err
	}
	code, _ := p.Poll()
	return code, out, nil
}

// ExecuteBytes is Execute for raw output, untrimmed.
func (s *Shell) ExecuteBytes(ctx context.Context, command string, input []byte) (int, []byte, error) {
	p, err := process.Launch(ctx, s.buildCommand(command))
	if err != nil {
		return 0, nil, err
	}
	if len(input) > 0 {
		if err := p.Put(input); err != nil {
			return 0, nil, err
		}
	}
	out, err := p.GetBytes()
	if err != nil {
		return 0, out, err
	}
	code, _ := p.Poll()
	return code, out, nil
}
