// Package process wraps one OS child process behind byte-oriented stdin and
// a single output stream carrying both stdout and stderr.
package process

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

// DeadError reports an attempt to feed input to a process whose stdin has
// already been closed.
type DeadError struct {
	Pid int
}

func (e *DeadError) Error() string {
	return fmt.Sprintf("unable to talk to process %d because it is dead", e.Pid)
}

// Process is one child started under "sh -c". Output is drained with Get or
// GetBytes, which close stdin and block until the child exits. Output drained
// by Finish is buffered and prepended to the next drain.
type Process struct {
	Args string

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	output *os.File

	done    chan struct{}
	waitErr error

	mu          sync.Mutex
	stdinClosed bool
	drained     bool
	saved       string
}

// Launch starts command in a shell with dedicated pipes for stdin and for the
// combined stdout+stderr stream. It fails only if the OS cannot start the
// child.
func Launch(ctx context.Context, command string) (*Process, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}
	// The child holds its own copy of the write end.
	pw.Close()

	p := &Process{
		Args:   command,
		cmd:    cmd,
		stdin:  stdin,
		output: pr,
		done:   make(chan struct{}),
	}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

func (p *Process) String() string {
	if code, exited := p.Poll(); exited {
		return fmt.Sprintf("<Process (Retval=%d): %s>", code, p.Args)
	}
	return fmt.Sprintf("<Process (Running): %s>", p.Args)
}

// Pid returns the OS process identifier of the child.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Poll reports whether the child has exited and, if so, its exit code.
// It never blocks.
func (p *Process) Poll() (int, bool) {
	select {
	case <-p.done:
		return p.cmd.ProcessState.ExitCode(), true
	default:
		return 0, false
	}
}

// Put sends input to the child's stdin. Once stdin has been closed by a
// drain, or the child is gone, Put returns a DeadError.
func (p *Process) Put(input []byte) error {
	p.mu.Lock()
	closed := p.stdinClosed
	p.mu.Unlock()
	if closed {
		return &DeadError{Pid: p.Pid()}
	}
	if _, err := p.stdin.Write(input); err != nil {
		return &DeadError{Pid: p.Pid()}
	}
	return nil
}

// Get closes stdin, waits for the child to exit and returns everything it
// wrote since the last drain, trimmed of surrounding whitespace, with any
// output saved by Finish prepended. Calling Get again after exhaustion is not
// an error; it returns saved output or the empty string.
func (p *Process) Get() (string, error) {
	out, err := p.drain()
	p.mu.Lock()
	ret := p.saved + strings.TrimSpace(string(out))
	p.saved = ""
	p.mu.Unlock()
	return ret, err
}

// GetBytes is Get without string conversion or trimming.
func (p *Process) GetBytes() ([]byte, error) {
	out, err := p.drain()
	p.mu.Lock()
	ret := append([]byte(p.saved), out...)
	p.saved = ""
	p.mu.Unlock()
	return ret, err
}

// Finish signals end of input, waits for the child to exit and saves its
// output for a later Get. Supports fire-and-forget commands whose output may
// still be inspected afterwards.
func (p *Process) Finish() {
	out, _ := p.drain()
	s := strings.TrimSpace(string(out))
	p.mu.Lock()
	p.saved += s
	p.mu.Unlock()
}

// Terminate asks the child to stop. An already dead child is only a logged
// warning.
func (p *Process) Terminate() {
	if _, exited := p.Poll(); exited {
		log.Printf("terminate: pid %d is already dead", p.Pid())
		return
	}
	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		log.Printf("terminate: pid %d is already dead: %s", p.Pid(), err)
	}
}

// Kill stops the child immediately. An already dead child is only a logged
// warning.
func (p *Process) Kill() {
	if _, exited := p.Poll(); exited {
		log.Printf("kill: pid %d is already dead", p.Pid())
		return
	}
	if err := p.cmd.Process.Kill(); err != nil {
		log.Printf("kill: pid %d is already dead: %s", p.Pid(), err)
	}
}

func (p *Process) drain() ([]byte, error) {
	p.closeStdin()
	p.mu.Lock()
	if p.drained {
		p.mu.Unlock()
		return nil, nil
	}
	p.mu.Unlock()

	out, err := io.ReadAll(p.output)
	<-p.done

	p.mu.Lock()
	p.drained = true
	p.mu.Unlock()
	p.output.Close()
	return out, err
}

func (p *Process) closeStdin() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.stdinClosed {
		p.stdin.Close()
		p.stdinClosed = true
	}
}
