package ffmpeg

import (
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"
)

var ErrNotStarted = errors.New("process has not been started")

// Process is a running ffmpeg instance whose stdout is consumed by the caller.
type Process struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser

	mu     sync.Mutex
	killed bool
	exited bool
}

// Start spawns binary with args in its own process group. Stderr receives
// diagnostic output, it may be nil.
func Start(binary string, args []string, stderr io.Writer) (*Process, error) {
	cmd := exec.Command(binary, args...)
	cmd.Stderr = stderr
	cmd.SysProcAttr = configureAsProcessGroup()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &Process{
		cmd:    cmd,
		stdout: stdout,
	}, nil
}

func (p *Process) Stdout() io.Reader {
	return p.stdout
}

func (p *Process) CommandLine() string {
	return strings.Join(p.cmd.Args, " ")
}

// Kill terminates the process group. It is safe to call more than once.
func (p *Process) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd.Process == nil {
		return ErrNotStarted
	}
	if p.killed || p.exited {
		return nil
	}

	p.killed = true
	return killProcessGroup(p.cmd)
}

func (p *Process) Killed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

// Wait must be called after stdout has been drained or the process killed.
func (p *Process) Wait() error {
	err := p.cmd.Wait()

	p.mu.Lock()
	p.exited = true
	p.mu.Unlock()

	if f, ok := p.cmd.Stderr.(interface{ Flush() }); ok {
		f.Flush()
	}
	return err
}
