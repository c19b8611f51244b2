package harness

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Process is a spawned store server. Its stdout and stderr go to a log file
// in the run directory.
type Process struct {
	role    Role
	port    int
	logPath string

	cmd     *exec.Cmd
	logFile *os.File

	done    chan struct{}
	waitErr error

	lock       sync.Mutex
	terminated bool
}

// StartProcess launches path with args, writing its output to
// <logDir>/<role>-<port>.log.
func StartProcess(role Role, port int, path string, args []string, logDir string) (*Process, error) {
	logPath := filepath.Join(logDir, fmt.Sprintf("%v-%v.log", role, port))
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create log file for %v", role)
	}

	cmd := exec.Command(path, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	if err := cmd.Start(); err != nil {
		logFile.Close()
		return nil, errors.Wrapf(err, "cannot start %v %v", role, path)
	}
	log.Infof("Started %v (pid %v) on port %v: %v %v", role, cmd.Process.Pid, port, path, args)

	p := &Process{
		role:    role,
		port:    port,
		logPath: logPath,
		cmd:     cmd,
		logFile: logFile,
		done:    make(chan struct{}),
	}
	go p.wait()
	return p, nil
}

func (p *Process) wait() {
	p.waitErr = p.cmd.Wait()
	p.logFile.Close()
	close(p.done)
}

func (p *Process) Role() Role {
	return p.role
}

func (p *Process) Port() int {
	return p.port
}

func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

func (p *Process) LogPath() string {
	return p.logPath
}

// Exited reports whether the process has exited.
func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Done is closed once the process has exited.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Terminate sends SIGTERM and waits up to grace for the process to exit,
// then kills it. Exits caused by these signals are not reported as errors.
func (p *Process) Terminate(grace time.Duration) error {
	p.lock.Lock()
	if p.terminated {
		p.lock.Unlock()
		<-p.done
		return nil
	}
	p.terminated = true
	p.lock.Unlock()

	if p.Exited() {
		return p.exitError()
	}

	log.Debugf("Terminating %v (pid %v)", p.role, p.Pid())
	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil && !p.Exited() {
		log.Warnf("cannot send SIGTERM to %v (pid %v): %v", p.role, p.Pid(), err)
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-p.done:
		return nil
	case <-timer.C:
	}

	log.Warnf("%v (pid %v) ignored SIGTERM for %v, killing it", p.role, p.Pid(), grace)
	if err := p.cmd.Process.Kill(); err != nil && !p.Exited() {
		return errors.Wrapf(err, "cannot kill %v (pid %v)", p.role, p.Pid())
	}
	<-p.done
	return nil
}

// exitError reports an exit that happened before Terminate was called.
func (p *Process) exitError() error {
	if p.waitErr == nil {
		return nil
	}
	return errors.Wrapf(p.waitErr, "%v (pid %v) exited early, see %v", p.role, p.Pid(), p.logPath)
}
