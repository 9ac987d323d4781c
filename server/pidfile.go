package server

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Manager starts and stops a detached server process, tracking it
// through a PID file the way the original management script did.
type Manager struct {
	PIDFile string
}

// ReadPID returns the recorded PID, or 0 when no PID file exists.
func (m *Manager) ReadPID() (int, error) {
	data, err := os.ReadFile(m.PIDFile)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in %s: %q", m.PIDFile, strings.TrimSpace(string(data)))
	}
	return pid, nil
}

// Running reports whether the recorded process is alive.
func (m *Manager) Running() (int, bool) {
	pid, err := m.ReadPID()
	if err != nil || pid == 0 {
		return pid, false
	}
	return pid, processAlive(pid)
}

// Start re-executes the current binary with the given args as a
// detached child and records its PID.
func (m *Manager) Start(args ...string) (int, error) {
	if pid, alive := m.Running(); alive {
		return pid, fmt.Errorf("server already running with PID %d", pid)
	}

	exe, err := os.Executable()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(exe, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return 0, err
	}

	pid := cmd.Process.Pid
	if err := m.writePID(pid); err != nil {
		_ = cmd.Process.Kill()
		return 0, err
	}
	// Detach; the child outlives this CLI invocation.
	_ = cmd.Process.Release()
	return pid, nil
}

// Stop terminates the recorded process, falling back to SIGKILL when a
// graceful shutdown does not take, and removes the PID file.
func (m *Manager) Stop() error {
	pid, err := m.ReadPID()
	if err != nil {
		_ = os.Remove(m.PIDFile)
		return err
	}
	if pid == 0 {
		return fmt.Errorf("no running server found")
	}

	if processAlive(pid) {
		if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
			return err
		}
		time.Sleep(time.Second)
		if processAlive(pid) {
			_ = syscall.Kill(pid, syscall.SIGKILL)
		}
	}
	return os.Remove(m.PIDFile)
}

func (m *Manager) writePID(pid int) error {
	if err := os.MkdirAll(filepath.Dir(m.PIDFile), 0o755); err != nil {
		return err
	}
	return os.WriteFile(m.PIDFile, []byte(strconv.Itoa(pid)), 0o644)
}

// processAlive probes the PID with signal 0.
func processAlive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
