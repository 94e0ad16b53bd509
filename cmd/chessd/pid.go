// FILE: cmd/chessd/pid.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// pidFile is a written, optionally flock-ed, PID file
type pidFile struct {
	path   string
	file   *os.File
	locked bool
}

// acquirePIDFile writes the current PID to path. With lock set an existing
// file is only reused when its process is gone and the flock is free.
func acquirePIDFile(path string, lock bool) (*pidFile, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if os.IsExist(err) {
		if lock {
			if err := checkStalePID(path); err != nil {
				return nil, err
			}
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open PID file: %w", err)
	}

	pf := &pidFile{path: path, file: file}
	if lock {
		if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
			file.Close()
			if errors.Is(err, syscall.EWOULDBLOCK) {
				return nil, fmt.Errorf("cannot acquire lock: another instance is running")
			}
			return nil, fmt.Errorf("lock failed: %w", err)
		}
		pf.locked = true
	}

	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		pf.Release()
		return nil, fmt.Errorf("cannot write PID: %w", err)
	}
	if err := file.Sync(); err != nil {
		pf.Release()
		return nil, fmt.Errorf("cannot sync PID file: %w", err)
	}
	return pf, nil
}

// Release unlocks, closes and removes the file
func (pf *pidFile) Release() {
	if pf.locked {
		syscall.Flock(int(pf.file.Fd()), syscall.LOCK_UN)
		pf.locked = false
	}
	pf.file.Close()
	os.Remove(pf.path)
}

// checkStalePID fails unless the PID recorded in path is no longer running
func checkStalePID(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read existing PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("corrupted PID file (contains: %q)", string(data))
	}

	// FindProcess never fails on Unix; signal 0 probes for existence
	proc, _ := os.FindProcess(pid)
	err = proc.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return fmt.Errorf("process %d from PID file is still running", pid)
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, syscall.ESRCH):
		return nil
	default:
		return fmt.Errorf("process %d exists but cannot verify ownership: %v", pid, err)
	}
}
