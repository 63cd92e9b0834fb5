package main

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// commandRunner is the interface over process spawning. The dock only ever
// needs fire-and-forget execution and a blocking stdout capture, so tests can
// substitute a recorder instead of spawning real processes.
type commandRunner interface {
	// run splits command on whitespace and spawns it without waiting.
	// An empty command is a no-op.
	run(command string) error

	// runCapture splits command on whitespace, spawns it, waits for it to
	// exit, and returns its stdout. An empty command returns no output.
	runCapture(command string) ([]byte, error)
}

// execRunner runs configured command lines via os/exec. Commands are split on
// whitespace only; quoting is not supported.
type execRunner struct{}

func (execRunner) run(command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %q: %w", fields[0], err)
	}

	// Detached on purpose; reap so the child doesn't linger as a zombie.
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

func (execRunner) runCapture(command string) ([]byte, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, nil
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		// A non-zero exit still produced output worth inspecting; only a
		// failure to spawn or read is unrecoverable.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running %q: %w", fields[0], err)
		}
	}

	return stdout.Bytes(), nil
}
