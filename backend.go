package main

import (
	"fmt"
	"os"
	"os/exec"
)

// RunBackend hands the emitted module to the external native-code backend
// (the LLVM interpreter `lli` by default) and returns the executed
// program's exit status. The front end never inspects the IR again after
// this point.
func RunBackend(m fmt.Stringer, command string) (int, error) {
	tmp, err := os.CreateTemp("", "lime-*.ll")
	if err != nil {
		return 0, fmt.Errorf("backend: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(m.String()); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("backend: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("backend: %w", err)
	}

	cmd := exec.Command(command, tmp.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err = cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, fmt.Errorf("backend %q: %w", command, err)
	}
	return 0, nil
}
