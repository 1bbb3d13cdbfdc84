package e2e

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/vladimirvivien/gexe/exec"
)

func runCommand(command string, env []string) error {
	stdout := bytes.NewBufferString("")
	stderr := bytes.NewBufferString("")

	proc := exec.NewProc(command)
	proc.Command().Stdout = stdout
	proc.Command().Stderr = stderr

	if len(env) > 0 {
		proc.Command().Env = env
	}

	proc.Start().Wait()

	err := proc.Err()
	if err != nil {
		sOutput, _ := io.ReadAll(stdout)
		sErr, _ := io.ReadAll(stderr)

		return fmt.Errorf("failed to run command (%w): stdout:%s stderr:%s", err, string(sOutput), string(sErr))
	}

	return nil
}

// BuildBinary compiles the machine-monitor command into dir and returns its path.
func BuildBinary(dir string) (string, error) {
	ret := fmt.Sprintf("%s/machine-monitor", dir)

	err := runCommand(fmt.Sprintf("go build -o %s ../../cmd/machine-monitor", ret), os.Environ())
	if err != nil {
		return "", fmt.Errorf("failed to build binary: %w", err)
	}

	return ret, nil
}

// startCommand runs command in background, its output is appended to logs.
func startCommand(command string, env []string, logs io.Writer) *exec.Proc {
	proc := exec.NewProc(command)
	proc.Command().Stdout = logs
	proc.Command().Stderr = logs
	proc.Command().Env = append(os.Environ(), env...)

	return proc.Start()
}
