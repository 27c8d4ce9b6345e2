// Package whisper launches the external transcription command. The command
// is fire and forget: the tool only cares whether it finished, timed out, or
// was killed by the system.
package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

const bigFileMB = 50

type Adapter struct {
	command string
	timeout time.Duration
	logf    func(format string, args ...any)
}

func New(command string, timeout time.Duration, logf func(format string, args ...any)) *Adapter {
	if command == "" {
		command = "transcribe"
	}
	if timeout <= 0 {
		timeout = time.Hour
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Adapter{command: command, timeout: timeout, logf: logf}
}

func (a *Adapter) Transcribe(ctx context.Context, audioPath, language, model string) error {
	if st, err := os.Stat(audioPath); err == nil {
		if mb := st.Size() / (1 << 20); mb > bigFileMB {
			a.logf("audio file is large (%d MB); transcription may exhaust memory on small devices", mb)
		}
	}

	tctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	args := []string{audioPath, language}
	if model != "" && model != "default" {
		args = append(args, model)
	}
	cmd := exec.CommandContext(tctx, a.command, args...)
	cmd.Env = os.Environ()
	b, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	if errors.Is(tctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("transcription timed out after %s", a.timeout)
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() == -1 && ee.ProcessState != nil {
		// A SIGKILL from the system almost always means the device ran out
		// of RAM; suggest a smaller model instead of a bare exit code.
		if status := ee.ProcessState.String(); status == "signal: killed" {
			return fmt.Errorf("transcription process was killed (out of memory?); try a tiny/base model")
		}
	}
	return fmt.Errorf("transcription failed: %w\n%s", err, string(b))
}
