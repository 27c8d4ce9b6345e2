// Package termux integrates with the Termux environment on Android: the
// wake lock that keeps the device awake during long downloads, and the
// shared-storage download directory.
package termux

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const lockTimeout = 5 * time.Second

// WakeLock acquires termux-wake-lock as a scoped resource. The returned
// release func is always non-nil; it unlocks only when acquisition actually
// succeeded, so callers can defer it unconditionally.
type WakeLock struct {
	lockBin   string
	unlockBin string
}

func NewWakeLock() *WakeLock {
	return &WakeLock{lockBin: "termux-wake-lock", unlockBin: "termux-wake-unlock"}
}

func (w *WakeLock) Acquire(ctx context.Context) (release func(), ok bool) {
	lctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	if err := exec.CommandContext(lctx, w.lockBin).Run(); err != nil {
		// Not on Termux, or termux-api is missing. Run without the lock.
		return func() {}, false
	}
	return func() {
		uctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
		defer cancel()
		_ = exec.CommandContext(uctx, w.unlockBin).Run()
	}, true
}

var downloadCandidates = []string{
	"/storage/emulated/0/Download",
	"/storage/emulated/0/Downloads",
	"/sdcard/Download",
	"/sdcard/Downloads",
}

// DownloadDir picks a writable download directory: shared Android storage
// first, then ~/Downloads, then a Downloads dir under the working directory
// (created if needed), and finally the working directory itself.
func DownloadDir() string {
	candidates := append([]string(nil), downloadCandidates...)
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "Downloads"))
	}
	for _, dir := range candidates {
		if writableDir(dir) {
			return dir
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	local := filepath.Join(wd, "Downloads")
	if err := os.MkdirAll(local, 0o755); err == nil && writableDir(local) {
		return local
	}
	return wd
}

func writableDir(dir string) bool {
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		return false
	}
	f, err := os.CreateTemp(dir, ".ytgrab-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
