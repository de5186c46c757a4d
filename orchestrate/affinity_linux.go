//go:build linux

package orchestrate

import (
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/transitcore/tripbased/tlog"
)

// pinWorker best-effort pins the calling goroutine's OS thread to CPU id
// worker (mod NumCPU), matching spec.md §9's "fall back gracefully if the
// platform disallows it" — a SchedSetaffinity failure (container cgroup
// restrictions, non-Linux platform, etc.) is logged and otherwise ignored,
// never surfaced as a worker error. LockOSThread is required first: without
// it the Go scheduler is free to move this goroutine to a different thread
// than the one just pinned.
func pinWorker(worker int) {
	n := runtime.NumCPU()
	if n == 0 {
		return
	}
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Set(worker % n)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		tlog.L().Warn("orchestrate: SchedSetaffinity failed, continuing unpinned", zap.Int("worker", worker), zap.Error(err))
	}
}
