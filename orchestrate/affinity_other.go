//go:build !linux

package orchestrate

// pinWorker is a silent no-op off Linux — SchedSetaffinity has no portable
// equivalent, matching spec.md §9's "fall back gracefully if the platform
// disallows it".
func pinWorker(worker int) {}
