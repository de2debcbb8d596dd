// Package generator enumerates the bounded vicinity of a seed box
// configuration: every configuration reachable by relocating up to
// len(k) boxes within their per-box BFS horizon, inserting each into a
// boxcfg.BoxConfigurationSet and skipping anything the caller's
// DeadlockOracle flags. One task runs per seed push-state, dispatched
// on a golang.org/x/sync/errgroup worker pool bounded by maxCPUs.
package generator
