// Package hook launches the user's notification hook.
//
// Launches are fire and forget: the child is started, reaped in the
// background, and its exit status is only logged. Nothing here blocks the
// caller on the child or reports a failure back to it.
package hook

import (
	"maps"
	"os"
	"os/exec"
	"slices"
	"sync"

	"github.com/zjrosen/vimbridge/internal/log"
)

// Launcher starts an executable with extra environment variables.
type Launcher interface {
	Launch(path string, env map[string]string)
}

// ExecLauncher launches hooks as child processes.
type ExecLauncher struct {
	wg sync.WaitGroup
}

// NewExecLauncher creates an ExecLauncher.
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{}
}

// Launch starts path with the parent environment plus env. Missing or
// non-executable hooks are skipped.
func (l *ExecLauncher) Launch(path string, env map[string]string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		log.Debug(log.CatHook, "hook not found", "path", path)
		return
	}

	cmd := exec.Command(path) //nolint:gosec // G204: hook path comes from user config
	cmd.Env = Environ(os.Environ(), env)

	if err := cmd.Start(); err != nil {
		log.Debug(log.CatHook, "hook failed to start", "path", path, "error", err)
		return
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := cmd.Wait(); err != nil {
			log.Debug(log.CatHook, "hook exited with error", "path", path, "error", err)
		}
	}()
}

// Wait blocks until every launched hook has exited. Used at shutdown and in
// tests; the sync path never calls it.
func (l *ExecLauncher) Wait() {
	l.wg.Wait()
}

// Environ returns base with the variables in env appended in key order.
// Later entries win, so env overrides variables of the same name in base.
func Environ(base []string, env map[string]string) []string {
	out := make([]string, 0, len(base)+len(env))
	out = append(out, base...)
	for _, key := range slices.Sorted(maps.Keys(env)) {
		out = append(out, key+"="+env[key])
	}
	return out
}
