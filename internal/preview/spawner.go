package preview

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/sweeptui/sweep/tools/utils/humanize"
)

// Spawner runs at most one preview child at a time: a new Spawn request
// kills whatever child is currently running before starting the next one,
// mirroring the single-spawner-replaces-running-child, kill-on-drop
// semantics of the process preview.
type Spawner struct {
	mu      sync.Mutex
	cancel  context.CancelFunc
	current *Grid
	pid     int
}

// NewSpawner returns an idle spawner.
func NewSpawner() *Spawner { return &Spawner{} }

// Spawn replaces any running child with a new one running name(args...),
// streaming its combined stdout and stderr into the returned Grid.
func (s *Spawner) Spawn(name string, args []string) (*Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, name, args...)
	setNewSession(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("preview: stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	grid := NewGrid()
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("preview: starting %s: %w", name, err)
	}

	s.cancel = cancel
	s.current = grid
	s.pid = cmd.Process.Pid

	go func() {
		defer grid.Stop()
		grid.Feed(stdout)
		cmd.Wait()
	}()

	return grid, nil
}

// Kill stops whatever child is currently running, if any.
func (s *Spawner) Kill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Stats reports the running child's CPU percent and resident set size, for
// a small status line beside the preview panel. ok is false once the
// child has exited or none has been spawned.
func (s *Spawner) Stats() (cpuPercent float64, rssBytes uint64, ok bool) {
	s.mu.Lock()
	grid, pid := s.current, s.pid
	s.mu.Unlock()
	if grid == nil || !grid.Running() {
		return 0, 0, false
	}
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return 0, 0, false
	}
	cpu, err := proc.CPUPercent()
	if err != nil {
		return 0, 0, false
	}
	mem, err := proc.MemoryInfo()
	if err != nil || mem == nil {
		return cpu, 0, true
	}
	return cpu, mem.RSS, true
}

// StatsString renders Stats as a short "12.3% 45 MiB" status fragment for
// a footer or debug overlay, or reports ok=false under the same
// conditions Stats does.
func (s *Spawner) StatsString() (string, bool) {
	cpu, rss, ok := s.Stats()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%.1f%% %s", cpu, humanize.IBytes(rss)), true
}
