package playback

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// outputBufferSize is the buffer size for capturing player stdout/stderr.
const outputBufferSize = 4096

// defaultGracefulTimeout bounds the wait for the player to exit on Stop
// before it is killed.
const defaultGracefulTimeout = 5 * time.Second

// PlayerConfig holds configuration for an external audio player subprocess.
type PlayerConfig struct {
	// Binary is the path to the player executable (e.g. /usr/bin/mpv).
	Binary string

	// Args are arguments passed before the audio file path
	// (e.g. ["--no-video", "--really-quiet"] for mpv).
	Args []string

	// AudioPath is the track to play, appended as the final argument.
	AudioPath string

	// GracefulTimeout is how long Stop waits for a clean exit before SIGKILL.
	GracefulTimeout time.Duration
}

// Player plays the show's audio track through an external player process
// and exposes it as a playback Source.
//
// The process is placed in its own process group so Stop can signal the
// player and any children it spawns. Output is captured and logged at
// debug level. The player is not restarted if it dies; a show whose audio
// stopped has no clock to follow, and the scheduler's drain phase observes
// the exit through Active.
type Player struct {
	config PlayerConfig
	logger Logger

	mu      sync.RWMutex
	cmd     *exec.Cmd
	running bool
	started bool

	done chan struct{}
}

// NewPlayer creates a player for the given configuration.
func NewPlayer(cfg PlayerConfig) *Player {
	if cfg.GracefulTimeout == 0 {
		cfg.GracefulTimeout = defaultGracefulTimeout
	}
	return &Player{
		config: cfg,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the player.
func (p *Player) SetLogger(logger Logger) {
	p.logger = logger
}

// Start launches the player process and returns the clock reference.
//
// The reference is captured immediately after the process starts; player
// startup latency (typically a few tens of milliseconds) is within the
// engine's scheduling tolerance.
//
// Returns:
//   - time.Time: The playback clock reference
//   - error: ErrAlreadyStarted on reuse, or the underlying exec failure
func (p *Player) Start(ctx context.Context) (time.Time, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return time.Time{}, ErrAlreadyStarted
	}

	args := append(append([]string(nil), p.config.Args...), p.config.AudioPath)
	cmd := exec.CommandContext(ctx, p.config.Binary, args...) //nolint:gosec // binary path comes from validated config

	// New process group so Stop can signal the player and its children.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return time.Time{}, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return time.Time{}, fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return time.Time{}, fmt.Errorf("starting player %s: %w", p.config.Binary, err)
	}
	reference := time.Now()

	p.cmd = cmd
	p.running = true
	p.started = true
	p.done = make(chan struct{})

	go p.captureOutput("stdout", stdout)
	go p.captureOutput("stderr", stderr)
	go p.wait()

	p.logger.Info("playback started",
		"player", p.config.Binary,
		"file", p.config.AudioPath,
		"pid", cmd.Process.Pid,
	)

	return reference, nil
}

// wait reaps the player process and records its exit.
func (p *Player) wait() {
	err := p.cmd.Wait()

	p.mu.Lock()
	p.running = false
	close(p.done)
	p.mu.Unlock()

	if err != nil {
		p.logger.Warn("player exited with error", "error", err)
		return
	}
	p.logger.Debug("player exited")
}

// captureOutput reads from the given stream and logs each chunk.
func (p *Player) captureOutput(stream string, r io.Reader) {
	buf := make([]byte, outputBufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			p.logger.Debug("player output",
				"stream", stream,
				"output", string(buf[:n]),
			)
		}
		if err != nil {
			return
		}
	}
}

// Active reports whether the player process is still running.
func (p *Player) Active() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// Stop terminates the player: SIGTERM to the process group, then SIGKILL
// after the graceful timeout. Safe to call when already stopped.
func (p *Player) Stop() {
	p.mu.RLock()
	cmd := p.cmd
	running := p.running
	done := p.done
	p.mu.RUnlock()

	if !running || cmd == nil || cmd.Process == nil {
		return
	}

	// Signal the whole process group (negative pid).
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM); err != nil {
		p.logger.Debug("player signal failed", "error", err)
	}

	select {
	case <-done:
		return
	case <-time.After(p.config.GracefulTimeout):
	}

	p.logger.Warn("player did not exit, killing", "pid", cmd.Process.Pid)
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
		p.logger.Debug("player kill failed", "error", err)
	}
	<-done
}
