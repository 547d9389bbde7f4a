package tui

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	drepo "FinChart/internal/domain/repository"
	"FinChart/internal/services/chart"
	"FinChart/pkg/logger"
)

var (
	ErrTerminalRequired = errors.New("stdout is not a terminal")
	ErrTerminalClosed   = errors.New("terminal program exited")
)

const keyBuffer = 16

// Terminal owns the alternate screen. It is the dashboard's render surface
// and input source.
type Terminal struct {
	program *tea.Program
	keys    chan drepo.Key
	done    chan struct{}
	log     *logger.Logger

	mu      sync.Mutex
	started bool
	err     error
}

// NewTerminal prepares a full-screen program; nothing is drawn until Start.
func NewTerminal(log *logger.Logger, opts ...tea.ProgramOption) *Terminal {
	if log == nil {
		log = logger.Nop()
	}
	keys := make(chan drepo.Key, keyBuffer)
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return &Terminal{
		program: tea.NewProgram(newModel(DefaultKeyMap(), keys), opts...),
		keys:    keys,
		done:    make(chan struct{}),
		log:     log,
	}
}

// Start enters the alternate screen and runs the event loop in the
// background.
func (t *Terminal) Start() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrTerminalRequired
	}
	return t.start()
}

func (t *Terminal) start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return nil
	}
	t.started = true

	go func() {
		defer close(t.done)
		if _, err := t.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			t.mu.Lock()
			t.err = err
			t.mu.Unlock()
			t.log.Error("terminal program failed", logger.Error(err))
		}
	}()
	return nil
}

// Render hands the frame to the event loop.
func (t *Terminal) Render(frame chart.Frame) error {
	select {
	case <-t.done:
		return t.exitErr()
	default:
	}
	t.program.Send(frameMsg(frame))
	return nil
}

// Poll waits up to timeout for a key press.
func (t *Terminal) Poll(ctx context.Context, timeout time.Duration) (drepo.Key, bool, error) {
	select {
	case k := <-t.keys:
		return k, true, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case k := <-t.keys:
		return k, true, nil
	case <-t.done:
		return drepo.KeyOther, false, t.exitErr()
	case <-ctx.Done():
		return drepo.KeyOther, false, nil
	case <-timer.C:
		return drepo.KeyOther, false, nil
	}
}

// Stop leaves the alternate screen and restores the terminal.
func (t *Terminal) Stop() error {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()
	if !started {
		return nil
	}
	t.program.Quit()
	<-t.done

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Done is closed once the event loop has exited.
func (t *Terminal) Done() <-chan struct{} { return t.done }

func (t *Terminal) exitErr() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	return ErrTerminalClosed
}
