package power

import (
	"sync"
	"time"

	"github.com/autoclick/autoclick/internal/logging"
)

// Reasserter refreshes an Inhibitor on a fixed interval.
type Reasserter struct {
	inhibitor Inhibitor
	interval  time.Duration
	logger    *logging.Logger

	// newTicker is replaced in tests.
	newTicker func(time.Duration) (<-chan time.Time, func())

	mu      sync.Mutex
	started bool
	stopped bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewReasserter creates a stopped Reasserter. A nil logger discards output.
func NewReasserter(inhibitor Inhibitor, interval time.Duration, logger *logging.Logger) *Reasserter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Reasserter{
		inhibitor: inhibitor,
		interval:  interval,
		logger:    logger,
		newTicker: realTicker,
		done:      make(chan struct{}),
	}
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Start begins the refresh loop. It does not assert immediately; the
// caller asserts once before starting. Start after Stop does nothing.
func (r *Reasserter) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started || r.stopped {
		return
	}
	r.started = true

	ticks, stop := r.newTicker(r.interval)
	r.wg.Add(1)
	go r.loop(ticks, stop)

	r.logger.Debug().Dur("interval", r.interval).Msg("Reasserter started")
}

func (r *Reasserter) loop(ticks <-chan time.Time, stop func()) {
	defer r.wg.Done()
	defer stop()

	for {
		select {
		case <-ticks:
			// Stop wins over a tick that raced with it.
			select {
			case <-r.done:
				return
			default:
			}
			if err := r.inhibitor.Assert(); err != nil {
				r.logger.Warn().Err(err).Msg("Failed to refresh sleep inhibition")
				continue
			}
			r.logger.Debug().Msg("Sleep inhibition refreshed")
		case <-r.done:
			return
		}
	}
}

// Stop ends the refresh loop and waits for it to exit, so no Assert runs
// after Stop returns. Safe to call more than once, and before Start.
func (r *Reasserter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.done)
	r.mu.Unlock()

	r.wg.Wait()
}

// Running reports whether the loop has been started and not yet stopped.
func (r *Reasserter) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started && !r.stopped
}
