//go:build windows

package power

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sys/windows"
)

var (
	modkernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = modkernel32.NewProc("SetThreadExecutionState")
)

// threadInhibitor serialises every SetThreadExecutionState call onto one
// OS thread. The execution state belongs to the calling thread, and a
// goroutine may otherwise hop threads between Assert and Release.
type threadInhibitor struct {
	once sync.Once
	reqs chan request
}

type request struct {
	flags uint32
	reply chan error
}

func newInhibitor() Inhibitor {
	return &threadInhibitor{reqs: make(chan request)}
}

func (t *threadInhibitor) Assert() error {
	return t.call(esContinuous | esSystemRequired | esDisplayRequired)
}

func (t *threadInhibitor) Release() error {
	return t.call(esContinuous)
}

func (t *threadInhibitor) call(flags uint32) error {
	t.once.Do(func() { go t.loop() })

	reply := make(chan error, 1)
	t.reqs <- request{flags: flags, reply: reply}
	return <-reply
}

// loop owns the locked thread for the life of the process.
func (t *threadInhibitor) loop() {
	runtime.LockOSThread()

	for req := range t.reqs {
		req.reply <- setThreadExecutionState(req.flags)
	}
}

func setThreadExecutionState(flags uint32) error {
	if err := procSetThreadExecutionState.Find(); err != nil {
		return fmt.Errorf("SetThreadExecutionState unavailable: %w", err)
	}

	// Returns the previous state, or zero on failure.
	prev, _, callErr := procSetThreadExecutionState.Call(uintptr(flags))
	if prev == 0 {
		return fmt.Errorf("SetThreadExecutionState(%#x) failed: %w", flags, callErr)
	}
	return nil
}
