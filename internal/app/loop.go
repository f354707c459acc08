package app

import "sync"

// Loop is the application's single cooperative event loop. Run processes
// posted tasks one at a time on the calling goroutine until Quit is
// requested; to the caller it appears as one blocking call.
type Loop struct {
	tasks    chan func()
	quit     chan struct{}
	quitOnce sync.Once
}

// NewLoop creates an idle event loop.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), 64),
		quit:  make(chan struct{}),
	}
}

// Post enqueues fn for execution on the loop goroutine. Tasks posted after
// Quit are discarded.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.quit:
	}
}

// Run blocks executing posted tasks until Quit is called. A Quit issued
// before Run makes it return immediately.
func (l *Loop) Run() {
	for {
		// Quit takes priority over pending work.
		select {
		case <-l.quit:
			return
		default:
		}
		select {
		case <-l.quit:
			return
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Quit asks the loop to stop. It is level-triggered: idempotent, safe from
// any goroutine, and safe to call before the loop starts. It has no effect
// on lifecycle stages that already completed.
func (l *Loop) Quit() {
	l.quitOnce.Do(func() {
		close(l.quit)
	})
}
