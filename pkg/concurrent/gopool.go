package concurrent

import (
	"errors"
	"time"
)

var ErrScheduleTimeout = errors.New("schedule error: timed out")

// Pool is a fixed-size goroutine pool for the websocket layer, so each
// connection event is handled without growing a goroutine per connection.
// ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
type Pool struct {
	sem  chan struct{}
	work chan func()
}

func NewPool(size, queue int) *Pool {
	return &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
	}
}

// Spawn starts n workers up front instead of lazily.
func (p *Pool) Spawn(n int) {
	for i := 0; i < n; i++ {
		p.sem <- struct{}{}
		go p.worker(func() {})
	}
}

// Schedule runs task on a pool worker, blocking until a worker or a queue
// slot is free.
func (p *Pool) Schedule(task func()) error {
	return p.schedule(task, nil)
}

// ScheduleTimeout is Schedule giving up after timeout with
// ErrScheduleTimeout.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *Pool) worker(task func()) {
	defer func() { <-p.sem }()

	task()

	for task := range p.work {
		task()
	}
}

func (p *Pool) Close() {
	close(p.work)
}
