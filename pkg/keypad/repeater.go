package keypad

import (
	"context"
	"sync"
	"time"

	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"go.uber.org/atomic"
)

// Dispatcher runs functions on the UI thread.
type Dispatcher interface {
	Post(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

func (f DispatcherFunc) Post(fn func()) {
	f(fn)
}

// QueueDispatcher queues posted functions until the UI thread runs them,
// either with Run or by calling Drain from its own loop.
type QueueDispatcher struct {
	queue  chan func()
	closed chan struct{}
	once   sync.Once
}

var _ Dispatcher = &QueueDispatcher{}

func NewQueueDispatcher(size int) *QueueDispatcher {
	if size < 1 {
		size = 1
	}
	return &QueueDispatcher{
		queue:  make(chan func(), size),
		closed: make(chan struct{}),
	}
}

// Post queues fn. It blocks while the queue is full and drops fn once the
// dispatcher is closed.
func (q *QueueDispatcher) Post(fn func()) {
	if fn == nil {
		return
	}
	select {
	case <-q.closed:
	case q.queue <- fn:
	}
}

// Run executes queued functions on the calling goroutine until ctx is done
// or the dispatcher is closed.
func (q *QueueDispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.closed:
			return nil
		case fn := <-q.queue:
			fn()
		}
	}
}

// Drain executes everything queued right now and returns how many ran.
func (q *QueueDispatcher) Drain() int {
	ran := 0
	for {
		select {
		case fn := <-q.queue:
			fn()
			ran++
		default:
			return ran
		}
	}
}

func (q *QueueDispatcher) Close() {
	q.once.Do(func() {
		close(q.closed)
	})
}

// Repeater fires an action repeatedly while a key is held: once after the
// delay, then every interval. Each Press supersedes the previous one, and
// a callback belonging to an older press never runs.
type Repeater struct {
	dispatcher Dispatcher
	delay      time.Duration
	interval   time.Duration

	generation *atomic.Uint64

	mu    sync.Mutex
	timer *time.Timer
}

func NewRepeater(dispatcher Dispatcher, delay, interval time.Duration) *Repeater {
	if delay <= 0 {
		delay = constants.DefaultRepeatDelay
	}
	if interval <= 0 {
		interval = constants.DefaultRepeatInterval
	}
	return &Repeater{
		dispatcher: dispatcher,
		delay:      delay,
		interval:   interval,
		generation: atomic.NewUint64(0),
	}
}

// Press arms the repeat timer for action. The caller performs the initial
// action itself; Press only schedules the repeats.
func (r *Repeater) Press(action func()) {
	gen := r.generation.Inc()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, func() {
		r.fire(gen, action)
	})
}

// Release cancels any pending repeat.
func (r *Repeater) Release() {
	r.generation.Inc()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Stop is Release for shutdown paths.
func (r *Repeater) Stop() {
	r.Release()
}

// Held reports whether a press is still armed.
func (r *Repeater) Held() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}

func (r *Repeater) fire(gen uint64, action func()) {
	if r.generation.Load() != gen {
		return
	}

	r.dispatcher.Post(func() {
		if r.generation.Load() != gen {
			return
		}
		action()
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generation.Load() != gen {
		return
	}
	r.timer = time.AfterFunc(r.interval, func() {
		r.fire(gen, action)
	})
}
