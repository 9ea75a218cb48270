package watcher

import (
	"context"
	"sync"
	"time"
)

// debouncer groups rapid change events for the same batch, deduplicating
// by path, before releasing them to the rebuild loop.
type debouncer struct {
	delay   time.Duration
	events  chan string
	output  chan []string
	timer   *time.Timer
	pending map[string]struct{}
	order   []string
	mutex   sync.Mutex
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		events:  make(chan string, 100),
		output:  make(chan []string, 10),
		pending: make(map[string]struct{}),
	}
}

func (d *debouncer) add(path string) {
	select {
	case d.events <- path:
	default:
		// Channel full, drop the event. The next change to the same file
		// triggers another rebuild.
	}
}

func (d *debouncer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.mutex.Lock()
			if d.timer != nil {
				d.timer.Stop()
			}
			d.mutex.Unlock()
			return
		case path := <-d.events:
			d.schedule(path)
		}
	}
}

func (d *debouncer) schedule(path string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, seen := d.pending[path]; !seen {
		d.pending[path] = struct{}{}
		d.order = append(d.order, path)
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.order) == 0 {
		return
	}

	batch := make([]string, len(d.order))
	copy(batch, d.order)

	select {
	case d.output <- batch:
	default:
	}

	d.pending = make(map[string]struct{})
	d.order = d.order[:0]
}
