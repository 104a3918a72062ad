// Package host models the window that owns the table: its size and the
// resize and click events it delivers.
package host

import "sync"

// Host is the window the table is mounted in.
type Host interface {
	Size() (width, height int)
	OnResize(fn func(width, height int)) (cancel func())
	OnClick(fn func(x, y float64)) (cancel func())
}

// Dispatcher is a Host driven by whoever owns the real event source (the
// terminal program, or a test). Handlers run synchronously on the caller's
// goroutine, in registration order.
type Dispatcher struct {
	mu       sync.Mutex
	width    int
	height   int
	nextID   int
	onResize map[int]func(int, int)
	onClick  map[int]func(float64, float64)
	order    []int
}

// NewDispatcher creates a dispatcher reporting width x height until the
// first resize.
func NewDispatcher(width, height int) *Dispatcher {
	return &Dispatcher{
		width:    width,
		height:   height,
		onResize: make(map[int]func(int, int)),
		onClick:  make(map[int]func(float64, float64)),
	}
}

// Size returns the last dispatched window size.
func (d *Dispatcher) Size() (width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

// OnResize registers fn for resize events.
func (d *Dispatcher) OnResize(fn func(width, height int)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.register()
	d.onResize[id] = fn
	return d.canceller(id)
}

// OnClick registers fn for click events.
func (d *Dispatcher) OnClick(fn func(x, y float64)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.register()
	d.onClick[id] = fn
	return d.canceller(id)
}

func (d *Dispatcher) register() int {
	d.nextID++
	d.order = append(d.order, d.nextID)
	return d.nextID
}

func (d *Dispatcher) canceller(id int) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.onResize, id)
			delete(d.onClick, id)
			for i, other := range d.order {
				if other == id {
					d.order = append(d.order[:i], d.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Resize records the new size and notifies resize handlers.
func (d *Dispatcher) Resize(width, height int) {
	d.mu.Lock()
	d.width, d.height = width, height
	var handlers []func(int, int)
	for _, id := range d.order {
		if fn, ok := d.onResize[id]; ok {
			handlers = append(handlers, fn)
		}
	}
	d.mu.Unlock()

	for _, fn := range handlers {
		fn(width, height)
	}
}

// Click notifies click handlers.
func (d *Dispatcher) Click(x, y float64) {
	d.mu.Lock()
	var handlers []func(float64, float64)
	for _, id := range d.order {
		if fn, ok := d.onClick[id]; ok {
			handlers = append(handlers, fn)
		}
	}
	d.mu.Unlock()

	for _, fn := range handlers {
		fn(x, y)
	}
}

// Handlers returns the number of registered handlers.
func (d *Dispatcher) Handlers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.onResize) + len(d.onClick)
}
