package host

import (
	"sync"
	"time"
)

// Window is the in-memory Host used by every driver.
type Window struct {
	mu       sync.Mutex
	clock    Clock
	viewport Viewport

	nextFrame FrameID
	frames    map[FrameID]FrameCallback
	order     []FrameID

	nextListener int
	resize       map[int]func(Viewport)
	pointer      map[int]func(PointerEvent)
}

func NewWindow(clock Clock, vp Viewport) *Window {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Window{
		clock:    clock,
		viewport: vp,
		frames:   make(map[FrameID]FrameCallback),
		resize:   make(map[int]func(Viewport)),
		pointer:  make(map[int]func(PointerEvent)),
	}
}

func (w *Window) Now() time.Time { return w.clock.Now() }

func (w *Window) Viewport() Viewport {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewport
}

func (w *Window) RequestFrame(cb FrameCallback) FrameID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextFrame++
	id := w.nextFrame
	w.frames[id] = cb
	w.order = append(w.order, id)
	return id
}

// CancelFrame drops a pending callback. Unknown or already-run ids are ignored.
func (w *Window) CancelFrame(id FrameID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.frames, id)
}

// Pending reports how many frame callbacks are queued.
func (w *Window) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.frames)
}

// Pump runs every callback queued before the call, in request order, and
// returns how many ran. A callback cancelled by an earlier callback of the
// same pump does not run.
func (w *Window) Pump() int {
	w.mu.Lock()
	batch := w.order
	w.order = nil
	w.mu.Unlock()

	now := w.clock.Now()
	ran := 0
	for _, id := range batch {
		w.mu.Lock()
		cb, ok := w.frames[id]
		delete(w.frames, id)
		w.mu.Unlock()
		if !ok {
			continue
		}
		cb(now)
		ran++
	}
	return ran
}

func (w *Window) OnResize(fn func(Viewport)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextListener++
	id := w.nextListener
	w.resize[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.resize, id)
	}
}

func (w *Window) OnPointer(fn func(PointerEvent)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextListener++
	id := w.nextListener
	w.pointer[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.pointer, id)
	}
}

// Listeners reports the number of attached resize and pointer listeners.
func (w *Window) Listeners() (resize, pointer int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.resize), len(w.pointer)
}

// SetViewport updates the viewport and notifies resize listeners when it changed.
func (w *Window) SetViewport(vp Viewport) {
	w.mu.Lock()
	if vp == w.viewport {
		w.mu.Unlock()
		return
	}
	w.viewport = vp
	fns := make([]func(Viewport), 0, len(w.resize))
	for _, fn := range w.resize {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(vp)
	}
}

func (w *Window) MovePointer(x, y float64) {
	w.dispatch(PointerEvent{Kind: PointerMove, X: x, Y: y})
}

func (w *Window) LeavePointer() {
	w.dispatch(PointerEvent{Kind: PointerLeave})
}

func (w *Window) dispatch(ev PointerEvent) {
	w.mu.Lock()
	fns := make([]func(PointerEvent), 0, len(w.pointer))
	for _, fn := range w.pointer {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
