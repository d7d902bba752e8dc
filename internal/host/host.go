package host

import "time"

type FrameID uint64

type FrameCallback func(now time.Time)

// Scheduler is the per-frame request/cancel primitive.
type Scheduler interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

type Viewport struct {
	Width, Height int
}

type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerLeave
)

func (k PointerKind) String() string {
	if k == PointerLeave {
		return "leave"
	}
	return "move"
}

// PointerEvent is in host coordinates. Leave events carry no position.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// Host is everything an effect needs from its environment.
type Host interface {
	Scheduler
	Now() time.Time
	Viewport() Viewport
	// OnResize and OnPointer return a function that removes the listener.
	OnResize(fn func(Viewport)) (remove func())
	OnPointer(fn func(PointerEvent)) (remove func())
}
