// Package host provides the frame-scheduling primitive and input plumbing that
// effects mount onto.
//
// A [Window] plays the role a browser page plays for the original effects: it
// owns the viewport size, queues animation-frame callbacks and fans out
// pointer and resize events to listeners. Drivers (the raylib window, the
// bubbletea view, the headless runner) own a Window, forward their native
// input into it and call [Window.Pump] once per displayed frame.
//
// Callbacks requested while a pump is running are deferred to the next pump,
// so an effect that re-requests itself from its own callback runs exactly once
// per frame.
package host
