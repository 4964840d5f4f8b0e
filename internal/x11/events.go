package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// EventKind classifies the events the bar reacts to.
type EventKind uint8

const (
	// EventRedraw asks for a repaint (window exposed).
	EventRedraw EventKind = iota
	// EventButton is a pointer press on a bar window.
	EventButton
	// EventScreenChange signals a RandR layout change; the bar must be
	// rebuilt against the new geometry.
	EventScreenChange
	// EventError carries a connection-level failure; the stream ends
	// after delivering it.
	EventError
)

// Event is one input or display-change notification.
type Event struct {
	Kind   EventKind
	Window xproto.Window // EventButton, EventRedraw
	X      int16         // EventButton: press position within the window
	Button byte          // EventButton
	Err    error         // EventError
}

// SelectScreenChanges subscribes to RandR screen change notifications on
// the root window.
func (c *Connection) SelectScreenChanges() error {
	err := randr.SelectInputChecked(c.Conn(), c.Root, randr.NotifyMaskScreenChange).Check()
	if err != nil {
		return fmt.Errorf("randr select input: %w", err)
	}
	return nil
}

// Events starts a reader goroutine and returns its channel. The channel
// closes when the connection shuts down. Unrelated event types are dropped;
// the consumer only ever sees the kinds above.
func (c *Connection) Events() <-chan Event {
	ch := make(chan Event, 8)
	go func() {
		defer close(ch)
		for {
			ev, xerr := c.Conn().WaitForEvent()
			if ev == nil && xerr == nil {
				return
			}
			if xerr != nil {
				ch <- Event{Kind: EventError, Err: fmt.Errorf("x11 event error: %s", xerr.Error())}
				continue
			}
			switch e := ev.(type) {
			case xproto.ExposeEvent:
				// Coalesce: only the final expose of a series matters.
				if e.Count == 0 {
					ch <- Event{Kind: EventRedraw, Window: e.Window}
				}
			case xproto.ButtonPressEvent:
				ch <- Event{Kind: EventButton, Window: e.Event, X: e.EventX, Button: byte(e.Detail)}
			case randr.ScreenChangeNotifyEvent:
				ch <- Event{Kind: EventScreenChange}
			}
		}
	}()
	return ch
}
