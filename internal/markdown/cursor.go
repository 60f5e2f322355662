package markdown

import "fmt"

// Cursor walks an event stream with lookahead.
type Cursor struct {
	events []Event
	pos    int
}

// NewCursor positions a cursor at the first event.
func NewCursor(events []Event) *Cursor {
	return &Cursor{events: events}
}

// Peek returns the event offset positions ahead without consuming it.
func (c *Cursor) Peek(offset int) (Event, bool) {
	i := c.pos + offset
	if offset < 0 || i >= len(c.events) {
		return Event{}, false
	}
	return c.events[i], true
}

// Next consumes and returns the current event.
func (c *Cursor) Next() (Event, bool) {
	ev, ok := c.Peek(0)
	if ok {
		c.pos++
	}
	return ev, ok
}

// Advance skips n events.
func (c *Cursor) Advance(n int) {
	c.pos += n
	if c.pos > len(c.events) {
		c.pos = len(c.events)
	}
}

// Done reports whether every event has been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.events)
}

// TakeBlock consumes the balanced block opened by the current Start event,
// returning it including both bracketing events.
func (c *Cursor) TakeBlock() ([]Event, error) {
	first, ok := c.Peek(0)
	if !ok || first.Kind != EventStart {
		return nil, fmt.Errorf("%w: block must begin with a start event", ErrUnbalanced)
	}

	depth := 0
	for i := c.pos; i < len(c.events); i++ {
		switch c.events[i].Kind {
		case EventStart:
			depth++
		case EventEnd:
			depth--
		}
		if depth == 0 {
			block := c.events[c.pos : i+1]
			c.pos = i + 1
			return block, nil
		}
	}
	return nil, fmt.Errorf("%w: block opened by %s never closes", ErrUnbalanced, first.Describe())
}
