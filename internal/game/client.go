package game

import "sync"

// frameBuffer is the per-client outbound queue depth. A client that cannot
// keep up with this much backlog is treated as dead.
const frameBuffer = 256

// Client is one connected participant. The connection handle stays on the
// transport side; the game core only ever sees the frame queue. The room
// pointer and name are written by the client's own connection task (join)
// and read on every later message from that same task, so they need no
// locking of their own; drawer/admin/limiter state is guarded by the room
// lock.
type Client struct {
	ID   string
	Name string

	drawer  bool
	admin   bool
	limiter actionLimiter

	room *Room

	frames    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient constructs a client with an initialized frame queue.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		frames: make(chan []byte, frameBuffer),
		done:   make(chan struct{}),
	}
}

// Frames is the queue of serialized outbound records the transport's write
// pump drains.
func (c *Client) Frames() <-chan []byte {
	return c.frames
}

// Done is closed when the client is kicked or its room membership ends; the
// transport closes the connection when it fires.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close marks the client finished. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// push queues a serialized record without blocking. It reports false when
// the client is closed or its queue is full; callers treat that as a
// delivery failure.
func (c *Client) push(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.frames <- frame:
		return true
	default:
		return false
	}
}
