package scene

import (
	"fmt"
	"time"

	"lobby/client/graphics"
	"lobby/protocol"
)

// --- Backend ---

type fakeBackend struct {
	drawables map[graphics.Handle][]graphics.Vertex
	released  map[graphics.Handle]bool
	next      graphics.Handle
	calls     []string
	uniforms  map[string]any
	drawn     []graphics.Handle
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		drawables: make(map[graphics.Handle][]graphics.Vertex),
		released:  make(map[graphics.Handle]bool),
		uniforms:  make(map[string]any),
	}
}

func (b *fakeBackend) AllocateDrawable(vertices []graphics.Vertex) graphics.Handle {
	b.next++
	b.drawables[b.next] = vertices
	return b.next
}

func (b *fakeBackend) Release(h graphics.Handle) {
	b.released[h] = true
}

func (b *fakeBackend) Draw(h graphics.Handle) {
	b.drawn = append(b.drawn, h)
	b.calls = append(b.calls, fmt.Sprintf("draw %d", h))
}

func (b *fakeBackend) UseProgram(p graphics.Program) {
	b.calls = append(b.calls, fmt.Sprintf("program %d", p))
}

func (b *fakeBackend) SetUniform(name string, value any) {
	b.uniforms[name] = value
	b.calls = append(b.calls, "uniform "+name)
}

func (b *fakeBackend) ClearFrame() {
	b.drawn = nil
	b.calls = append(b.calls, "clear")
}

func (b *fakeBackend) PresentFrame() {
	b.calls = append(b.calls, "present")
}

// live counts drawables that were allocated and not released.
func (b *fakeBackend) live() int {
	n := 0
	for h := range b.drawables {
		if !b.released[h] {
			n++
		}
	}
	return n
}

// --- GameContext ---

type fakeContext struct {
	inbox   []protocol.Message
	sent    []protocol.Message
	sendErr error
}

func (c *fakeContext) Send(msg protocol.Message) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *fakeContext) Poll() (protocol.Message, bool) {
	if len(c.inbox) == 0 {
		return nil, false
	}
	msg := c.inbox[0]
	c.inbox = c.inbox[1:]
	return msg, true
}

// --- Clock ---

type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Unix(1700000000, 0)}
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }
