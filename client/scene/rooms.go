package scene

import (
	"errors"
	"fmt"

	"lobby/client/graphics"
)

var ErrNoRooms = errors.New("lobby needs at least one room")

// Layout places lobby slots in a single row, left to right, starting
// Margin pixels from the left edge with their bottom edge on Baseline.
type Layout struct {
	Margin, Baseline float32
	Width, Height    float32
	Gutter           float32
}

func DefaultLayout() Layout {
	return Layout{
		Margin:   40,
		Baseline: 150,
		Width:    100,
		Height:   100,
		Gutter:   40,
	}
}

// Slot is the box of the k-th room, counting from zero.
func (l Layout) Slot(k int) graphics.Rect {
	x := l.Margin + float32(k)*(l.Width+l.Gutter)
	return graphics.RectFromSize(x, l.Baseline, l.Width, l.Height)
}

// RoomUI is one lobby slot. Its number is the key the server uses in
// RoomStatus updates.
type RoomUI struct {
	number uint32
	box    graphics.Rect
	active bool
	handle graphics.Handle
}

func (r RoomUI) Number() uint32          { return r.number }
func (r RoomUI) Box() graphics.Rect      { return r.box }
func (r RoomUI) IsActive() bool          { return r.active }
func (r RoomUI) Handle() graphics.Handle { return r.handle }

// RoomUICollection is a fixed row of rooms numbered from 1.
type RoomUICollection struct {
	rooms []RoomUI
}

func NewRoomUICollection(n int, layout Layout, backend graphics.Backend) (*RoomUICollection, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoRooms, n)
	}

	c := &RoomUICollection{rooms: make([]RoomUI, n)}
	for k := range c.rooms {
		box := layout.Slot(k)
		c.rooms[k] = RoomUI{
			number: uint32(k + 1),
			box:    box,
			handle: backend.AllocateDrawable(graphics.RectVertices(box)),
		}
	}
	return c, nil
}

func (c *RoomUICollection) Len() int {
	return len(c.rooms)
}

// Rooms is a snapshot in slot order.
func (c *RoomUICollection) Rooms() []RoomUI {
	return append([]RoomUI(nil), c.rooms...)
}

// each visits rooms in slot order with write access.
func (c *RoomUICollection) each(fn func(*RoomUI)) {
	for i := range c.rooms {
		fn(&c.rooms[i])
	}
}

// FindByCoords returns the first room, in slot order, whose box contains p.
func (c *RoomUICollection) FindByCoords(p graphics.Vec2) (RoomUI, bool) {
	for _, r := range c.rooms {
		if r.box.Contains(p) {
			return r, true
		}
	}
	return RoomUI{}, false
}

func (c *RoomUICollection) Release(backend graphics.Backend) {
	for _, r := range c.rooms {
		backend.Release(r.handle)
	}
}
