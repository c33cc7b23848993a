package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var buttons = []struct {
	button Button
	mouse  ebiten.MouseButton
}{
	{ButtonLeft, ebiten.MouseButtonLeft},
	{ButtonRight, ebiten.MouseButtonRight},
	{ButtonMiddle, ebiten.MouseButtonMiddle},
}

// Ebiten turns ebiten's polled input into events. It must be polled from
// the game's Update.
type Ebiten struct {
	lastX, lastY int
	seen         bool
	events       []Event
}

func NewEbiten() *Ebiten {
	return &Ebiten{}
}

// Poll emits, in order: a move if the cursor changed, downs, ups, quit.
// The returned slice is reused by the next call.
func (e *Ebiten) Poll() []Event {
	e.events = e.events[:0]

	x, y := ebiten.CursorPosition()
	if !e.seen || x != e.lastX || y != e.lastY {
		e.events = append(e.events, Event{Kind: PointerMove, X: x, Y: y})
		e.lastX, e.lastY, e.seen = x, y, true
	}

	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.mouse) {
			e.events = append(e.events, Event{Kind: PointerDown, Button: b.button, X: x, Y: y})
		}
	}
	for _, b := range buttons {
		if inpututil.IsMouseButtonJustReleased(b.mouse) {
			e.events = append(e.events, Event{Kind: PointerUp, Button: b.button, X: x, Y: y})
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		e.events = append(e.events, Event{Kind: Quit})
	}

	return e.events
}
