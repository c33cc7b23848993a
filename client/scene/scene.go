package scene

import (
	"time"

	"github.com/rs/zerolog"

	"lobby/client/graphics"
	"lobby/client/input"
	"lobby/protocol"
)

// Scene is whatever is on screen and reacting to input and the network.
// Scenes share no state; each owns its drawables and timers.
type Scene interface {
	// Update advances one tick. It may poll ctx but never blocks.
	Update(ctx GameContext)
	Render()
	HandleInput(ctx GameContext, ev input.Event)
	// SwitchScene hands over the scene that should replace this one, at
	// most once. It returns nil when no switch is pending.
	SwitchScene() Scene
	// Release frees the scene's drawables. The scene is unusable afterwards.
	Release()
}

// GameContext is the network channel. The controller owns it and lends it
// to whichever scene is active.
type GameContext interface {
	Send(msg protocol.Message) error
	Poll() (protocol.Message, bool)
}

// Options size the scenes to the viewport.
type Options struct {
	Width, Height int
	Rooms         int
	Layout        Layout
	DragButton    input.Button
	// AvatarSpeed is in pixels per millisecond of drag.
	AvatarSpeed  float32
	AvatarRadius float32
}

func DefaultOptions() Options {
	return Options{
		Width:        600,
		Height:       400,
		Rooms:        4,
		Layout:       DefaultLayout(),
		DragButton:   input.ButtonRight,
		AvatarSpeed:  0.25,
		AvatarRadius: 10,
	}
}

// Deps are handed from scene to scene on every switch.
type Deps struct {
	Backend graphics.Backend
	Log     zerolog.Logger
	// Now is the clock for scene timers; nil means time.Now.
	Now     func() time.Time
	Options Options
}
