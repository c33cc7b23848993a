package scene

import (
	"time"

	"github.com/rs/zerolog"

	"lobby/client/graphics"
	"lobby/client/input"
	"lobby/client/timer"
	"lobby/protocol"
)

const avatarSegments = 24

// Room is the scene inside a joined room. Holding the drag button steers
// the avatar towards the pointer; the server gets the direction each tick
// and integrates on its own, while the client predicts locally.
type Room struct {
	deps   Deps
	log    zerolog.Logger
	number uint32

	origin   graphics.Vec2
	position graphics.Vec2
	avatar   graphics.Handle

	input input.State
	timer *timer.Timer

	moveStart time.Duration
	moveStop  time.Duration
}

func NewRoom(deps Deps, number uint32) *Room {
	opts := deps.Options
	return &Room{
		deps:   deps,
		log:    deps.Log.With().Str("scene", "room").Uint32("room", number).Logger(),
		number: number,
		origin: graphics.Vec2{X: float32(opts.Width) / 2, Y: float32(opts.Height) / 2},
		avatar: deps.Backend.AllocateDrawable(graphics.CircleVertices(graphics.Vec2{}, opts.AvatarRadius, avatarSegments)),
		timer:  timer.New(deps.Now),
	}
}

func (r *Room) Number() uint32 { return r.number }

// Position is the avatar's offset from the room origin.
func (r *Room) Position() graphics.Vec2 { return r.position }

func (r *Room) Update(ctx GameContext) {
	dt := r.timer.FrameTime()

	// Nothing in the room reacts to the server yet; drain so lobby
	// broadcasts do not pile up in the inbox.
	if msg, ok := ctx.Poll(); ok {
		r.log.Debug().Stringer("kind", msg.Kind()).Msg("message ignored")
	}

	if r.input.PointerDown {
		pointer := graphics.Vec2{X: float32(r.input.X), Y: float32(r.deps.Options.Height - r.input.Y)}
		if dir, ok := pointer.Sub(r.origin).Normalize(); ok {
			r.send(ctx, protocol.MemberMove{X: dir.X, Y: dir.Y})
			ms := float32(dt.Seconds() * 1000)
			r.position = r.position.Add(dir.Scale(ms * r.deps.Options.AvatarSpeed))
		} else {
			r.log.Debug().Msg("pointer on origin, no direction")
		}
	}

	if r.input.ConsumePressed() {
		r.moveStart = r.timer.Elapsed()
		r.log.Debug().Dur("at", r.moveStart).Msg("move start")
	}

	if r.input.ConsumeReleased() {
		r.moveStop = r.timer.Elapsed()
		r.log.Debug().Dur("duration", r.moveStop-r.moveStart).Msg("move stop")
		r.send(ctx, protocol.MemberStopMove{})
	}
}

func (r *Room) send(ctx GameContext, msg protocol.Message) {
	if err := ctx.Send(msg); err != nil {
		r.log.Warn().Err(err).Stringer("kind", msg.Kind()).Msg("send failed")
	}
}

func (r *Room) Render() {
	b := r.deps.Backend
	b.ClearFrame()
	b.UseProgram(graphics.ProgramSolid)
	b.SetUniform(graphics.UniformOffset, r.origin.Add(r.position))
	b.Draw(r.avatar)
}

func (r *Room) HandleInput(_ GameContext, ev input.Event) {
	switch ev.Kind {
	case input.PointerDown:
		if ev.Button == r.deps.Options.DragButton {
			r.input.Press(ev.X, ev.Y)
		}
	case input.PointerUp:
		if ev.Button == r.deps.Options.DragButton {
			r.input.Release()
		}
	case input.PointerMove:
		r.input.MoveTo(ev.X, ev.Y)
	}
}

// SwitchScene always returns nil; there is no way out of a room yet.
func (r *Room) SwitchScene() Scene {
	return nil
}

func (r *Room) Release() {
	r.deps.Backend.Release(r.avatar)
}
