package scene

import (
	"github.com/rs/zerolog"

	"lobby/client/graphics"
	"lobby/client/input"
	"lobby/client/timer"
	"lobby/protocol"
)

// Lobby shows the row of rooms. Rooms appear once the server reports them
// active; releasing the pointer over one joins it.
type Lobby struct {
	deps  Deps
	log   zerolog.Logger
	rooms *RoomUICollection

	background graphics.Handle
	timer      *timer.Timer

	next Scene
}

func NewLobby(deps Deps) (*Lobby, error) {
	opts := deps.Options
	rooms, err := NewRoomUICollection(opts.Rooms, opts.Layout, deps.Backend)
	if err != nil {
		return nil, err
	}

	viewport := graphics.RectFromSize(0, 0, float32(opts.Width), float32(opts.Height))

	return &Lobby{
		deps:       deps,
		log:        deps.Log.With().Str("scene", "lobby").Logger(),
		rooms:      rooms,
		background: deps.Backend.AllocateDrawable(graphics.RectVertices(viewport)),
		timer:      timer.New(deps.Now),
	}, nil
}

// Rooms is a snapshot of the slots in display order.
func (l *Lobby) Rooms() []RoomUI {
	return l.rooms.Rooms()
}

func (l *Lobby) Update(ctx GameContext) {
	msg, ok := ctx.Poll()
	if !ok {
		return
	}

	switch m := msg.(type) {
	case protocol.RoomStatus:
		found := false
		l.rooms.each(func(r *RoomUI) {
			if r.number == m.Number {
				r.active = m.IsActive
				found = true
			}
		})
		l.log.Debug().Uint32("room", m.Number).Bool("active", m.IsActive).Bool("known", found).Msg("room status")
	case protocol.ServerOn:
		l.rooms.each(func(r *RoomUI) {
			r.active = true
		})
		l.log.Debug().Msg("server on")
	default:
		l.log.Debug().Stringer("kind", msg.Kind()).Msg("message ignored")
	}
}

func (l *Lobby) Render() {
	b := l.deps.Backend
	b.ClearFrame()

	b.UseProgram(graphics.ProgramBackground)
	b.SetUniform(graphics.UniformTime, float32(l.timer.Elapsed().Seconds()/10))
	b.Draw(l.background)

	b.UseProgram(graphics.ProgramSolid)
	b.SetUniform(graphics.UniformOffset, graphics.Vec2{})
	for _, r := range l.rooms.rooms {
		if r.active {
			b.Draw(r.handle)
		}
	}
}

func (l *Lobby) HandleInput(ctx GameContext, ev input.Event) {
	if ev.Kind != input.PointerUp {
		return
	}

	// Window Y grows downwards, room boxes are laid out with Y up.
	p := graphics.Vec2{X: float32(ev.X), Y: float32(l.deps.Options.Height - ev.Y)}
	room, ok := l.rooms.FindByCoords(p)
	if !ok {
		return
	}

	l.log.Info().Uint32("room", room.number).Msg("join room")
	if err := ctx.Send(protocol.MemberIn{Number: room.number}); err != nil {
		l.log.Warn().Err(err).Uint32("room", room.number).Msg("join request not sent")
	}

	// A second hit before the controller switches replaces the first.
	if l.next != nil {
		l.log.Debug().Msg("pending scene replaced")
		l.next.Release()
	}
	l.next = NewRoom(l.deps, room.number)
}

func (l *Lobby) SwitchScene() Scene {
	next := l.next
	l.next = nil
	return next
}

func (l *Lobby) Release() {
	l.rooms.Release(l.deps.Backend)
	l.deps.Backend.Release(l.background)
	if l.next != nil {
		l.next.Release()
		l.next = nil
	}
}
