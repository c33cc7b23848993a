package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/mock"

	"lobby/client/graphics"
	"lobby/client/input"
	"lobby/client/scene"
	"lobby/protocol"
)

// journal collects calls from every fake so tests can check ordering.
type journal struct {
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

// --- Scene ---

type fakeScene struct {
	name     string
	journal  *journal
	next     scene.Scene
	released bool
	inputs   []input.Event
	ctx      scene.GameContext
}

func (s *fakeScene) Update(ctx scene.GameContext) {
	s.ctx = ctx
	s.journal.add("%s update", s.name)
}

func (s *fakeScene) Render() {
	s.journal.add("%s render", s.name)
}

func (s *fakeScene) HandleInput(ctx scene.GameContext, ev input.Event) {
	s.inputs = append(s.inputs, ev)
	s.journal.add("%s input", s.name)
}

func (s *fakeScene) SwitchScene() scene.Scene {
	next := s.next
	s.next = nil
	return next
}

func (s *fakeScene) Release() {
	s.released = true
	s.journal.add("%s release", s.name)
}

// --- Channel ---

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Send(msg protocol.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockChannel) Poll() (protocol.Message, bool) {
	args := m.Called()
	msg, _ := args.Get(0).(protocol.Message)
	return msg, args.Bool(1)
}

func (m *MockChannel) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Input source ---

type fakeSource struct {
	frames [][]input.Event
}

func (s *fakeSource) Poll() []input.Event {
	if len(s.frames) == 0 {
		return nil
	}
	evs := s.frames[0]
	s.frames = s.frames[1:]
	return evs
}

// --- Renderer ---

type fakeRenderer struct {
	journal *journal
	next    graphics.Handle
	live    map[graphics.Handle]bool
}

func newFakeRenderer(j *journal) *fakeRenderer {
	return &fakeRenderer{journal: j, live: make(map[graphics.Handle]bool)}
}

func (r *fakeRenderer) Begin(screen *ebiten.Image) { r.journal.add("begin") }

func (r *fakeRenderer) AllocateDrawable(vertices []graphics.Vertex) graphics.Handle {
	r.next++
	r.live[r.next] = true
	return r.next
}

func (r *fakeRenderer) Release(h graphics.Handle)         { delete(r.live, h) }
func (r *fakeRenderer) Draw(h graphics.Handle)            {}
func (r *fakeRenderer) UseProgram(p graphics.Program)     {}
func (r *fakeRenderer) SetUniform(name string, value any) {}
func (r *fakeRenderer) ClearFrame()                       {}
func (r *fakeRenderer) PresentFrame()                     { r.journal.add("present") }
