package input

// State is the pointer snapshot a scene builds from events and reads once
// per tick. JustPressed and JustReleased are edges: they stay set until the
// tick that observes them consumes them.
type State struct {
	PointerDown  bool
	JustPressed  bool
	JustReleased bool
	X, Y         int
}

// Press records a drag button going down at x, y.
func (s *State) Press(x, y int) {
	s.PointerDown = true
	s.JustPressed = true
	s.X, s.Y = x, y
}

// Release records the drag button going up.
func (s *State) Release() {
	s.PointerDown = false
	s.JustReleased = true
}

func (s *State) MoveTo(x, y int) {
	s.X, s.Y = x, y
}

// ConsumePressed reports and clears the press edge.
func (s *State) ConsumePressed() bool {
	edge := s.JustPressed
	s.JustPressed = false
	return edge
}

// ConsumeReleased reports and clears the release edge.
func (s *State) ConsumeReleased() bool {
	edge := s.JustReleased
	s.JustReleased = false
	return edge
}
