package input

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownButton = errors.New("unknown pointer button")

type Kind int

const (
	PointerMove Kind = iota + 1
	PointerDown
	PointerUp
	Quit
)

type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "none"
}

// ParseButton accepts the names produced by Button.String.
func ParseButton(name string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return ButtonLeft, nil
	case "right":
		return ButtonRight, nil
	case "middle":
		return ButtonMiddle, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
}

// Event is one raw pointer or window event. X and Y are in window
// coordinates with the origin at the top left.
type Event struct {
	Kind   Kind
	Button Button
	X, Y   int
}

// Source yields the events that happened since the previous call.
type Source interface {
	Poll() []Event
}
