package protocol

// Kind identifies a message on the wire.
type Kind uint8

const (
	KindAddToListeners Kind = iota + 1
	KindRemoveFromListeners
	KindRoomStatus
	KindServerOn
	KindMemberIn
	KindMemberMove
	KindMemberStopMove
)

func (k Kind) String() string {
	switch k {
	case KindAddToListeners:
		return "AddToListenersRequest"
	case KindRemoveFromListeners:
		return "RemoveFromListeners"
	case KindRoomStatus:
		return "RoomStatus"
	case KindServerOn:
		return "ServerOn"
	case KindMemberIn:
		return "MemberIn"
	case KindMemberMove:
		return "MemberMove"
	case KindMemberStopMove:
		return "MemberStopMove"
	}
	return "Unknown"
}

// Message is any value the codec can put on the wire.
type Message interface {
	Kind() Kind
}

// AddToListenersRequest subscribes the client to lobby broadcasts.
type AddToListenersRequest struct{}

// RemoveFromListeners unsubscribes the client.
type RemoveFromListeners struct{}

// RoomStatus reports whether a single lobby room is joinable.
type RoomStatus struct {
	Number   uint32
	IsActive bool
}

// ServerOn announces that every room in the lobby is open.
type ServerOn struct{}

// MemberIn asks the server to place the client in a room.
type MemberIn struct {
	Number uint32
}

// MemberMove carries a unit direction, not a position.
type MemberMove struct {
	X, Y float32
}

// MemberStopMove ends a drag started by MemberMove.
type MemberStopMove struct{}

func (AddToListenersRequest) Kind() Kind { return KindAddToListeners }
func (RemoveFromListeners) Kind() Kind   { return KindRemoveFromListeners }
func (RoomStatus) Kind() Kind            { return KindRoomStatus }
func (ServerOn) Kind() Kind              { return KindServerOn }
func (MemberIn) Kind() Kind              { return KindMemberIn }
func (MemberMove) Kind() Kind            { return KindMemberMove }
func (MemberStopMove) Kind() Kind        { return KindMemberStopMove }
