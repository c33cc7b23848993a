package protocol

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the datagram layout. Every datagram starts with the
// kind; the remaining fields are only present for the kinds that use them.
const (
	fieldKind   protowire.Number = 1
	fieldNumber protowire.Number = 2
	fieldActive protowire.Number = 3
	fieldX      protowire.Number = 4
	fieldY      protowire.Number = 5
)

// Codec packs messages into single datagrams using the protobuf wire format.
type Codec struct{}

func NewCodec() Codec {
	return Codec{}
}

func (Codec) Pack(msg Message) ([]byte, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}

	b := appendVarint(nil, fieldKind, uint64(msg.Kind()))

	switch m := msg.(type) {
	case AddToListenersRequest, RemoveFromListeners, ServerOn, MemberStopMove:
	case RoomStatus:
		b = appendVarint(b, fieldNumber, uint64(m.Number))
		b = appendVarint(b, fieldActive, protowire.EncodeBool(m.IsActive))
	case MemberIn:
		b = appendVarint(b, fieldNumber, uint64(m.Number))
	case MemberMove:
		b = appendFloat(b, fieldX, m.X)
		b = appendFloat(b, fieldY, m.Y)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, msg)
	}

	return b, nil
}

func (Codec) Unpack(b []byte) (Message, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrMalformed)
	}

	var (
		kind    Kind
		hasKind bool
		number  uint32
		active  bool
		x, y    float32
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldKind && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			if n >= 0 && v > math.MaxUint8 {
				return nil, fmt.Errorf("%w: kind %d", ErrUnknownKind, v)
			}
			kind, hasKind = Kind(v), true
		case num == fieldNumber && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			if n >= 0 && v > math.MaxUint32 {
				return nil, fmt.Errorf("%w: room number %d out of range", ErrMalformed, v)
			}
			number = uint32(v)
		case num == fieldActive && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			active = protowire.DecodeBool(v)
		case num == fieldX && typ == protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			x = math.Float32frombits(v)
		case num == fieldY && typ == protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			y = math.Float32frombits(v)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
	}

	if !hasKind {
		return nil, fmt.Errorf("%w: missing kind", ErrMalformed)
	}

	switch kind {
	case KindAddToListeners:
		return AddToListenersRequest{}, nil
	case KindRemoveFromListeners:
		return RemoveFromListeners{}, nil
	case KindRoomStatus:
		return RoomStatus{Number: number, IsActive: active}, nil
	case KindServerOn:
		return ServerOn{}, nil
	case KindMemberIn:
		return MemberIn{Number: number}, nil
	case KindMemberMove:
		return MemberMove{X: x, Y: y}, nil
	case KindMemberStopMove:
		return MemberStopMove{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}
