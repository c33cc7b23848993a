package protocol

import "errors"

var (
	ErrNilMessage  = errors.New("nil message")
	ErrUnknownKind = errors.New("unknown message kind")
	ErrMalformed   = errors.New("malformed datagram")
)
