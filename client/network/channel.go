package network

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"lobby/protocol"
)

const (
	maxDatagram      = 512
	defaultInboxSize = 64
)

// Codec is the protocol gateway: typed messages in, datagrams out.
type Codec interface {
	Pack(msg protocol.Message) ([]byte, error)
	Unpack(b []byte) (protocol.Message, error)
}

type Option func(*Channel)

// WithMoveRate limits how many MemberMove messages per second leave the
// client. Extra moves are dropped, which the protocol tolerates.
func WithMoveRate(limit rate.Limit) Option {
	return func(c *Channel) {
		c.moves = rate.NewLimiter(limit, 1)
	}
}

func WithInboxSize(n int) Option {
	return func(c *Channel) {
		if n > 0 {
			c.inbox = make(chan []byte, n)
		}
	}
}

// Channel is the one datagram socket the client talks to the server with.
// A reader goroutine queues datagrams and Poll takes at most one per call
// without waiting, so the frame loop never blocks on the network.
type Channel struct {
	conn   net.PacketConn
	remote net.Addr
	codec  Codec
	log    zerolog.Logger

	inbox chan []byte
	moves *rate.Limiter

	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

// Dial binds local and targets the server at remote.
func Dial(local, remote string, codec Codec, log zerolog.Logger, opts ...Option) (*Channel, error) {
	raddr, err := net.ResolveUDPAddr("udp", remote)
	if err != nil {
		return nil, fmt.Errorf("resolve server %s: %w", remote, err)
	}
	laddr, err := net.ResolveUDPAddr("udp", local)
	if err != nil {
		return nil, fmt.Errorf("resolve local %s: %w", local, err)
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", local, err)
	}
	return New(conn, raddr, codec, log, opts...), nil
}

// New takes ownership of conn and starts reading from it.
func New(conn net.PacketConn, remote net.Addr, codec Codec, log zerolog.Logger, opts ...Option) *Channel {
	c := &Channel{
		conn:   conn,
		remote: remote,
		codec:  codec,
		log:    log,
		inbox:  make(chan []byte, defaultInboxSize),
		moves:  rate.NewLimiter(rate.Inf, 1),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.listen()
	return c
}

func (c *Channel) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

func (c *Channel) listen() {
	defer close(c.done)

	buf := make([]byte, maxDatagram)
	for {
		n, from, err := c.conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			c.log.Warn().Err(err).Msg("receive failed")
			continue
		}

		select {
		case c.inbox <- append([]byte(nil), buf[:n]...):
		default:
			c.log.Debug().Stringer("from", from).Int("size", n).Msg("inbox full, datagram dropped")
		}
	}
}

// Poll returns the next decodable message, if one has arrived. Malformed
// datagrams are logged and reported as no message.
func (c *Channel) Poll() (protocol.Message, bool) {
	select {
	case data := <-c.inbox:
		msg, err := c.codec.Unpack(data)
		if err != nil {
			c.log.Debug().Err(err).Int("size", len(data)).Msg("datagram dropped")
			return nil, false
		}
		return msg, true
	default:
		return nil, false
	}
}

// Send packs msg into one datagram and writes it to the server. Delivery
// is not confirmed.
func (c *Channel) Send(msg protocol.Message) error {
	if _, ok := msg.(protocol.MemberMove); ok && !c.moves.Allow() {
		return nil
	}

	b, err := c.codec.Pack(msg)
	if err != nil {
		return fmt.Errorf("pack %T: %w", msg, err)
	}
	if _, err := c.conn.WriteTo(b, c.remote); err != nil {
		return fmt.Errorf("send %T to %s: %w", msg, c.remote, err)
	}
	return nil
}

// Close closes the socket and waits for the reader to exit. Queued
// messages can still be polled.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
		<-c.done
	})
	return c.closeErr
}
