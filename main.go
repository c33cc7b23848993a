package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"lobby/config"
	"lobby/logging"
	"lobby/protocol"
	"lobby/rooms"
	"lobby/users"
)

// Server is a development lobby: it keeps rooms open until they fill up
// and tells every listener when that changes.
type Server struct {
	conn  net.PacketConn
	codec protocol.Codec
	u     *users.Users
	rooms *rooms.Occupancy
	log   zerolog.Logger
}

func main() {
	cfg, err := config.LoadServer(os.Args[1:], os.LookupEnv)
	if err != nil {
		bootLog := logging.Console(false)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logging.Console(cfg.Debug)

	conn, err := net.ListenPacket("udp", cfg.ListenAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.ListenAddr).Msg("listen")
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	server := newServer(conn, cfg, log)
	log.Info().Stringer("addr", conn.LocalAddr()).Int("rooms", cfg.Rooms).Int("capacity", cfg.RoomCapacity).Msg("lobby server listening")
	server.serve()
	log.Info().Msg("lobby server stopped")
}

func newServer(conn net.PacketConn, cfg config.Server, log zerolog.Logger) *Server {
	return &Server{
		conn:  conn,
		codec: protocol.NewCodec(),
		u:     users.NewUsers(),
		rooms: rooms.NewOccupancy(cfg.Rooms, cfg.RoomCapacity),
		log:   log,
	}
}

// serve reads datagrams until the socket is closed.
func (s *Server) serve() {
	buf := make([]byte, 512)
	for {
		n, from, err := s.conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warn().Err(err).Msg("receive failed")
			continue
		}

		msg, err := s.codec.Unpack(buf[:n])
		if err != nil {
			s.log.Debug().Err(err).Stringer("from", from).Msg("datagram dropped")
			continue
		}
		s.handle(from, msg)
	}
}

func (s *Server) handle(from net.Addr, msg protocol.Message) {
	log := s.log.With().Stringer("from", from).Stringer("kind", msg.Kind()).Logger()

	switch m := msg.(type) {
	case protocol.AddToListenersRequest:
		if s.u.Add(from) {
			log.Info().Int("listeners", s.u.Len()).Msg("listener added")
		}
		s.send(from, protocol.ServerOn{})
		for _, number := range s.rooms.Full() {
			s.send(from, protocol.RoomStatus{Number: number, IsActive: false})
		}
	case protocol.RemoveFromListeners:
		s.u.Remove(from)
		s.broadcast(s.rooms.Leave(from.String()))
		log.Info().Int("listeners", s.u.Len()).Msg("listener removed")
	case protocol.MemberIn:
		changes, err := s.rooms.Join(from.String(), m.Number)
		if err != nil {
			log.Warn().Err(err).Uint32("room", m.Number).Msg("join refused")
			return
		}
		log.Info().Uint32("room", m.Number).Msg("member joined")
		s.broadcast(changes)
	case protocol.MemberMove:
		number, ok := s.rooms.RoomOf(from.String())
		log.Debug().Bool("seated", ok).Uint32("room", number).Float32("x", m.X).Float32("y", m.Y).Msg("member move")
	case protocol.MemberStopMove:
		log.Debug().Msg("member stop move")
	default:
		log.Debug().Msg("message ignored")
	}
}

func (s *Server) send(to net.Addr, msg protocol.Message) {
	b, err := s.codec.Pack(msg)
	if err != nil {
		s.log.Error().Err(err).Msg("pack")
		return
	}
	if _, err := s.conn.WriteTo(b, to); err != nil {
		s.log.Warn().Err(err).Stringer("to", to).Msg("send failed")
	}
}

func (s *Server) broadcast(changes []rooms.Change) {
	for _, c := range changes {
		b, err := s.codec.Pack(protocol.RoomStatus{Number: c.Number, IsActive: c.Open})
		if err != nil {
			s.log.Error().Err(err).Msg("pack")
			continue
		}
		if failed := s.u.Broadcast(s.conn, b); failed > 0 {
			s.log.Warn().Int("failed", failed).Uint32("room", c.Number).Msg("broadcast incomplete")
		}
	}
}
