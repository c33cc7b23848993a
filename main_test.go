package main

import (
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lobby/config"
	"lobby/protocol"
)

type testClient struct {
	t      *testing.T
	conn   net.PacketConn
	server net.Addr
	codec  protocol.Codec
}

func startServer(t *testing.T, rooms, capacity int) net.Addr {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	s := newServer(conn, config.Server{Rooms: rooms, RoomCapacity: capacity}, zerolog.Nop())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.serve()
	}()
	t.Cleanup(func() {
		conn.Close()
		<-done
	})
	return conn.LocalAddr()
}

func newTestClient(t *testing.T, server net.Addr) *testClient {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &testClient{t: t, conn: conn, server: server, codec: protocol.NewCodec()}
}

func (c *testClient) send(msg protocol.Message) {
	c.t.Helper()
	b, err := c.codec.Pack(msg)
	require.NoError(c.t, err)
	_, err = c.conn.WriteTo(b, c.server)
	require.NoError(c.t, err)
}

func (c *testClient) recv() protocol.Message {
	c.t.Helper()
	buf := make([]byte, 512)
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := c.conn.ReadFrom(buf)
	require.NoError(c.t, err)
	msg, err := c.codec.Unpack(buf[:n])
	require.NoError(c.t, err)
	return msg
}

func TestServer_ListenerGetsServerOn(t *testing.T) {
	addr := startServer(t, 4, 2)
	c := newTestClient(t, addr)

	c.send(protocol.AddToListenersRequest{})
	assert.Equal(t, protocol.ServerOn{}, c.recv())
}

func TestServer_FullRoomCloses(t *testing.T) {
	addr := startServer(t, 4, 2)
	a := newTestClient(t, addr)
	b := newTestClient(t, addr)

	a.send(protocol.AddToListenersRequest{})
	require.Equal(t, protocol.ServerOn{}, a.recv())
	b.send(protocol.AddToListenersRequest{})
	require.Equal(t, protocol.ServerOn{}, b.recv())

	a.send(protocol.MemberIn{Number: 1})
	b.send(protocol.MemberIn{Number: 1})

	closed := protocol.RoomStatus{Number: 1, IsActive: false}
	assert.Equal(t, closed, a.recv())
	assert.Equal(t, closed, b.recv())

	t.Run("late listener learns about full rooms", func(t *testing.T) {
		late := newTestClient(t, addr)
		late.send(protocol.AddToListenersRequest{})
		assert.Equal(t, protocol.ServerOn{}, late.recv())
		assert.Equal(t, closed, late.recv())
	})

	t.Run("leaving reopens the room", func(t *testing.T) {
		a.send(protocol.RemoveFromListeners{})
		assert.Equal(t, protocol.RoomStatus{Number: 1, IsActive: true}, b.recv())
	})
}

func TestServer_DropsGarbage(t *testing.T) {
	addr := startServer(t, 1, 1)
	c := newTestClient(t, addr)

	_, err := c.conn.WriteTo([]byte{0xff, 0x00}, addr)
	require.NoError(t, err)
	c.send(protocol.MemberMove{X: 1})
	c.send(protocol.AddToListenersRequest{})

	assert.Equal(t, protocol.ServerOn{}, c.recv(), "server keeps serving after bad input")
}
